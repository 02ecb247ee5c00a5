package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/football-predictions-poc/internal/domain"
	"github.com/radieske/football-predictions-poc/internal/match-service/repo"
	"github.com/radieske/football-predictions-poc/pkg/contracts/events"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) CreateTeam(ctx context.Context, name, code string, logoURL *string) (*domain.Team, error) {
	args := m.Called(ctx, name, code, logoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockRepo) ListTeams(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockRepo) CreateMatch(ctx context.Context, homeTeamID, awayTeamID int64, matchDate time.Time, gameweek int, season string) (*domain.Match, error) {
	args := m.Called(ctx, homeTeamID, awayTeamID, matchDate, gameweek, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func (m *MockRepo) ListMatches(ctx context.Context, f repo.MatchFilter) ([]domain.Match, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

func (m *MockRepo) UpdateMatchResult(ctx context.Context, id int64, homeScore, awayScore int) (*domain.Match, error) {
	args := m.Called(ctx, id, homeScore, awayScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func (m *MockRepo) CreatePrediction(ctx context.Context, in domain.Prediction) (*domain.Prediction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prediction), args.Error(1)
}

func (m *MockRepo) ListPredictions(ctx context.Context, matchID *int64) ([]domain.Prediction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prediction), args.Error(1)
}

func (m *MockRepo) ListUpcomingWithPredictions(ctx context.Context, limit int) ([]domain.UpcomingMatch, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UpcomingMatch), args.Error(1)
}

type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) SettleMatch(ctx context.Context, matchID int64) ([]domain.Bet, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bet), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishMatchCompleted(ctx context.Context, e events.MatchCompleted) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func newTestServer(r *MockRepo, s *MockSettler, p *MockPublisher) http.Handler {
	return NewServer(zap.NewNop(), r, s, p, nil).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateTeam(t *testing.T) {
	mr := new(MockRepo)
	mr.On("CreateTeam", mock.Anything, "Flamengo", "FLA", (*string)(nil)).
		Return(&domain.Team{ID: 1, Name: "Flamengo", Code: "FLA"}, nil)

	rec := doJSON(t, newTestServer(mr, new(MockSettler), new(MockPublisher)), http.MethodPost, "/v1/teams",
		map[string]string{"name": "Flamengo", "code": "FLA"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	mr.AssertExpectations(t)
}

func TestCreateTeam_InvalidCode(t *testing.T) {
	srv := newTestServer(new(MockRepo), new(MockSettler), new(MockPublisher))

	rec := doJSON(t, srv, http.MethodPost, "/v1/teams", map[string]string{"name": "Flamengo", "code": "F"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/v1/teams", map[string]string{"name": "Flamengo", "code": "FLAME"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTeam_DuplicateCode(t *testing.T) {
	mr := new(MockRepo)
	mr.On("CreateTeam", mock.Anything, "Flamengo", "FLA", (*string)(nil)).
		Return(nil, domain.ErrTeamCodeTaken)

	rec := doJSON(t, newTestServer(mr, new(MockSettler), new(MockPublisher)), http.MethodPost, "/v1/teams",
		map[string]string{"name": "Flamengo", "code": "FLA"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateMatch_SameTeamRejected(t *testing.T) {
	rec := doJSON(t, newTestServer(new(MockRepo), new(MockSettler), new(MockPublisher)),
		http.MethodPost, "/v1/matches", map[string]any{
			"home_team_id": 1,
			"away_team_id": 1,
			"match_date":   time.Now().Add(24 * time.Hour).Format(time.RFC3339),
			"gameweek":     3,
			"season":       "2024-25",
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMatches_StatusFilter(t *testing.T) {
	mr := new(MockRepo)
	mr.On("ListMatches", mock.Anything, mock.MatchedBy(func(f repo.MatchFilter) bool {
		return f.Status != nil && *f.Status == domain.MatchStatusScheduled && f.Limit == 50
	})).Return([]domain.Match{}, nil)

	rec := doJSON(t, newTestServer(mr, new(MockSettler), new(MockPublisher)),
		http.MethodGet, "/v1/matches?status=scheduled", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mr.AssertExpectations(t)
}

func TestListMatches_InvalidStatus(t *testing.T) {
	rec := doJSON(t, newTestServer(new(MockRepo), new(MockSettler), new(MockPublisher)),
		http.MethodGet, "/v1/matches?status=cancelled", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func intPtr(v int) *int { return &v }

func TestUpdateMatchResult_SettlesAndPublishes(t *testing.T) {
	mr := new(MockRepo)
	ms := new(MockSettler)
	mp := new(MockPublisher)

	updated := &domain.Match{
		ID: 7, HomeScore: intPtr(2), AwayScore: intPtr(1),
		Status: domain.MatchStatusCompleted, Gameweek: 3, Season: "2024-25",
	}
	mr.On("UpdateMatchResult", mock.Anything, int64(7), 2, 1).Return(updated, nil)
	ms.On("SettleMatch", mock.Anything, int64(7)).Return([]domain.Bet{
		{ID: 1, Status: domain.BetStatusWon},
		{ID: 2, Status: domain.BetStatusLost},
	}, nil)
	mp.On("PublishMatchCompleted", mock.Anything, mock.MatchedBy(func(e events.MatchCompleted) bool {
		return e.MatchID == 7 && e.HomeScore == 2 && e.AwayScore == 1
	})).Return(nil)

	rec := doJSON(t, newTestServer(mr, ms, mp), http.MethodPut, "/v1/matches/7/result",
		map[string]any{"home_score": 2, "away_score": 1, "status": "completed"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		SettledBets int `json:"settled_bets"`
		Match       struct {
			Status string `json:"status"`
		} `json:"match"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.SettledBets)
	assert.Equal(t, "completed", resp.Match.Status)

	mr.AssertExpectations(t)
	ms.AssertExpectations(t)
	mp.AssertExpectations(t)
}

func TestUpdateMatchResult_SettlementFailureStillRecordsScore(t *testing.T) {
	mr := new(MockRepo)
	ms := new(MockSettler)
	mp := new(MockPublisher)

	updated := &domain.Match{
		ID: 7, HomeScore: intPtr(0), AwayScore: intPtr(0),
		Status: domain.MatchStatusCompleted,
	}
	mr.On("UpdateMatchResult", mock.Anything, int64(7), 0, 0).Return(updated, nil)
	ms.On("SettleMatch", mock.Anything, int64(7)).Return(nil, assert.AnError)
	mp.On("PublishMatchCompleted", mock.Anything, mock.Anything).Return(nil)

	rec := doJSON(t, newTestServer(mr, ms, mp), http.MethodPut, "/v1/matches/7/result",
		map[string]any{"home_score": 0, "away_score": 0, "status": "completed"})

	// placar gravado; o worker re-tenta a liquidação pelo evento publicado
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		SettledBets int `json:"settled_bets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.SettledBets)
	mp.AssertExpectations(t)
}

func TestUpdateMatchResult_Validation(t *testing.T) {
	srv := newTestServer(new(MockRepo), new(MockSettler), new(MockPublisher))

	// placar ausente
	rec := doJSON(t, srv, http.MethodPut, "/v1/matches/7/result",
		map[string]any{"home_score": 2, "status": "completed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// placar negativo
	rec = doJSON(t, srv, http.MethodPut, "/v1/matches/7/result",
		map[string]any{"home_score": -1, "away_score": 0, "status": "completed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// status diferente de completed
	rec = doJSON(t, srv, http.MethodPut, "/v1/matches/7/result",
		map[string]any{"home_score": 2, "away_score": 1, "status": "live"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMatchResult_MatchNotFound(t *testing.T) {
	mr := new(MockRepo)
	mr.On("UpdateMatchResult", mock.Anything, int64(99), 1, 0).Return(nil, domain.ErrMatchNotFound)

	rec := doJSON(t, newTestServer(mr, new(MockSettler), new(MockPublisher)),
		http.MethodPut, "/v1/matches/99/result",
		map[string]any{"home_score": 1, "away_score": 0, "status": "completed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePrediction(t *testing.T) {
	mr := new(MockRepo)
	mr.On("CreatePrediction", mock.Anything, mock.MatchedBy(func(p domain.Prediction) bool {
		return p.MatchID == 5 && p.PredictedOutcome == domain.OutcomeDraw && p.ConfidencePercentage == 70
	})).Return(&domain.Prediction{ID: 1, MatchID: 5, PredictedOutcome: domain.OutcomeDraw, ConfidencePercentage: 70, ModelVersion: "v1"}, nil)

	rec := doJSON(t, newTestServer(mr, new(MockSettler), new(MockPublisher)),
		http.MethodPost, "/v1/predictions", map[string]any{
			"match_id":              5,
			"predicted_outcome":     "draw",
			"confidence_percentage": 70,
			"model_version":         "v1",
		})
	assert.Equal(t, http.StatusCreated, rec.Code)
	mr.AssertExpectations(t)
}

func TestCreatePrediction_CompletedMatch(t *testing.T) {
	mr := new(MockRepo)
	mr.On("CreatePrediction", mock.Anything, mock.Anything).Return(nil, domain.ErrMatchCompleted)

	rec := doJSON(t, newTestServer(mr, new(MockSettler), new(MockPublisher)),
		http.MethodPost, "/v1/predictions", map[string]any{
			"match_id":              5,
			"predicted_outcome":     "home_win",
			"confidence_percentage": 60,
			"model_version":         "v1",
		})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreatePrediction_Validation(t *testing.T) {
	srv := newTestServer(new(MockRepo), new(MockSettler), new(MockPublisher))

	rec := doJSON(t, srv, http.MethodPost, "/v1/predictions", map[string]any{
		"match_id":              5,
		"predicted_outcome":     "home_victory",
		"confidence_percentage": 60,
		"model_version":         "v1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/v1/predictions", map[string]any{
		"match_id":              5,
		"predicted_outcome":     "draw",
		"confidence_percentage": 120,
		"model_version":         "v1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
