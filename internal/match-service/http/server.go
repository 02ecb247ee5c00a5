package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/football-predictions-poc/internal/domain"
	"github.com/radieske/football-predictions-poc/internal/match-service/dto"
	"github.com/radieske/football-predictions-poc/internal/match-service/repo"
	"github.com/radieske/football-predictions-poc/pkg/contracts/events"
)

// Repo define as operações de persistência usadas pelos handlers
type Repo interface {
	CreateTeam(ctx context.Context, name, code string, logoURL *string) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)
	CreateMatch(ctx context.Context, homeTeamID, awayTeamID int64, matchDate time.Time, gameweek int, season string) (*domain.Match, error)
	ListMatches(ctx context.Context, f repo.MatchFilter) ([]domain.Match, error)
	UpdateMatchResult(ctx context.Context, id int64, homeScore, awayScore int) (*domain.Match, error)
	CreatePrediction(ctx context.Context, in domain.Prediction) (*domain.Prediction, error)
	ListPredictions(ctx context.Context, matchID *int64) ([]domain.Prediction, error)
	ListUpcomingWithPredictions(ctx context.Context, limit int) ([]domain.UpcomingMatch, error)
}

// Settler é o motor de liquidação, invocado como efeito colateral do
// registro de placar
type Settler interface {
	SettleMatch(ctx context.Context, matchID int64) ([]domain.Bet, error)
}

// Publisher publica o evento match_completed
type Publisher interface {
	PublishMatchCompleted(ctx context.Context, e events.MatchCompleted) error
}

// FeedCache é o cache do feed de próximas partidas (opcional)
type FeedCache interface {
	GetUpcoming(ctx context.Context, limit int, dst any) (bool, error)
	SetUpcoming(ctx context.Context, limit int, v any) error
	Invalidate(ctx context.Context) error
}

type Server struct {
	log     *zap.Logger
	repo    Repo
	settler Settler
	publ    Publisher
	cache   FeedCache // pode ser nil
}

func NewServer(log *zap.Logger, r Repo, s Settler, p Publisher, c FeedCache) *Server {
	return &Server{log: log, repo: r, settler: s, publ: p, cache: c}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/teams", s.createTeam)
	r.Get("/v1/teams", s.listTeams)
	r.Post("/v1/matches", s.createMatch)
	r.Get("/v1/matches", s.listMatches)
	r.Get("/v1/matches/upcoming", s.upcoming)
	r.Put("/v1/matches/{id}/result", s.updateMatchResult)
	r.Post("/v1/predictions", s.createPrediction)
	r.Get("/v1/predictions", s.listPredictions)
	return r
}

func (s *Server) createTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name == "" || len(req.Code) < 2 || len(req.Code) > 4 {
		writeError(w, http.StatusBadRequest, "name required; code must have 2-4 chars")
		return
	}
	t, err := s.repo.CreateTeam(r.Context(), req.Name, req.Code, req.LogoURL)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromTeam(*t))
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.repo.ListTeams(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, dto.FromTeam(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createMatch(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.HomeTeamID == 0 || req.AwayTeamID == 0 || req.MatchDate.IsZero() || req.Gameweek <= 0 || req.Season == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.HomeTeamID == req.AwayTeamID {
		writeError(w, http.StatusBadRequest, domain.ErrSameTeam.Error())
		return
	}
	m, err := s.repo.CreateMatch(r.Context(), req.HomeTeamID, req.AwayTeamID, req.MatchDate, req.Gameweek, req.Season)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromMatch(*m))
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	f := repo.MatchFilter{Limit: 50, Offset: 0}
	q := r.URL.Query()
	if v := q.Get("gameweek"); v != "" {
		gw, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid gameweek")
			return
		}
		f.Gameweek = &gw
	}
	if v := q.Get("season"); v != "" {
		f.Season = &v
	}
	if v := q.Get("status"); v != "" {
		st := domain.MatchStatus(v)
		if !st.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		f.Status = &st
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			f.Offset = n
		}
	}

	matches, err := s.repo.ListMatches(r.Context(), f)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.FromMatch(m))
	}
	writeJSON(w, http.StatusOK, out)
}

// updateMatchResult grava o placar, liquida as apostas da partida de forma
// síncrona e publica match_completed pro worker (retry idempotente)
func (s *Server) updateMatchResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	var req dto.UpdateMatchResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.HomeScore == nil || req.AwayScore == nil || *req.HomeScore < 0 || *req.AwayScore < 0 {
		writeError(w, http.StatusBadRequest, "home_score and away_score must be non-negative")
		return
	}
	if req.Status != string(domain.MatchStatusCompleted) {
		writeError(w, http.StatusBadRequest, "status must be completed")
		return
	}

	m, err := s.repo.UpdateMatchResult(r.Context(), id, *req.HomeScore, *req.AwayScore)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(r.Context()); err != nil {
			s.log.Warn("feed cache invalidate", zap.Error(err))
		}
	}

	// Liquidação síncrona; falha aqui não desfaz o placar já gravado —
	// o settlement-worker re-tenta pelo evento e pela varredura
	settled, err := s.settler.SettleMatch(r.Context(), id)
	if err != nil {
		s.log.Error("synchronous settlement failed",
			zap.Int64("matchId", id), zap.Error(err))
	}

	if err := s.publ.PublishMatchCompleted(r.Context(), events.MatchCompleted{
		MatchID:   m.ID,
		HomeScore: *m.HomeScore,
		AwayScore: *m.AwayScore,
		Gameweek:  m.Gameweek,
		Season:    m.Season,
	}); err != nil {
		s.log.Warn("publish match_completed", zap.Int64("matchId", id), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, dto.UpdateMatchResultResponse{
		Match:       dto.FromMatch(*m),
		SettledBets: len(settled),
	})
}

func (s *Server) createPrediction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	outcome := domain.Outcome(req.PredictedOutcome)
	if req.MatchID == 0 || !outcome.Valid() || req.ModelVersion == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ConfidencePercentage < 0 || req.ConfidencePercentage > 100 {
		writeError(w, http.StatusBadRequest, "confidence_percentage must be within 0..100")
		return
	}

	pr, err := s.repo.CreatePrediction(r.Context(), domain.Prediction{
		MatchID:              req.MatchID,
		PredictedOutcome:     outcome,
		ConfidencePercentage: req.ConfidencePercentage,
		PredictedHomeScore:   req.PredictedHomeScore,
		PredictedAwayScore:   req.PredictedAwayScore,
		Reasoning:            req.Reasoning,
		ModelVersion:         req.ModelVersion,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromPrediction(*pr))
}

func (s *Server) listPredictions(w http.ResponseWriter, r *http.Request) {
	var matchID *int64
	if v := r.URL.Query().Get("matchId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid matchId")
			return
		}
		matchID = &id
	}
	preds, err := s.repo.ListPredictions(r.Context(), matchID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]dto.PredictionResponse, 0, len(preds))
	for _, pr := range preds {
		out = append(out, dto.FromPrediction(pr))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) upcoming(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	if s.cache != nil {
		var cached []dto.UpcomingMatchResponse
		if ok, err := s.cache.GetUpcoming(r.Context(), limit, &cached); err != nil {
			s.log.Warn("feed cache read", zap.Error(err))
		} else if ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	items, err := s.repo.ListUpcomingWithPredictions(r.Context(), limit)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]dto.UpcomingMatchResponse, 0, len(items))
	for _, um := range items {
		out = append(out, dto.FromUpcoming(um))
	}

	if s.cache != nil {
		if err := s.cache.SetUpcoming(r.Context(), limit, out); err != nil {
			s.log.Warn("feed cache write", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// writeDomainError mapeia erros sentinela pro status HTTP adequado
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrMatchCompleted),
		errors.Is(err, domain.ErrTeamCodeTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
