package dto

import (
	"time"

	"github.com/radieske/football-predictions-poc/internal/domain"
)

type TeamResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MatchResponse struct {
	ID         int64     `json:"id"`
	HomeTeamID int64     `json:"home_team_id"`
	AwayTeamID int64     `json:"away_team_id"`
	MatchDate  time.Time `json:"match_date"`
	HomeScore  *int      `json:"home_score"`
	AwayScore  *int      `json:"away_score"`
	Status     string    `json:"status"`
	Gameweek   int       `json:"gameweek"`
	Season     string    `json:"season"`
	CreatedAt  time.Time `json:"created_at"`
}

type PredictionResponse struct {
	ID                   int64     `json:"id"`
	MatchID              int64     `json:"match_id"`
	PredictedOutcome     string    `json:"predicted_outcome"`
	ConfidencePercentage int       `json:"confidence_percentage"`
	PredictedHomeScore   *int      `json:"predicted_home_score,omitempty"`
	PredictedAwayScore   *int      `json:"predicted_away_score,omitempty"`
	Reasoning            *string   `json:"reasoning,omitempty"`
	ModelVersion         string    `json:"model_version"`
	CreatedAt            time.Time `json:"created_at"`
}

// UpdateMatchResultResponse devolve a partida atualizada e quantas apostas
// a liquidação síncrona transicionou nesta chamada
type UpdateMatchResultResponse struct {
	Match       MatchResponse `json:"match"`
	SettledBets int           `json:"settled_bets"`
}

type UpcomingMatchResponse struct {
	Match      MatchResponse       `json:"match"`
	HomeTeam   TeamResponse        `json:"home_team"`
	AwayTeam   TeamResponse        `json:"away_team"`
	Prediction *PredictionResponse `json:"prediction"`
}

func FromTeam(t domain.Team) TeamResponse {
	return TeamResponse{ID: t.ID, Name: t.Name, Code: t.Code, LogoURL: t.LogoURL, CreatedAt: t.CreatedAt}
}

func FromMatch(m domain.Match) MatchResponse {
	return MatchResponse{
		ID: m.ID, HomeTeamID: m.HomeTeamID, AwayTeamID: m.AwayTeamID,
		MatchDate: m.MatchDate, HomeScore: m.HomeScore, AwayScore: m.AwayScore,
		Status: string(m.Status), Gameweek: m.Gameweek, Season: m.Season, CreatedAt: m.CreatedAt,
	}
}

func FromPrediction(p domain.Prediction) PredictionResponse {
	return PredictionResponse{
		ID: p.ID, MatchID: p.MatchID, PredictedOutcome: string(p.PredictedOutcome),
		ConfidencePercentage: p.ConfidencePercentage,
		PredictedHomeScore:   p.PredictedHomeScore, PredictedAwayScore: p.PredictedAwayScore,
		Reasoning: p.Reasoning, ModelVersion: p.ModelVersion, CreatedAt: p.CreatedAt,
	}
}

func FromUpcoming(u domain.UpcomingMatch) UpcomingMatchResponse {
	out := UpcomingMatchResponse{
		Match:    FromMatch(u.Match),
		HomeTeam: FromTeam(u.HomeTeam),
		AwayTeam: FromTeam(u.AwayTeam),
	}
	if u.Prediction != nil {
		pr := FromPrediction(*u.Prediction)
		out.Prediction = &pr
	}
	return out
}
