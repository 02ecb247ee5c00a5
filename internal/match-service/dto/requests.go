package dto

import "time"

type CreateTeamRequest struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"` // código curto, 2-4 letras
	LogoURL *string `json:"logo_url,omitempty"`
}

type CreateMatchRequest struct {
	HomeTeamID int64     `json:"home_team_id"`
	AwayTeamID int64     `json:"away_team_id"`
	MatchDate  time.Time `json:"match_date"`
	Gameweek   int       `json:"gameweek"`
	Season     string    `json:"season"` // ex: "2024-25"
}

// Placares como ponteiros pra distinguir ausente de zero
type UpdateMatchResultRequest struct {
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	Status    string `json:"status"` // somente "completed"
}

type CreatePredictionRequest struct {
	MatchID              int64   `json:"match_id"`
	PredictedOutcome     string  `json:"predicted_outcome"` // home_win | draw | away_win
	ConfidencePercentage int     `json:"confidence_percentage"`
	PredictedHomeScore   *int    `json:"predicted_home_score,omitempty"`
	PredictedAwayScore   *int    `json:"predicted_away_score,omitempty"`
	Reasoning            *string `json:"reasoning,omitempty"`
	ModelVersion         string  `json:"model_version"`
}
