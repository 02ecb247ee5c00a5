package dto

import "github.com/shopspring/decimal"

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	// Saldo inicial opcional; default 1000.00 de moeda virtual
	TotalBalance *decimal.Decimal `json:"total_balance,omitempty"`
}

// Valores monetários trafegam como decimais de duas casas, nunca float binário
type CreateBetRequest struct {
	UserID       int64           `json:"user_id"`
	PredictionID int64           `json:"prediction_id"`
	Amount       decimal.Decimal `json:"amount"`
	BetType      string          `json:"bet_type"`  // outcome | over_under | both_teams_score
	BetValue     string          `json:"bet_value"` // "home_win", "over_2.5", "yes", ...
	Odds         decimal.Decimal `json:"odds"`
}
