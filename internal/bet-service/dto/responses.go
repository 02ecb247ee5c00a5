package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/football-predictions-poc/internal/domain"
	"github.com/radieske/football-predictions-poc/internal/shared/money"
)

type UserResponse struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

type BetResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	PredictionID    int64           `json:"prediction_id"`
	Amount          decimal.Decimal `json:"amount"`
	BetType         string          `json:"bet_type"`
	BetValue        string          `json:"bet_value"`
	Odds            decimal.Decimal `json:"odds"`
	PotentialReturn decimal.Decimal `json:"potential_return"`
	Status          string          `json:"status"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type UserStatsResponse struct {
	User          UserResponse    `json:"user"`
	TotalBets     int             `json:"total_bets"`
	WonBets       int             `json:"won_bets"`
	LostBets      int             `json:"lost_bets"`
	PendingBets   int             `json:"pending_bets"`
	WinRate       float64         `json:"win_rate"`
	TotalWinnings decimal.Decimal `json:"total_winnings"`
	TotalLosses   decimal.Decimal `json:"total_losses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// SettleResponse é o retorno da liquidação administrativa
type SettleResponse struct {
	MatchID     int64         `json:"match_id"`
	SettledBets []BetResponse `json:"settled_bets"`
}

func FromUser(u domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		TotalBalance: money.FromCents(u.TotalBalanceCents),
		CreatedAt:    u.CreatedAt,
	}
}

func FromBet(b domain.Bet) BetResponse {
	return BetResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		PredictionID:    b.PredictionID,
		Amount:          money.FromCents(b.AmountCents),
		BetType:         string(b.BetType),
		BetValue:        b.BetValue,
		Odds:            b.Odds,
		PotentialReturn: money.FromCents(b.PotentialReturnCents),
		Status:          string(b.Status),
		SettledAt:       b.SettledAt,
		CreatedAt:       b.CreatedAt,
	}
}

func FromUserStats(s domain.UserStats) UserStatsResponse {
	return UserStatsResponse{
		User:          FromUser(s.User),
		TotalBets:     s.TotalBets,
		WonBets:       s.WonBets,
		LostBets:      s.LostBets,
		PendingBets:   s.PendingBets,
		WinRate:       s.WinRate,
		TotalWinnings: money.FromCents(s.TotalWinningsCents),
		TotalLosses:   money.FromCents(s.TotalLossesCents),
		NetProfit:     money.FromCents(s.NetProfitCents),
	}
}
