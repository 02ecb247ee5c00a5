package events

import "time"

// Evento emitido pelo motor de liquidação para cada aposta liquidada.
type BetSettled struct {
	BetID        int64     `json:"bet_id"`
	UserID       int64     `json:"user_id"`
	PredictionID int64     `json:"prediction_id"`
	Status       string    `json:"status"` // "won" | "lost"
	AmountCents  int64     `json:"amount_cents"`
	PayoutCents  int64     `json:"payout_cents"` // 0 quando perdida
	SettledAt    time.Time `json:"settled_at"`
}
