package ws

import "github.com/radieske/football-predictions-poc/pkg/contracts/events"

// Mensagem de controle enviada pelo cliente
type ClientMsg struct {
	Type   string `json:"type"` // "subscribe" | "unsubscribe" | "ping"
	UserID int64  `json:"user_id"`
}

// BetUpdate é o payload enviado aos clientes inscritos
type BetUpdate = events.BetSettled
