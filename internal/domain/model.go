package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Team é um time cadastrado
type Team struct {
	ID        int64
	Name      string
	Code      string // código curto, ex: "FLA", "PAL"
	LogoURL   *string
	CreatedAt time.Time
}

// Match é uma partida; placar nulo enquanto não disputada
type Match struct {
	ID         int64
	HomeTeamID int64
	AwayTeamID int64
	MatchDate  time.Time
	HomeScore  *int
	AwayScore  *int
	Status     MatchStatus
	Gameweek   int
	Season     string // ex: "2024-25"
	CreatedAt  time.Time
}

// Prediction é uma previsão gerada por modelo, imutável após criada
type Prediction struct {
	ID                   int64
	MatchID              int64
	PredictedOutcome     Outcome
	ConfidencePercentage int
	PredictedHomeScore   *int
	PredictedAwayScore   *int
	Reasoning            *string
	ModelVersion         string
	CreatedAt            time.Time
}

// User guarda o saldo virtual em centavos
type User struct {
	ID                int64
	Username          string
	Email             string
	TotalBalanceCents int64
	CreatedAt         time.Time
}

// Bet é uma aposta contra uma previsão. potential_return = amount × odds,
// congelado na criação; o valor apostado já foi debitado do saldo.
type Bet struct {
	ID                   int64
	UserID               int64
	PredictionID         int64
	AmountCents          int64
	BetType              BetType
	BetValue             string
	Odds                 decimal.Decimal
	PotentialReturnCents int64
	Status               BetStatus
	SettledAt            *time.Time
	CreatedAt            time.Time
}

// PendingBet é a linha retornada pela consulta de liquidação:
// aposta pendente + resultado previsto da previsão vinculada
type PendingBet struct {
	Bet
	MatchID          int64
	PredictedOutcome Outcome
}

// UserStats agrega o desempenho de apostas de um usuário
type UserStats struct {
	User               User
	TotalBets          int
	WonBets            int
	LostBets           int
	PendingBets        int
	WinRate            float64 // percentual sobre apostas liquidadas
	TotalWinningsCents int64   // lucro das vencidas (retorno - valor apostado)
	TotalLossesCents   int64
	NetProfitCents     int64
}

// UpcomingMatch é o item do feed de próximas partidas com previsão
type UpcomingMatch struct {
	Match      Match
	HomeTeam   Team
	AwayTeam   Team
	Prediction *Prediction // previsão mais recente, se houver
}
