package settlement

import (
	"github.com/radieske/football-predictions-poc/internal/domain"
)

// UnsupportedBetPolicy decide o destino das modalidades que o avaliador
// padrão não cobre (over_under, both_teams_score).
type UnsupportedBetPolicy int

const (
	// PolicyLose liquida como perdida, preservando a completude da
	// liquidação (nenhuma aposta fica pendente pra sempre). Default.
	PolicyLose UnsupportedBetPolicy = iota
	// PolicyLeavePending pula a aposta, deixando-a pendente até que um
	// avaliador dedicado seja plugado.
	PolicyLeavePending
)

// EvalFunc decide se uma aposta venceu dado o resultado real.
// supported=false indica modalidade fora do alcance do avaliador; o motor
// aplica então a UnsupportedBetPolicy configurada.
type EvalFunc func(bet domain.PendingBet, actual domain.Outcome) (won bool, supported bool)

// DefaultEvaluate é a política de avaliação corrente: apostas de resultado
// vencem sse o resultado previsto pela previsão vinculada é o resultado real.
// O bet_value de apostas outcome é descritivo e não entra na decisão.
func DefaultEvaluate(bet domain.PendingBet, actual domain.Outcome) (bool, bool) {
	if bet.BetType == domain.BetTypeOutcome {
		return bet.PredictedOutcome == actual, true
	}
	return false, false
}
