package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/football-predictions-poc/internal/domain"
)

func outcomeBet(predicted domain.Outcome) domain.PendingBet {
	return domain.PendingBet{
		Bet:              domain.Bet{BetType: domain.BetTypeOutcome, BetValue: string(predicted)},
		PredictedOutcome: predicted,
	}
}

func TestDefaultEvaluate_OutcomeBets(t *testing.T) {
	won, supported := DefaultEvaluate(outcomeBet(domain.OutcomeHomeWin), domain.OutcomeHomeWin)
	assert.True(t, supported)
	assert.True(t, won)

	won, supported = DefaultEvaluate(outcomeBet(domain.OutcomeHomeWin), domain.OutcomeDraw)
	assert.True(t, supported)
	assert.False(t, won)

	won, supported = DefaultEvaluate(outcomeBet(domain.OutcomeDraw), domain.OutcomeDraw)
	assert.True(t, supported)
	assert.True(t, won)
}

func TestDefaultEvaluate_UnsupportedTypes(t *testing.T) {
	over := domain.PendingBet{
		Bet:              domain.Bet{BetType: domain.BetTypeOverUnder, BetValue: "over_2.5"},
		PredictedOutcome: domain.OutcomeHomeWin,
	}
	won, supported := DefaultEvaluate(over, domain.OutcomeHomeWin)
	assert.False(t, supported)
	assert.False(t, won)

	btts := domain.PendingBet{
		Bet:              domain.Bet{BetType: domain.BetTypeBothTeamsScore, BetValue: "yes"},
		PredictedOutcome: domain.OutcomeDraw,
	}
	won, supported = DefaultEvaluate(btts, domain.OutcomeDraw)
	assert.False(t, supported)
	assert.False(t, won)
}
