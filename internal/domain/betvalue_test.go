package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBetValue_Outcome(t *testing.T) {
	v, err := ParseBetValue(BetTypeOutcome, "home_win")
	require.NoError(t, err)
	assert.Equal(t, OutcomeHomeWin, v.Outcome)
	assert.Equal(t, "home_win", v.String())

	_, err = ParseBetValue(BetTypeOutcome, "over_2.5")
	assert.Error(t, err)

	_, err = ParseBetValue(BetTypeOutcome, "")
	assert.Error(t, err)
}

func TestParseBetValue_OverUnder(t *testing.T) {
	v, err := ParseBetValue(BetTypeOverUnder, "over_2.5")
	require.NoError(t, err)
	assert.True(t, v.Over)
	assert.Equal(t, "2.5", v.Line.String())
	assert.Equal(t, "over_2.5", v.String())

	v, err = ParseBetValue(BetTypeOverUnder, "under_3.5")
	require.NoError(t, err)
	assert.False(t, v.Over)
	assert.Equal(t, "under_3.5", v.String())

	_, err = ParseBetValue(BetTypeOverUnder, "over_abc")
	assert.Error(t, err)

	_, err = ParseBetValue(BetTypeOverUnder, "yes")
	assert.Error(t, err)
}

func TestParseBetValue_BothTeamsScore(t *testing.T) {
	v, err := ParseBetValue(BetTypeBothTeamsScore, "yes")
	require.NoError(t, err)
	assert.True(t, v.BothScore)
	assert.Equal(t, "yes", v.String())

	v, err = ParseBetValue(BetTypeBothTeamsScore, "no")
	require.NoError(t, err)
	assert.False(t, v.BothScore)
	assert.Equal(t, "no", v.String())

	_, err = ParseBetValue(BetTypeBothTeamsScore, "maybe")
	assert.Error(t, err)
}

func TestParseBetValue_UnknownType(t *testing.T) {
	_, err := ParseBetValue(BetType("handicap"), "home_-1")
	assert.Error(t, err)
}
