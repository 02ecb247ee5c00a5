package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/football-predictions-poc/internal/domain"
)

func TestResolveOutcome(t *testing.T) {
	cases := []struct {
		name string
		home int
		away int
		want domain.Outcome
	}{
		{"home win", 2, 1, domain.OutcomeHomeWin},
		{"away win", 0, 3, domain.OutcomeAwayWin},
		{"draw", 1, 1, domain.OutcomeDraw},
		{"goalless draw", 0, 0, domain.OutcomeDraw},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveOutcome(&tc.home, &tc.away)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveOutcome_InvalidScores(t *testing.T) {
	one := 1
	neg := -1

	_, err := ResolveOutcome(nil, &one)
	assert.ErrorIs(t, err, domain.ErrInvalidScore)

	_, err = ResolveOutcome(&one, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidScore)

	_, err = ResolveOutcome(&neg, &one)
	assert.ErrorIs(t, err, domain.ErrInvalidScore)

	_, err = ResolveOutcome(&one, &neg)
	assert.ErrorIs(t, err, domain.ErrInvalidScore)
}
