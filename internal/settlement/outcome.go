package settlement

import (
	"github.com/radieske/football-predictions-poc/internal/domain"
)

// ResolveOutcome determina o resultado real a partir do placar final.
// Função pura; placar nulo ou negativo é ErrInvalidScore.
func ResolveOutcome(homeScore, awayScore *int) (domain.Outcome, error) {
	if homeScore == nil || awayScore == nil {
		return "", domain.ErrInvalidScore
	}
	if *homeScore < 0 || *awayScore < 0 {
		return "", domain.ErrInvalidScore
	}

	switch {
	case *homeScore > *awayScore:
		return domain.OutcomeHomeWin, nil
	case *homeScore < *awayScore:
		return domain.OutcomeAwayWin, nil
	default:
		return domain.OutcomeDraw, nil
	}
}
