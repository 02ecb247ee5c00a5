package domain

// Outcome é o resultado de uma partida encerrada (ou o previsto pela IA)
type Outcome string

const (
	OutcomeHomeWin Outcome = "home_win"
	OutcomeDraw    Outcome = "draw"
	OutcomeAwayWin Outcome = "away_win"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeHomeWin, OutcomeDraw, OutcomeAwayWin:
		return true
	}
	return false
}

// MatchStatus é o estado de uma partida
type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusPostponed  MatchStatus = "postponed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusInProgress, MatchStatusCompleted, MatchStatusPostponed:
		return true
	}
	return false
}

// BetStatus é o ciclo de vida de uma aposta: pending -> won | lost (terminais)
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
)

func (s BetStatus) Valid() bool {
	switch s {
	case BetStatusPending, BetStatusWon, BetStatusLost:
		return true
	}
	return false
}

// BetType é a modalidade da aposta
type BetType string

const (
	BetTypeOutcome        BetType = "outcome"
	BetTypeOverUnder      BetType = "over_under"
	BetTypeBothTeamsScore BetType = "both_teams_score"
)

func (t BetType) Valid() bool {
	switch t {
	case BetTypeOutcome, BetTypeOverUnder, BetTypeBothTeamsScore:
		return true
	}
	return false
}
