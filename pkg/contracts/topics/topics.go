package topics

const (
	// Partidas
	MatchCompleted = "match_completed"

	// Apostas
	BetSettled = "bet_settled"

	// DLQs
	MatchCompletedDLQ = "match_completed_dlq"
)
