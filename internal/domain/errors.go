package domain

import "errors"

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrBetNotFound        = errors.New("bet not found")

	// ErrMatchNotSettleable: partida sem status completed ou sem placar
	ErrMatchNotSettleable = errors.New("match is not completed or scores are missing")

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidScore        = errors.New("invalid score")
	ErrMatchCompleted      = errors.New("match already completed")
	ErrSameTeam            = errors.New("a team cannot play against itself")
	ErrUserTaken           = errors.New("username or email already taken")
	ErrTeamCodeTaken       = errors.New("team code already taken")
)
