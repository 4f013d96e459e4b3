package domain

import "errors"

// Domain errors
var (
	ErrMatchNotFound           = errors.New("match not found")
	ErrNotYourTurn             = errors.New("not your turn")
	ErrGameOver                = errors.New("game is over")
	ErrWrongPhase              = errors.New("invalid action for current phase")
	ErrPlayerNotFound          = errors.New("player not found")
	ErrPlayerAlreadyRegistered = errors.New("player already registered")
	ErrInsufficientPlayers     = errors.New("at least two players required to start")
	ErrInvalidTimeout          = errors.New("turn timeout must be greater than zero")
	ErrWordAlreadyUsed         = errors.New("word has already been used")
	ErrWordNotInDictionary     = errors.New("word not in dictionary")
	ErrTrigramNotFound         = errors.New("trigram not found")
)

// ErrStaleTimer aborts a transaction for a timer callback that no longer
// matches the live round. Callers treat it as a silent no-op, never as a
// caller-facing failure.
var ErrStaleTimer = errors.New("stale timer")
