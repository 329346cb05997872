package service

import "errors"

var (
	// ErrNoActiveGame means the player has no session in the registry
	ErrNoActiveGame = errors.New("no active game")

	// ErrGameNotOver means finalization was requested for a session that
	// has not reached a terminal state
	ErrGameNotOver = errors.New("game is not over")

	// ErrNotInWordList means the guess is well-formed but not in the
	// configured word list (strict mode only)
	ErrNotInWordList = errors.New("word not in word list")

	// ErrDailyAlreadyPlayed means the player already has a daily
	// participation record for today
	ErrDailyAlreadyPlayed = errors.New("daily challenge already played today")

	// ErrPrivate means the target player keeps the requested data private
	ErrPrivate = errors.New("player data is private")

	// ErrUnlockRequired means the pseudonymous history has an unlock
	// secret set and none was provided
	ErrUnlockRequired = errors.New("unlock secret required")

	// ErrWrongSecret means the provided unlock secret did not match
	ErrWrongSecret = errors.New("wrong unlock secret")
)
