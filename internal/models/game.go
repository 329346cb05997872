package models

import "time"

// FeedbackMark is the per-letter result of a guess
type FeedbackMark string

const (
	MarkCorrect FeedbackMark = "correct"
	MarkPresent FeedbackMark = "present"
	MarkAbsent  FeedbackMark = "absent"
)

// ScopeGlobal selects the cross-community view in history and leaderboard
// queries instead of a single community's partition.
const ScopeGlobal = "global"

// GuessRecord is one guess with its per-letter feedback, in guess order
type GuessRecord struct {
	Word     string         `json:"word"`
	Feedback []FeedbackMark `json:"feedback"`
}

// CompletedGame is the immutable record of a finished game.
// Exactly one of PlayerID or AnonToken is set, fixed at finalization time
// by the player's privacy setting.
type CompletedGame struct {
	ID              string
	ScopeID         string
	PlayerID        string
	AnonToken       string
	Word            string
	Guesses         []GuessRecord
	HintsUsed       int
	Won             bool
	Quit            bool
	DurationSeconds float64
	PlayedAt        time.Time
}

// Attempts returns the number of guesses made
func (g *CompletedGame) Attempts() int {
	return len(g.Guesses)
}

// Anonymous reports whether the game was recorded under a pseudonym
func (g *CompletedGame) Anonymous() bool {
	return g.AnonToken != ""
}
