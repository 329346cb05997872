package models

import "time"

// DailyChallenge is the persisted word selection for one calendar day
type DailyChallenge struct {
	Date      string
	Word      string
	CreatedAt time.Time
}

// DailyEntry is one player's participation in a day's challenge
type DailyEntry struct {
	Date        string
	PlayerID    string
	Attempts    int
	CompletedAt time.Time
}
