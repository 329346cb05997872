package models

import "time"

// Achievement is a persisted unlock for a player
type Achievement struct {
	PlayerID   string
	RuleID     string
	UnlockedAt time.Time
}
