package models

import "time"

// PlayerSettings holds a player's privacy and identity configuration.
// AnonToken is generated once and never changes; anonymous games recorded
// under it stay linkable to each other (and only to each other).
type PlayerSettings struct {
	PlayerID       string
	StatsPublic    bool
	HistoryPublic  bool
	AnonymousMode  bool
	AnonToken      string
	AnonSecretHash string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasUnlockSecret reports whether an unlock secret has been set for the
// pseudonymous history
func (s *PlayerSettings) HasUnlockSecret() bool {
	return s.AnonSecretHash != ""
}
