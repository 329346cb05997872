package daily

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"wordlearena/internal/models"
	"wordlearena/internal/repository"
	"wordlearena/internal/words"
)

// Manager owns the daily challenge: one secret word per calendar day,
// rotated deterministically. The (date, word) pair is persisted before
// the word is ever handed out, so a restart on the same day re-reads the
// stored selection instead of re-rolling.
type Manager struct {
	mu     sync.Mutex
	repo   *repository.DailyRepository
	source *words.Source
}

// NewManager creates a daily challenge manager
func NewManager(repo *repository.DailyRepository, source *words.Source) *Manager {
	return &Manager{repo: repo, source: source}
}

// DateKey returns the challenge date key, YYYY-MM-DD in UTC
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TodaysWord returns the challenge word for the given instant's date,
// rotating first if the date has changed. Rotation is idempotent under
// concurrent callers: the critical section covers read-check-rotate-write
// in-process, and the unique date constraint settles cross-process races
// in favour of whichever row landed first.
func (m *Manager) TodaysWord(now time.Time) (string, error) {
	date := DateKey(now)

	m.mu.Lock()
	defer m.mu.Unlock()

	challenge, err := m.repo.GetChallenge(date)
	if err == nil {
		return challenge.Word, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to read daily challenge: %w", err)
	}

	word, err := m.source.Random()
	if err != nil {
		return "", err
	}

	if err := m.repo.InsertChallenge(date, word); err != nil {
		// Another process rotated between our read and write. The stored
		// row is authoritative; observing a different word here means the
		// critical section was breached and deserves a loud log.
		stored, readErr := m.repo.GetChallenge(date)
		if readErr != nil {
			return "", fmt.Errorf("failed to rotate daily challenge: %w", err)
		}
		if stored.Word != word {
			log.Printf("Daily rotation conflict for %s: keeping stored word over local pick", date)
		}
		return stored.Word, nil
	}

	log.Printf("Rotated daily challenge for %s", date)
	return word, nil
}

// HasPlayed reports whether the player already has a participation
// record for the instant's date
func (m *Manager) HasPlayed(playerID string, now time.Time) (bool, error) {
	return m.repo.HasEntry(DateKey(now), playerID)
}

// RecordParticipation stores the player's result for the instant's date.
// A repeat participation on the same day is a no-op.
func (m *Manager) RecordParticipation(playerID string, attempts int, now time.Time) error {
	return m.repo.RecordEntry(DateKey(now), playerID, attempts, now)
}

// Rank returns the player's 1-based position on the instant's date,
// ranked by ascending attempts then earliest completion. The second
// return is false if the player has not participated.
func (m *Manager) Rank(playerID string, now time.Time) (int, bool, error) {
	entries, err := m.repo.EntriesForDate(DateKey(now))
	if err != nil {
		return 0, false, err
	}
	for i, entry := range entries {
		if entry.PlayerID == playerID {
			return i + 1, true, nil
		}
	}
	return 0, false, nil
}

// Leaderboard returns the instant's date's participants in rank order,
// capped at limit (0 means no cap)
func (m *Manager) Leaderboard(now time.Time, limit int) ([]models.DailyEntry, error) {
	entries, err := m.repo.EntriesForDate(DateKey(now))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
