package repository

import (
	"fmt"
	"time"

	"wordlearena/internal/database"
	"wordlearena/internal/models"
)

// DailyRepository persists the per-day challenge word and participation
// records. Dates are YYYY-MM-DD strings in UTC.
type DailyRepository struct {
	db *database.DB
}

// NewDailyRepository creates a new daily challenge repository
func NewDailyRepository(db *database.DB) *DailyRepository {
	return &DailyRepository{db: db}
}

// GetChallenge retrieves the stored challenge for a date. Returns
// sql.ErrNoRows when no rotation has happened for that date.
func (r *DailyRepository) GetChallenge(date string) (*models.DailyChallenge, error) {
	query := `SELECT challenge_date, word, created_at FROM daily_challenges WHERE challenge_date = ?`

	c := &models.DailyChallenge{}
	err := r.db.QueryRow(query, date).Scan(&c.Date, &c.Word, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// InsertChallenge stores the rotated (date, word) pair. The unique
// constraint on the date makes a concurrent rotation fail here instead
// of producing two words for one day.
func (r *DailyRepository) InsertChallenge(date, word string) error {
	query := `INSERT INTO daily_challenges (challenge_date, word) VALUES (?, ?)`
	_, err := r.db.Exec(query, date, word)
	return err
}

// RecordEntry stores one player's participation for a date. A second
// entry for the same (date, player) is silently ignored: at most one
// daily attempt per identity per day.
func (r *DailyRepository) RecordEntry(date, playerID string, attempts int, completedAt time.Time) error {
	query := r.db.Dialect.InsertIgnore(`
		INSERT INTO daily_entries (challenge_date, player_id, attempts, completed_at)
		VALUES (?, ?, ?, ?)
	`)
	_, err := r.db.Exec(query, date, playerID, attempts, completedAt)
	if err != nil {
		return fmt.Errorf("failed to record daily entry: %w", err)
	}
	return nil
}

// HasEntry reports whether the player already participated on the date
func (r *DailyRepository) HasEntry(date, playerID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM daily_entries WHERE challenge_date = ? AND player_id = ?`
	err := r.db.QueryRow(query, date, playerID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EntriesForDate retrieves a date's participants ranked by ascending
// attempts, ties broken by earliest completion
func (r *DailyRepository) EntriesForDate(date string) ([]models.DailyEntry, error) {
	query := `
		SELECT challenge_date, player_id, attempts, completed_at
		FROM daily_entries
		WHERE challenge_date = ?
		ORDER BY attempts ASC, completed_at ASC
	`
	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily entries: %w", err)
	}
	defer rows.Close()

	var entries []models.DailyEntry
	for rows.Next() {
		var e models.DailyEntry
		if err := rows.Scan(&e.Date, &e.PlayerID, &e.Attempts, &e.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan daily entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
