package repository

import (
	"fmt"
	"time"

	"wordlearena/internal/database"
	"wordlearena/internal/models"
)

// AchievementRepository persists achievement unlocks
type AchievementRepository struct {
	db *database.DB
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *database.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// UnlockedForPlayer returns the player's unlocked rule ids with their
// unlock timestamps
func (r *AchievementRepository) UnlockedForPlayer(playerID string) (map[string]time.Time, error) {
	query := `SELECT rule_id, unlocked_at FROM achievements WHERE player_id = ?`
	rows, err := r.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]time.Time)
	for rows.Next() {
		var ruleID string
		var unlockedAt time.Time
		if err := rows.Scan(&ruleID, &unlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		unlocked[ruleID] = unlockedAt
	}
	return unlocked, rows.Err()
}

// ListForPlayer returns the player's unlocks in unlock order
func (r *AchievementRepository) ListForPlayer(playerID string) ([]models.Achievement, error) {
	query := `
		SELECT player_id, rule_id, unlocked_at
		FROM achievements
		WHERE player_id = ?
		ORDER BY unlocked_at ASC
	`
	rows, err := r.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var unlocks []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.PlayerID, &a.RuleID, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		unlocks = append(unlocks, a)
	}
	return unlocks, rows.Err()
}

// Unlock records an achievement unlock. Re-unlocking an already unlocked
// rule is a no-op.
func (r *AchievementRepository) Unlock(playerID, ruleID string, unlockedAt time.Time) error {
	query := r.db.Dialect.InsertIgnore(`
		INSERT INTO achievements (player_id, rule_id, unlocked_at)
		VALUES (?, ?, ?)
	`)
	_, err := r.db.Exec(query, playerID, ruleID, unlockedAt)
	if err != nil {
		return fmt.Errorf("failed to unlock achievement: %w", err)
	}
	return nil
}
