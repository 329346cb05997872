package repository

import (
	"fmt"

	"wordlearena/internal/database"
	"wordlearena/internal/models"
)

// SettingsRepository persists per-player privacy settings
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves a player's settings. Returns sql.ErrNoRows (wrapped)
// when the player has none yet.
func (r *SettingsRepository) Get(playerID string) (*models.PlayerSettings, error) {
	query := `
		SELECT player_id, stats_public, history_public, anonymous_mode,
		       anon_token, anon_secret_hash, created_at, updated_at
		FROM player_settings
		WHERE player_id = ?
	`

	s := &models.PlayerSettings{}
	err := r.db.QueryRow(query, playerID).Scan(
		&s.PlayerID,
		&s.StatsPublic,
		&s.HistoryPublic,
		&s.AnonymousMode,
		&s.AnonToken,
		&s.AnonSecretHash,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateDefault inserts a fresh settings row. A concurrent insert for the
// same player wins silently; callers re-read afterwards so the first
// generated pseudonym token is the one that sticks.
func (r *SettingsRepository) CreateDefault(s *models.PlayerSettings) error {
	query := r.db.Dialect.InsertIgnore(`
		INSERT INTO player_settings
			(player_id, stats_public, history_public, anonymous_mode, anon_token, anon_secret_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.Exec(query,
		s.PlayerID, s.StatsPublic, s.HistoryPublic, s.AnonymousMode, s.AnonToken, s.AnonSecretHash)
	if err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}
	return nil
}

// Save upserts a player's settings
func (r *SettingsRepository) Save(s *models.PlayerSettings) error {
	query := r.db.Dialect.UpsertPlayerSettings()
	_, err := r.db.Exec(query,
		s.PlayerID, s.StatsPublic, s.HistoryPublic, s.AnonymousMode, s.AnonToken, s.AnonSecretHash)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
