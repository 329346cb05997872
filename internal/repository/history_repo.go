package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"wordlearena/internal/database"
	"wordlearena/internal/models"
)

// HistoryRepository persists completed games. Public and pseudonymous
// games live in two disjoint tables keyed by different identity types;
// no query joins them.
type HistoryRepository struct {
	db *database.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *database.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// RecordGame appends a public game to the history
func (r *HistoryRepository) RecordGame(game *models.CompletedGame) error {
	guesses, err := json.Marshal(game.Guesses)
	if err != nil {
		return fmt.Errorf("failed to encode guesses: %w", err)
	}

	query := `
		INSERT INTO games
			(id, scope_id, player_id, word, guesses, hints_used, won, quit, duration_seconds, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		game.ID, game.ScopeID, game.PlayerID, game.Word, string(guesses),
		game.HintsUsed, game.Won, game.Quit, game.DurationSeconds, game.PlayedAt)
	if err != nil {
		return fmt.Errorf("failed to record game: %w", err)
	}
	return nil
}

// RecordAnonymousGame appends a pseudonymous game to the anonymous
// partition. The real player identity is never written here.
func (r *HistoryRepository) RecordAnonymousGame(game *models.CompletedGame) error {
	guesses, err := json.Marshal(game.Guesses)
	if err != nil {
		return fmt.Errorf("failed to encode guesses: %w", err)
	}

	query := `
		INSERT INTO anonymous_games
			(id, anon_token, word, guesses, hints_used, won, quit, duration_seconds, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		game.ID, game.AnonToken, game.Word, string(guesses),
		game.HintsUsed, game.Won, game.Quit, game.DurationSeconds, game.PlayedAt)
	if err != nil {
		return fmt.Errorf("failed to record anonymous game: %w", err)
	}
	return nil
}

// GamesForPlayer retrieves a player's public games, newest first.
// Passing models.ScopeGlobal returns games from every scope.
func (r *HistoryRepository) GamesForPlayer(playerID, scopeID string) ([]models.CompletedGame, error) {
	query := `
		SELECT id, scope_id, player_id, word, guesses, hints_used, won, quit, duration_seconds, played_at
		FROM games
		WHERE player_id = ?
	`
	args := []interface{}{playerID}
	if scopeID != models.ScopeGlobal {
		query += " AND scope_id = ?"
		args = append(args, scopeID)
	}
	query += " ORDER BY played_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query player games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows, false)
}

// GamesInScope retrieves every public game in a scope, newest first.
// Passing models.ScopeGlobal returns the cross-scope view.
func (r *HistoryRepository) GamesInScope(scopeID string) ([]models.CompletedGame, error) {
	query := `
		SELECT id, scope_id, player_id, word, guesses, hints_used, won, quit, duration_seconds, played_at
		FROM games
	`
	var args []interface{}
	if scopeID != models.ScopeGlobal {
		query += " WHERE scope_id = ?"
		args = append(args, scopeID)
	}
	query += " ORDER BY played_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scope games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows, false)
}

// AnonymousGames retrieves the games recorded under a pseudonym token,
// newest first
func (r *HistoryRepository) AnonymousGames(token string) ([]models.CompletedGame, error) {
	query := `
		SELECT id, anon_token, word, guesses, hints_used, won, quit, duration_seconds, played_at
		FROM anonymous_games
		WHERE anon_token = ?
		ORDER BY played_at DESC
	`
	rows, err := r.db.Query(query, token)
	if err != nil {
		return nil, fmt.Errorf("failed to query anonymous games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows, true)
}

// CountGamesForPlayer counts a player's public games across all scopes
func (r *HistoryRepository) CountGamesForPlayer(playerID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM games WHERE player_id = ?", playerID).Scan(&count)
	return count, err
}

// CountAnonymousGames counts the games recorded under a pseudonym token
func (r *HistoryRepository) CountAnonymousGames(token string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM anonymous_games WHERE anon_token = ?", token).Scan(&count)
	return count, err
}

// scanGames reads game rows. Anonymous rows carry the pseudonym token in
// place of (scope, player).
func scanGames(rows *sql.Rows, anonymous bool) ([]models.CompletedGame, error) {
	var games []models.CompletedGame
	for rows.Next() {
		var g models.CompletedGame
		var guesses string
		var err error
		if anonymous {
			err = rows.Scan(&g.ID, &g.AnonToken, &g.Word, &guesses,
				&g.HintsUsed, &g.Won, &g.Quit, &g.DurationSeconds, &g.PlayedAt)
		} else {
			err = rows.Scan(&g.ID, &g.ScopeID, &g.PlayerID, &g.Word, &guesses,
				&g.HintsUsed, &g.Won, &g.Quit, &g.DurationSeconds, &g.PlayedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		if err := json.Unmarshal([]byte(guesses), &g.Guesses); err != nil {
			return nil, fmt.Errorf("failed to decode guesses for game %s: %w", g.ID, err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
