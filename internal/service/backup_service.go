package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"wordlearena/internal/database"
)

// BackupService exports and imports the game data as JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

type backupData struct {
	ExportedAt      time.Time           `json:"exported_at"`
	Games           []backupGame        `json:"games"`
	AnonymousGames  []backupAnonGame    `json:"anonymous_games"`
	PlayerSettings  []backupSettings    `json:"player_settings"`
	DailyChallenges []backupChallenge   `json:"daily_challenges"`
	DailyEntries    []backupDailyEntry  `json:"daily_entries"`
	Achievements    []backupAchievement `json:"achievements"`
}

type backupGame struct {
	ID              string          `json:"id"`
	ScopeID         string          `json:"scope_id"`
	PlayerID        string          `json:"player_id"`
	Word            string          `json:"word"`
	Guesses         json.RawMessage `json:"guesses"`
	HintsUsed       int             `json:"hints_used"`
	Won             bool            `json:"won"`
	Quit            bool            `json:"quit"`
	DurationSeconds float64         `json:"duration_seconds"`
	PlayedAt        time.Time       `json:"played_at"`
}

type backupAnonGame struct {
	ID              string          `json:"id"`
	AnonToken       string          `json:"anon_token"`
	Word            string          `json:"word"`
	Guesses         json.RawMessage `json:"guesses"`
	HintsUsed       int             `json:"hints_used"`
	Won             bool            `json:"won"`
	Quit            bool            `json:"quit"`
	DurationSeconds float64         `json:"duration_seconds"`
	PlayedAt        time.Time       `json:"played_at"`
}

type backupSettings struct {
	PlayerID       string `json:"player_id"`
	StatsPublic    bool   `json:"stats_public"`
	HistoryPublic  bool   `json:"history_public"`
	AnonymousMode  bool   `json:"anonymous_mode"`
	AnonToken      string `json:"anon_token"`
	AnonSecretHash string `json:"anon_secret_hash"`
}

type backupChallenge struct {
	Date string `json:"date"`
	Word string `json:"word"`
}

type backupDailyEntry struct {
	Date        string    `json:"date"`
	PlayerID    string    `json:"player_id"`
	Attempts    int       `json:"attempts"`
	CompletedAt time.Time `json:"completed_at"`
}

type backupAchievement struct {
	PlayerID   string    `json:"player_id"`
	RuleID     string    `json:"rule_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Export writes all game data to a JSON file
func (s *BackupService) Export(path string) error {
	data := backupData{ExportedAt: time.Now()}

	if err := s.exportGames(&data); err != nil {
		return err
	}
	if err := s.exportAnonymousGames(&data); err != nil {
		return err
	}
	if err := s.exportSettings(&data); err != nil {
		return err
	}
	if err := s.exportDaily(&data); err != nil {
		return err
	}
	if err := s.exportAchievements(&data); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// Import loads game data from a JSON file. Rows that already exist are
// skipped, so an import never overwrites live data.
func (s *BackupService) Import(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	for _, g := range data.Games {
		query := s.db.Dialect.InsertIgnore(`
			INSERT INTO games
				(id, scope_id, player_id, word, guesses, hints_used, won, quit, duration_seconds, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if _, err := s.db.Exec(query, g.ID, g.ScopeID, g.PlayerID, g.Word, string(g.Guesses),
			g.HintsUsed, g.Won, g.Quit, g.DurationSeconds, g.PlayedAt); err != nil {
			return fmt.Errorf("failed to import game %s: %w", g.ID, err)
		}
	}

	for _, g := range data.AnonymousGames {
		query := s.db.Dialect.InsertIgnore(`
			INSERT INTO anonymous_games
				(id, anon_token, word, guesses, hints_used, won, quit, duration_seconds, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if _, err := s.db.Exec(query, g.ID, g.AnonToken, g.Word, string(g.Guesses),
			g.HintsUsed, g.Won, g.Quit, g.DurationSeconds, g.PlayedAt); err != nil {
			return fmt.Errorf("failed to import anonymous game %s: %w", g.ID, err)
		}
	}

	for _, p := range data.PlayerSettings {
		query := s.db.Dialect.InsertIgnore(`
			INSERT INTO player_settings
				(player_id, stats_public, history_public, anonymous_mode, anon_token, anon_secret_hash)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if _, err := s.db.Exec(query, p.PlayerID, p.StatsPublic, p.HistoryPublic,
			p.AnonymousMode, p.AnonToken, p.AnonSecretHash); err != nil {
			return fmt.Errorf("failed to import settings for %s: %w", p.PlayerID, err)
		}
	}

	for _, c := range data.DailyChallenges {
		query := s.db.Dialect.InsertIgnore(`INSERT INTO daily_challenges (challenge_date, word) VALUES (?, ?)`)
		if _, err := s.db.Exec(query, c.Date, c.Word); err != nil {
			return fmt.Errorf("failed to import daily challenge %s: %w", c.Date, err)
		}
	}

	for _, e := range data.DailyEntries {
		query := s.db.Dialect.InsertIgnore(`
			INSERT INTO daily_entries (challenge_date, player_id, attempts, completed_at)
			VALUES (?, ?, ?, ?)
		`)
		if _, err := s.db.Exec(query, e.Date, e.PlayerID, e.Attempts, e.CompletedAt); err != nil {
			return fmt.Errorf("failed to import daily entry: %w", err)
		}
	}

	for _, a := range data.Achievements {
		query := s.db.Dialect.InsertIgnore(`
			INSERT INTO achievements (player_id, rule_id, unlocked_at)
			VALUES (?, ?, ?)
		`)
		if _, err := s.db.Exec(query, a.PlayerID, a.RuleID, a.UnlockedAt); err != nil {
			return fmt.Errorf("failed to import achievement: %w", err)
		}
	}

	return nil
}

func (s *BackupService) exportGames(data *backupData) error {
	rows, err := s.db.Query(`
		SELECT id, scope_id, player_id, word, guesses, hints_used, won, quit, duration_seconds, played_at
		FROM games ORDER BY played_at
	`)
	if err != nil {
		return fmt.Errorf("failed to export games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g backupGame
		var guesses string
		if err := rows.Scan(&g.ID, &g.ScopeID, &g.PlayerID, &g.Word, &guesses,
			&g.HintsUsed, &g.Won, &g.Quit, &g.DurationSeconds, &g.PlayedAt); err != nil {
			return fmt.Errorf("failed to scan game: %w", err)
		}
		g.Guesses = json.RawMessage(guesses)
		data.Games = append(data.Games, g)
	}
	return rows.Err()
}

func (s *BackupService) exportAnonymousGames(data *backupData) error {
	rows, err := s.db.Query(`
		SELECT id, anon_token, word, guesses, hints_used, won, quit, duration_seconds, played_at
		FROM anonymous_games ORDER BY played_at
	`)
	if err != nil {
		return fmt.Errorf("failed to export anonymous games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g backupAnonGame
		var guesses string
		if err := rows.Scan(&g.ID, &g.AnonToken, &g.Word, &guesses,
			&g.HintsUsed, &g.Won, &g.Quit, &g.DurationSeconds, &g.PlayedAt); err != nil {
			return fmt.Errorf("failed to scan anonymous game: %w", err)
		}
		g.Guesses = json.RawMessage(guesses)
		data.AnonymousGames = append(data.AnonymousGames, g)
	}
	return rows.Err()
}

func (s *BackupService) exportSettings(data *backupData) error {
	rows, err := s.db.Query(`
		SELECT player_id, stats_public, history_public, anonymous_mode, anon_token, anon_secret_hash
		FROM player_settings
	`)
	if err != nil {
		return fmt.Errorf("failed to export settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p backupSettings
		if err := rows.Scan(&p.PlayerID, &p.StatsPublic, &p.HistoryPublic,
			&p.AnonymousMode, &p.AnonToken, &p.AnonSecretHash); err != nil {
			return fmt.Errorf("failed to scan settings: %w", err)
		}
		data.PlayerSettings = append(data.PlayerSettings, p)
	}
	return rows.Err()
}

func (s *BackupService) exportDaily(data *backupData) error {
	rows, err := s.db.Query(`SELECT challenge_date, word FROM daily_challenges ORDER BY challenge_date`)
	if err != nil {
		return fmt.Errorf("failed to export daily challenges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c backupChallenge
		if err := rows.Scan(&c.Date, &c.Word); err != nil {
			return fmt.Errorf("failed to scan daily challenge: %w", err)
		}
		data.DailyChallenges = append(data.DailyChallenges, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	entryRows, err := s.db.Query(`
		SELECT challenge_date, player_id, attempts, completed_at
		FROM daily_entries ORDER BY challenge_date, completed_at
	`)
	if err != nil {
		return fmt.Errorf("failed to export daily entries: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var e backupDailyEntry
		if err := entryRows.Scan(&e.Date, &e.PlayerID, &e.Attempts, &e.CompletedAt); err != nil {
			return fmt.Errorf("failed to scan daily entry: %w", err)
		}
		data.DailyEntries = append(data.DailyEntries, e)
	}
	return entryRows.Err()
}

func (s *BackupService) exportAchievements(data *backupData) error {
	rows, err := s.db.Query(`SELECT player_id, rule_id, unlocked_at FROM achievements`)
	if err != nil {
		return fmt.Errorf("failed to export achievements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a backupAchievement
		if err := rows.Scan(&a.PlayerID, &a.RuleID, &a.UnlockedAt); err != nil {
			return fmt.Errorf("failed to scan achievement: %w", err)
		}
		data.Achievements = append(data.Achievements, a)
	}
	return rows.Err()
}
