package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	// PostgreSQL uses $1, $2, etc. instead of ?
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for PostgreSQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	return nil
}

func (d *PostgresDialect) MigrationsSubdir() string {
	return "postgres"
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *PostgresDialect) InsertIgnore(insert string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(insert), ";")
	return trimmed + " ON CONFLICT DO NOTHING"
}

func (d *PostgresDialect) UpsertPlayerSettings() string {
	return `
		INSERT INTO player_settings
			(player_id, stats_public, history_public, anonymous_mode, anon_token, anon_secret_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (player_id) DO UPDATE SET
			stats_public = excluded.stats_public,
			history_public = excluded.history_public,
			anonymous_mode = excluded.anonymous_mode,
			anon_token = excluded.anon_token,
			anon_secret_hash = excluded.anon_secret_hash,
			updated_at = CURRENT_TIMESTAMP
	`
}
