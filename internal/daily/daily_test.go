package daily

import (
	"path/filepath"
	"testing"
	"time"

	"wordlearena/internal/database"
	"wordlearena/internal/repository"
	"wordlearena/internal/words"
)

func TestDateKey(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{
			name:     "utc midday",
			instant:  time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
			expected: "2026-08-29",
		},
		{
			name:     "east of utc crosses midnight",
			instant:  time.Date(2026, 8, 29, 1, 30, 0, 0, time.FixedZone("CEST", 2*3600)),
			expected: "2026-08-28",
		},
		{
			name:     "late evening west of utc is already tomorrow in utc",
			instant:  time.Date(2026, 8, 29, 22, 0, 0, 0, time.FixedZone("PDT", -7*3600)),
			expected: "2026-08-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateKey(tt.instant); got != tt.expected {
				t.Errorf("DateKey(%v) = %v, want %v", tt.instant, got, tt.expected)
			}
		})
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	source, err := words.NewFromList([]string{"crane", "slate", "rusty", "vivid"}, 5)
	if err != nil {
		t.Fatalf("Failed to build word source: %v", err)
	}

	return NewManager(repository.NewDailyRepository(db), source)
}

func TestTodaysWordStableWithinDay(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	m := newTestManager(t)
	morning := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC)

	first, err := m.TodaysWord(morning)
	if err != nil {
		t.Fatalf("TodaysWord() error = %v", err)
	}

	// Every later call on the same date re-reads the stored word, even
	// through a fresh manager simulating a process restart.
	second, err := m.TodaysWord(evening)
	if err != nil {
		t.Fatalf("TodaysWord() error = %v", err)
	}
	if second != first {
		t.Errorf("word changed within the day: %q then %q", first, second)
	}

	restarted := NewManager(m.repo, m.source)
	third, err := restarted.TodaysWord(evening)
	if err != nil {
		t.Fatalf("TodaysWord() after restart error = %v", err)
	}
	if third != first {
		t.Errorf("word changed across restart: %q then %q", first, third)
	}
}

func TestTodaysWordRotatesAcrossDays(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	m := newTestManager(t)
	today := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	tomorrow := today.Add(24 * time.Hour)

	if _, err := m.TodaysWord(today); err != nil {
		t.Fatalf("TodaysWord() error = %v", err)
	}
	if _, err := m.TodaysWord(tomorrow); err != nil {
		t.Fatalf("TodaysWord() for next day error = %v", err)
	}

	// Both dates must hold their own persisted challenge
	for _, date := range []string{"2026-08-29", "2026-08-30"} {
		if _, err := m.repo.GetChallenge(date); err != nil {
			t.Errorf("no stored challenge for %s: %v", date, err)
		}
	}
}

func TestParticipationAndRank(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	m := newTestManager(t)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	played, err := m.HasPlayed("player-1", now)
	if err != nil {
		t.Fatalf("HasPlayed() error = %v", err)
	}
	if played {
		t.Error("HasPlayed() = true before participating")
	}

	if err := m.RecordParticipation("player-1", 4, now); err != nil {
		t.Fatalf("RecordParticipation() error = %v", err)
	}
	if err := m.RecordParticipation("player-2", 2, now.Add(time.Minute)); err != nil {
		t.Fatalf("RecordParticipation() error = %v", err)
	}

	// Repeat participation keeps the original result
	if err := m.RecordParticipation("player-1", 1, now.Add(time.Hour)); err != nil {
		t.Fatalf("repeat RecordParticipation() error = %v", err)
	}

	rank, found, err := m.Rank("player-1", now)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if !found || rank != 2 {
		t.Errorf("Rank(player-1) = %d, %v; want 2, true", rank, found)
	}

	if _, found, err := m.Rank("player-3", now); err != nil || found {
		t.Errorf("Rank(player-3) = found %v, err %v; want not found", found, err)
	}

	board, err := m.Leaderboard(now, 1)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	if len(board) != 1 || board[0].PlayerID != "player-2" {
		t.Errorf("Leaderboard() = %+v, want player-2 alone", board)
	}
}
