package achievements

import (
	"testing"
	"time"

	"wordlearena/internal/models"
)

func wonGame(attempts, hintsUsed int, duration float64) *models.CompletedGame {
	guesses := make([]models.GuessRecord, attempts)
	return &models.CompletedGame{
		Guesses:         guesses,
		HintsUsed:       hintsUsed,
		Won:             true,
		DurationSeconds: duration,
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		game       *models.CompletedGame
		totalGames int
		unlocked   map[string]time.Time
		wantIDs    []string
	}{
		{
			name:    "fast first-guess win without hints unlocks three rules",
			game:    wonGame(1, 0, 12.5),
			wantIDs: []string{"speedster", "perfectionist", "hint_hater"},
		},
		{
			name:    "slow multi-guess win with hints unlocks nothing",
			game:    wonGame(4, 2, 95),
			wantIDs: nil,
		},
		{
			name: "loss unlocks no per-game rules",
			game: &models.CompletedGame{
				Guesses:         make([]models.GuessRecord, 1),
				DurationSeconds: 5,
			},
			wantIDs: nil,
		},
		{
			name:    "quick win just over the speedster threshold",
			game:    wonGame(2, 0, 30),
			wantIDs: []string{"hint_hater"},
		},
		{
			name:       "hundredth game unlocks veteran even on a loss",
			game:       &models.CompletedGame{Guesses: make([]models.GuessRecord, 6)},
			totalGames: 100,
			wantIDs:    []string{"veteran"},
		},
		{
			name:       "ninety-nine games is not veteran",
			game:       &models.CompletedGame{Guesses: make([]models.GuessRecord, 6)},
			totalGames: 99,
			wantIDs:    nil,
		},
		{
			name: "already unlocked rules are skipped",
			game: wonGame(1, 0, 5),
			unlocked: map[string]time.Time{
				"speedster":     time.Now(),
				"perfectionist": time.Now(),
			},
			wantIDs: []string{"hint_hater"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unlocked := tt.unlocked
			if unlocked == nil {
				unlocked = map[string]time.Time{}
			}

			rules := Evaluate(tt.game, tt.totalGames, unlocked)

			got := make([]string, 0, len(rules))
			for _, rule := range rules {
				got = append(got, rule.ID)
			}

			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Evaluate() unlocked %v, want %v", got, tt.wantIDs)
			}
			for i, id := range tt.wantIDs {
				if got[i] != id {
					t.Errorf("unlock %d: got %s, want %s", i, got[i], id)
				}
			}
		})
	}
}

func TestByID(t *testing.T) {
	rule, ok := ByID("veteran")
	if !ok {
		t.Fatal("ByID(veteran) not found")
	}
	if rule.Kind != KindCumulative {
		t.Errorf("veteran kind = %v, want cumulative", rule.Kind)
	}

	if _, ok := ByID("unknown"); ok {
		t.Error("ByID(unknown) found a rule")
	}
}
