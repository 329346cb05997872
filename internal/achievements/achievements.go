package achievements

import (
	"time"

	"wordlearena/internal/models"
)

// RuleKind separates the two predicate shapes a rule may have
type RuleKind int

const (
	// KindPerGame rules inspect a single completed game
	KindPerGame RuleKind = iota
	// KindCumulative rules inspect the player's total game count
	KindCumulative
)

// Rule is one achievement definition. Exactly one of PerGame or
// Cumulative is set, matching Kind.
type Rule struct {
	ID          string
	Name        string
	Description string
	Kind        RuleKind
	PerGame     func(game *models.CompletedGame) bool
	Cumulative  func(totalGames int) bool
}

// Rules is the fixed achievement set. Rules are independent of each
// other; evaluation order does not matter.
var Rules = []Rule{
	{
		ID:          "speedster",
		Name:        "Speedster",
		Description: "Win a game in under 30 seconds",
		Kind:        KindPerGame,
		PerGame: func(game *models.CompletedGame) bool {
			return game.Won && game.DurationSeconds < 30
		},
	},
	{
		ID:          "perfectionist",
		Name:        "Perfectionist",
		Description: "Win on the first guess",
		Kind:        KindPerGame,
		PerGame: func(game *models.CompletedGame) bool {
			return game.Won && game.Attempts() == 1
		},
	},
	{
		ID:          "hint_hater",
		Name:        "Hint Hater",
		Description: "Win without using a hint",
		Kind:        KindPerGame,
		PerGame: func(game *models.CompletedGame) bool {
			return game.Won && game.HintsUsed == 0
		},
	},
	{
		ID:          "veteran",
		Name:        "Veteran",
		Description: "Finish 100 games",
		Kind:        KindCumulative,
		Cumulative: func(totalGames int) bool {
			return totalGames >= 100
		},
	},
}

// ByID looks up a rule definition
func ByID(id string) (Rule, bool) {
	for _, rule := range Rules {
		if rule.ID == id {
			return rule, true
		}
	}
	return Rule{}, false
}

// Evaluate checks every not-yet-unlocked rule against a freshly
// completed game and the player's cumulative game count (which already
// includes this game). All newly satisfied rules are returned together;
// already unlocked rules are never re-evaluated.
func Evaluate(game *models.CompletedGame, totalGames int, unlocked map[string]time.Time) []Rule {
	var newlyUnlocked []Rule
	for _, rule := range Rules {
		if _, done := unlocked[rule.ID]; done {
			continue
		}

		satisfied := false
		switch rule.Kind {
		case KindPerGame:
			satisfied = rule.PerGame(game)
		case KindCumulative:
			satisfied = rule.Cumulative(totalGames)
		}

		if satisfied {
			newlyUnlocked = append(newlyUnlocked, rule)
		}
	}
	return newlyUnlocked
}
