package service

import (
	"sort"

	"github.com/samber/lo"

	"wordlearena/internal/models"
)

// GetLeaderboard derives ranked standings from the public games in a
// scope (models.ScopeGlobal for the cross-scope view). Ordering rewards
// volume and consistency: descending wins, then descending total games,
// then ascending average attempts among wins. Players with no games in
// scope do not appear.
func (e *Engine) GetLeaderboard(scopeID string) ([]models.PlayerSummary, error) {
	games, err := e.history.GamesInScope(scopeID)
	if err != nil {
		return nil, err
	}

	grouped := lo.GroupBy(games, func(g models.CompletedGame) string {
		return g.PlayerID
	})

	summaries := lo.MapToSlice(grouped, func(playerID string, playerGames []models.CompletedGame) models.PlayerSummary {
		return summarize(playerID, playerGames)
	})

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.TotalGames != b.TotalGames {
			return a.TotalGames > b.TotalGames
		}
		if a.AvgAttemptsPerWin != b.AvgAttemptsPerWin {
			return a.AvgAttemptsPerWin < b.AvgAttemptsPerWin
		}
		return a.PlayerID < b.PlayerID
	})

	return summaries, nil
}

// GetPlayerStats summarizes a player's record, split into the public
// partition and the player's pseudonymous partition. The pseudonymous
// line is only computed for the player themselves; other requesters see
// the public line alone, and a player with private stats refuses other
// requesters entirely.
func (e *Engine) GetPlayerStats(requesterID, playerID string) (*models.PlayerStats, error) {
	settings, err := e.GetSettings(playerID)
	if err != nil {
		return nil, err
	}
	if requesterID != playerID && !settings.StatsPublic {
		return nil, ErrPrivate
	}

	publicGames, err := e.history.GamesForPlayer(playerID, models.ScopeGlobal)
	if err != nil {
		return nil, err
	}

	stats := &models.PlayerStats{
		PlayerID: playerID,
		Public:   statLine(publicGames),
	}

	if requesterID == playerID {
		anonGames, err := e.history.AnonymousGames(settings.AnonToken)
		if err != nil {
			return nil, err
		}
		stats.Anonymous = statLine(anonGames)
	}

	return stats, nil
}

func summarize(playerID string, games []models.CompletedGame) models.PlayerSummary {
	wins := lo.CountBy(games, func(g models.CompletedGame) bool { return g.Won })

	attemptsAmongWins := lo.SumBy(games, func(g models.CompletedGame) int {
		if g.Won {
			return g.Attempts()
		}
		return 0
	})

	summary := models.PlayerSummary{
		PlayerID:   playerID,
		Wins:       wins,
		TotalGames: len(games),
	}
	if wins > 0 {
		summary.AvgAttemptsPerWin = float64(attemptsAmongWins) / float64(wins)
	}
	if len(games) > 0 {
		summary.WinRate = float64(wins) / float64(len(games))
	}
	return summary
}

func statLine(games []models.CompletedGame) models.StatLine {
	wins := lo.CountBy(games, func(g models.CompletedGame) bool { return g.Won })

	line := models.StatLine{
		Wins:   wins,
		Losses: len(games) - wins,
	}
	if len(games) > 0 {
		line.WinRate = float64(wins) / float64(len(games))
	}
	return line
}
