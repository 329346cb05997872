package models

// PlayerSummary is one row of a scope leaderboard
type PlayerSummary struct {
	PlayerID          string
	Wins              int
	TotalGames        int
	AvgAttemptsPerWin float64
	WinRate           float64
}

// StatLine summarizes wins and losses for one identity partition
type StatLine struct {
	Wins    int
	Losses  int
	WinRate float64
}

// PlayerStats combines a player's public games with the games recorded
// under their pseudonym. The two lines are computed from disjoint
// partitions and never merged into shared views.
type PlayerStats struct {
	PlayerID  string
	Public    StatLine
	Anonymous StatLine
}
