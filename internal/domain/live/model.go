package live

// ElementStats is one player's live line for a single gameweek.
type ElementStats struct {
	PlayerID    int
	Gameweek    int
	Minutes     int
	TotalPoints int
	Goals       int
	Assists     int
	CleanSheets int
	Bonus       int
	BPS         int
}

// PointsByPlayer indexes gameweek points by player id. A player listed twice (double gameweek rows)
// has the rows summed.
func PointsByPlayer(stats []ElementStats) map[int]int {
	out := make(map[int]int, len(stats))
	for _, item := range stats {
		out[item.PlayerID] += item.TotalPoints
	}
	return out
}
