package fixture

import "time"

// Fixture represents one scheduled match. Difficulty is the 1-5 rating from each side's point of view.
type Fixture struct {
	ID             int
	Gameweek       int
	HomeTeamID     int
	AwayTeamID     int
	HomeDifficulty int
	AwayDifficulty int
	KickoffAt      time.Time
	Started        bool
	Finished       bool
	HomeScore      *int
	AwayScore      *int
}

// Involves reports whether teamID plays in the fixture.
func (f Fixture) Involves(teamID int) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// DifficultyFor returns the rating the given team faces, or 0 when the team is not involved.
func (f Fixture) DifficultyFor(teamID int) int {
	switch teamID {
	case f.HomeTeamID:
		return f.HomeDifficulty
	case f.AwayTeamID:
		return f.AwayDifficulty
	default:
		return 0
	}
}

// OpponentFor returns the other side's team id, or 0 when the team is not involved.
func (f Fixture) OpponentFor(teamID int) int {
	switch teamID {
	case f.HomeTeamID:
		return f.AwayTeamID
	case f.AwayTeamID:
		return f.HomeTeamID
	default:
		return 0
	}
}
