package fixture

import "sort"

const (
	DefaultHorizon    = 5
	NeutralDifficulty = 3.0
)

// DifficultyIndex answers "how hard are this team's next N matches" from a fixture snapshot.
type DifficultyIndex struct {
	upcoming map[int][]int
}

// NewDifficultyIndex keeps unfinished fixtures from fromGameweek onwards. Fixtures without a
// gameweek (unscheduled) are ignored.
func NewDifficultyIndex(fixtures []Fixture, fromGameweek int) *DifficultyIndex {
	pending := make([]Fixture, 0, len(fixtures))
	for _, item := range fixtures {
		if item.Finished || item.Gameweek <= 0 || item.Gameweek < fromGameweek {
			continue
		}
		pending = append(pending, item)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].Gameweek != pending[j].Gameweek {
			return pending[i].Gameweek < pending[j].Gameweek
		}
		if !pending[i].KickoffAt.Equal(pending[j].KickoffAt) {
			return pending[i].KickoffAt.Before(pending[j].KickoffAt)
		}
		return pending[i].ID < pending[j].ID
	})

	upcoming := make(map[int][]int)
	for _, item := range pending {
		upcoming[item.HomeTeamID] = append(upcoming[item.HomeTeamID], item.HomeDifficulty)
		upcoming[item.AwayTeamID] = append(upcoming[item.AwayTeamID], item.AwayDifficulty)
	}

	return &DifficultyIndex{upcoming: upcoming}
}

// Average returns the mean difficulty over the team's next horizon fixtures.
// A team with nothing scheduled gets NeutralDifficulty.
func (d *DifficultyIndex) Average(teamID, horizon int) float64 {
	if d == nil {
		return NeutralDifficulty
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	ratings := d.upcoming[teamID]
	if len(ratings) == 0 {
		return NeutralDifficulty
	}
	if len(ratings) > horizon {
		ratings = ratings[:horizon]
	}

	total := 0
	for _, rating := range ratings {
		total += rating
	}
	return float64(total) / float64(len(ratings))
}

// Upcoming returns up to horizon difficulty ratings in kickoff order.
func (d *DifficultyIndex) Upcoming(teamID, horizon int) []int {
	if d == nil {
		return nil
	}
	ratings := d.upcoming[teamID]
	if horizon > 0 && len(ratings) > horizon {
		ratings = ratings[:horizon]
	}
	return append([]int(nil), ratings...)
}
