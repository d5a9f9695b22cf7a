package team

import "fmt"

// Team is a Premier League club as exposed by the bootstrap snapshot.
type Team struct {
	ID        int
	Name      string
	ShortName string
	Strength  int
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Index maps team ids to teams for lookups during analysis.
func Index(teams []Team) map[int]Team {
	out := make(map[int]Team, len(teams))
	for _, item := range teams {
		out[item.ID] = item
	}
	return out
}
