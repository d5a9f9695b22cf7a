package gameweek

import "time"

// Gameweek is one round of fixtures with the aggregate scoring numbers published for it.
type Gameweek struct {
	ID              int
	Name            string
	Deadline        time.Time
	AverageScore    int
	HighestScore    int
	IsPrevious      bool
	IsCurrent       bool
	IsNext          bool
	Finished        bool
	TopElementID    int
	MostCaptainedID int
}

// ResolveCurrent picks the active gameweek id: the one flagged current, else the one before the
// next, else the last finished one, else 1.
func ResolveCurrent(items []Gameweek) int {
	for _, item := range items {
		if item.IsCurrent && item.ID > 0 {
			return item.ID
		}
	}
	for _, item := range items {
		if item.IsNext && item.ID > 1 {
			return item.ID - 1
		}
	}

	lastFinished := 0
	for _, item := range items {
		if item.Finished && item.ID > lastFinished {
			lastFinished = item.ID
		}
	}
	if lastFinished > 0 {
		return lastFinished
	}

	return 1
}

// Find returns the gameweek with the given id.
func Find(items []Gameweek, id int) (Gameweek, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Gameweek{}, false
}
