package squad

import "context"

// Repository loads a manager's picks for a gameweek. ok is false when the entry does not exist.
type Repository interface {
	GetEntry(ctx context.Context, entryID, gameweek int) (Entry, bool, error)
}
