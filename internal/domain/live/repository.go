package live

import "context"

// Repository stores live stats per gameweek.
type Repository interface {
	ListByGameweek(ctx context.Context, gameweek int) ([]ElementStats, error)
	ReplaceGameweek(ctx context.Context, gameweek int, stats []ElementStats) error
}
