package gameweek

import "context"

// Repository describes gameweek persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Gameweek, error)
	UpsertAll(ctx context.Context, gameweeks []Gameweek) error
}
