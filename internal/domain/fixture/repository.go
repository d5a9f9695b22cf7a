package fixture

import "context"

// Repository exposes fixture snapshot operations.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	UpsertAll(ctx context.Context, fixtures []Fixture) error
}
