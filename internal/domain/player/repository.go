package player

import "context"

// Repository describes player snapshot persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []int) ([]Player, error)
	UpsertAll(ctx context.Context, players []Player) error
}
