package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	UpsertAll(ctx context.Context, teams []Team) error
}
