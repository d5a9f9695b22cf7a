package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	qb "github.com/riskibarqy/fpl-insights/internal/platform/querybuilder"
)

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select(gameweekColumns...).From("gameweeks").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select gameweeks: %w", err)
	}

	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameweekRepository) UpsertAll(ctx context.Context, gameweeks []gameweek.Gameweek) error {
	if len(gameweeks) == 0 {
		return nil
	}

	rows := make([]gameweekTableModel, 0, len(gameweeks))
	for _, gw := range gameweeks {
		rows = append(rows, gameweekToModel(gw))
	}
	return withTx(ctx, r.db, "upsert gameweeks", func(tx *sqlx.Tx) error {
		return upsertRows(ctx, tx, "gameweeks", rows, []string{"id"}, append(qb.Without(gameweekColumns, "id"), "updated_at")...)
	})
}
