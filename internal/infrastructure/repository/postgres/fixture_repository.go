package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	qb "github.com/riskibarqy/fpl-insights/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		OrderBy("gameweek", "kickoff_at NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FixtureRepository) UpsertAll(ctx context.Context, fixtures []fixture.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}

	rows := make([]fixtureTableModel, 0, len(fixtures))
	for _, f := range fixtures {
		rows = append(rows, fixtureToModel(f))
	}
	return withTx(ctx, r.db, "upsert fixtures", func(tx *sqlx.Tx) error {
		return upsertRows(ctx, tx, "fixtures", rows, []string{"id"}, append(qb.Without(fixtureColumns, "id"), "updated_at")...)
	})
}
