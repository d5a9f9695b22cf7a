package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fpl-insights/internal/domain/team"
	qb "github.com/riskibarqy/fpl-insights/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) UpsertAll(ctx context.Context, teams []team.Team) error {
	if len(teams) == 0 {
		return nil
	}

	rows := make([]teamTableModel, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, teamToModel(t))
	}
	return withTx(ctx, r.db, "upsert teams", func(tx *sqlx.Tx) error {
		return upsertRows(ctx, tx, "teams", rows, []string{"id"}, append(qb.Without(teamColumns, "id"), "updated_at")...)
	})
}
