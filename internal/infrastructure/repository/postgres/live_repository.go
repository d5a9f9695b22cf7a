package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	qb "github.com/riskibarqy/fpl-insights/internal/platform/querybuilder"
)

type LiveRepository struct {
	db *sqlx.DB
}

func NewLiveRepository(db *sqlx.DB) *LiveRepository {
	return &LiveRepository{db: db}
}

func (r *LiveRepository) ListByGameweek(ctx context.Context, gw int) ([]live.ElementStats, error) {
	query, args, err := qb.Select(liveStatColumns...).From("live_element_stats").
		Where(qb.Eq("gameweek", gw)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select live stats query: %w", err)
	}

	var rows []liveStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select live stats gameweek=%d: %w", gw, err)
	}

	out := make([]live.ElementStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ReplaceGameweek deletes the stored rows of the gameweek and inserts stats in one transaction.
func (r *LiveRepository) ReplaceGameweek(ctx context.Context, gw int, stats []live.ElementStats) error {
	rows := make([]liveStatTableModel, 0, len(stats))
	for _, s := range stats {
		s.Gameweek = gw
		rows = append(rows, liveStatToModel(s))
	}

	return withTx(ctx, r.db, "replace live stats", func(tx *sqlx.Tx) error {
		query, args, err := qb.DeleteFrom("live_element_stats").Where(qb.Eq("gameweek", gw)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete live stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete live stats gameweek=%d: %w", gw, err)
		}

		for _, batch := range chunk(rows, upsertBatchSize) {
			builder, err := qb.InsertModels("live_element_stats", batch)
			if err != nil {
				return fmt.Errorf("build insert live stats query: %w", err)
			}
			query, args, err := builder.ToSQL()
			if err != nil {
				return fmt.Errorf("render insert live stats query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert live stats gameweek=%d rows=%d: %w", gw, len(batch), err)
			}
		}
		return nil
	})
}
