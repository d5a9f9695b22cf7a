package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/riskibarqy/fpl-insights/internal/platform/querybuilder"
)

// upsertBatchSize keeps every statement well under the 65535 bind parameter limit.
const upsertBatchSize = 500

func chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	out := make([][]T, 0, (len(items)+size-1)/max(size, 1))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// upsertRows writes rows in batches inside the given transaction.
func upsertRows[T any](ctx context.Context, tx *sqlx.Tx, table string, rows []T, conflict []string, update ...string) error {
	for _, batch := range chunk(rows, upsertBatchSize) {
		builder, err := qb.InsertModels(table, batch)
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", table, err)
		}
		query, args, err := builder.OnConflictUpdate(conflict, update...).ToSQL()
		if err != nil {
			return fmt.Errorf("render upsert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %s rows=%d: %w", table, len(batch), err)
		}
	}
	return nil
}

func withTx(ctx context.Context, db *sqlx.DB, name string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx %s: %w", name, err)
	}
	return nil
}

func nullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func intPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int32)
	return &out
}
