package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	qb "github.com/riskibarqy/fpl-insights/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).From("players").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}
	return r.selectPlayers(ctx, "select players", query, args)
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []int) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerColumns...).From("players").
		Where(qb.In("id", playerIDs)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}
	return r.selectPlayers(ctx, "select players by ids", query, args)
}

func (r *PlayerRepository) UpsertAll(ctx context.Context, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}

	rows := make([]playerTableModel, 0, len(players))
	for _, p := range players {
		rows = append(rows, playerToModel(p))
	}
	update := append(qb.Without(playerColumns, "id"), "updated_at")
	return withTx(ctx, r.db, "upsert players", func(tx *sqlx.Tx) error {
		return upsertRows(ctx, tx, "players", rows, []string{"id"}, update...)
	})
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, op, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
