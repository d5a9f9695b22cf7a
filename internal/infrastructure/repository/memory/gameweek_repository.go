package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
)

type GameweekRepository struct {
	mu    sync.RWMutex
	items map[int]gameweek.Gameweek
}

func NewGameweekRepository(gameweeks []gameweek.Gameweek) *GameweekRepository {
	items := make(map[int]gameweek.Gameweek, len(gameweeks))
	for _, gw := range gameweeks {
		items[gw.ID] = gw
	}
	return &GameweekRepository{items: items}
}

func (r *GameweekRepository) List(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.items))
	for _, gw := range r.items {
		out = append(out, gw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *GameweekRepository) UpsertAll(_ context.Context, gameweeks []gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, gw := range gameweeks {
		r.items[gw.ID] = gw
	}
	return nil
}
