package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	byID  map[int]player.Player
	order []int
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{byID: make(map[int]player.Player, len(players))}
	r.upsert(players)
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []int) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.byID[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) UpsertAll(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.upsert(players)
	return nil
}

func (r *PlayerRepository) upsert(players []player.Player) {
	for _, p := range players {
		if _, ok := r.byID[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.byID[p.ID] = p
	}
	sort.Ints(r.order)
}
