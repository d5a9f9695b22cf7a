package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fpl-insights/internal/domain/live"
)

type LiveRepository struct {
	mu         sync.RWMutex
	byGameweek map[int][]live.ElementStats
}

func NewLiveRepository(stats ...live.ElementStats) *LiveRepository {
	r := &LiveRepository{byGameweek: make(map[int][]live.ElementStats)}
	for _, s := range stats {
		r.byGameweek[s.Gameweek] = append(r.byGameweek[s.Gameweek], s)
	}
	return r
}

func (r *LiveRepository) ListByGameweek(_ context.Context, gw int) ([]live.ElementStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byGameweek[gw]
	out := make([]live.ElementStats, 0, len(items))
	out = append(out, items...)
	return out, nil
}

// ReplaceGameweek swaps the whole gameweek snapshot; an empty slice clears it.
func (r *LiveRepository) ReplaceGameweek(_ context.Context, gw int, stats []live.ElementStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(stats) == 0 {
		delete(r.byGameweek, gw)
		return nil
	}
	r.byGameweek[gw] = append([]live.ElementStats(nil), stats...)
	return nil
}
