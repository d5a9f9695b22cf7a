package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
)

// SquadRepository serves manager picks from memory. It backs local runs and tests where the
// upstream entry endpoint is not reachable.
type SquadRepository struct {
	mu    sync.RWMutex
	items map[entryKey]squad.Entry
}

type entryKey struct {
	entryID  int
	gameweek int
}

func NewSquadRepository(entries ...squad.Entry) *SquadRepository {
	r := &SquadRepository{items: make(map[entryKey]squad.Entry, len(entries))}
	for _, e := range entries {
		r.items[entryKey{entryID: e.ID, gameweek: e.Gameweek}] = cloneEntry(e)
	}
	return r
}

func (r *SquadRepository) GetEntry(_ context.Context, entryID, gw int) (squad.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[entryKey{entryID: entryID, gameweek: gw}]
	if !ok {
		return squad.Entry{}, false, nil
	}
	return cloneEntry(e), true, nil
}

func cloneEntry(e squad.Entry) squad.Entry {
	copied := e
	copied.Picks = append([]squad.Pick(nil), e.Picks...)
	return copied
}
