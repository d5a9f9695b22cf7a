package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fpl-insights/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[int]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[int]team.Team, len(teams))
	for _, t := range teams {
		items[t.ID] = t
	}
	return &TeamRepository{items: items}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) UpsertAll(_ context.Context, teams []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range teams {
		r.items[t.ID] = t
	}
	return nil
}
