package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
)

type FixtureRepository struct {
	mu    sync.RWMutex
	items map[int]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	items := make(map[int]fixture.Fixture, len(fixtures))
	for _, f := range fixtures {
		items[f.ID] = f
	}
	return &FixtureRepository{items: items}
}

// List returns fixtures ordered by gameweek, kickoff and id.
func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.items))
	for _, f := range r.items {
		out = append(out, cloneFixture(f))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *FixtureRepository) UpsertAll(_ context.Context, fixtures []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range fixtures {
		r.items[f.ID] = cloneFixture(f)
	}
	return nil
}

func cloneFixture(f fixture.Fixture) fixture.Fixture {
	copied := f
	if f.HomeScore != nil {
		v := *f.HomeScore
		copied.HomeScore = &v
	}
	if f.AwayScore != nil {
		v := *f.AwayScore
		copied.AwayScore = &v
	}
	return copied
}
