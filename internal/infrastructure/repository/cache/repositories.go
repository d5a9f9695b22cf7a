// Package cache decorates snapshot repositories with the in-process TTL store. Reads are served
// from the store; writes pass through and drop the affected keys.
package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/team"
	basecache "github.com/riskibarqy/fpl-insights/internal/platform/cache"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
)

const keyPrefix = "snapshot:"

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, keyPrefix+"player:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []int) ([]player.Player, error) {
	key := keyPrefix + "player:ids:" + joinIDs(playerIDs)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.GetByIDs(ctx, playerIDs)
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) UpsertAll(ctx context.Context, players []player.Player) error {
	if err := r.next.UpsertAll(ctx, players); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, keyPrefix+"player:")
	return nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, keyPrefix+"team:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) UpsertAll(ctx context.Context, teams []team.Team) error {
	if err := r.next.UpsertAll(ctx, teams); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, keyPrefix+"team:")
	return nil
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	items, err := basecache.Load(ctx, r.cache, keyPrefix+"fixture:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]fixture.Fixture(nil), items...), nil
}

func (r *FixtureRepository) UpsertAll(ctx context.Context, fixtures []fixture.Fixture) error {
	if err := r.next.UpsertAll(ctx, fixtures); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, keyPrefix+"fixture:")
	return nil
}

type GameweekRepository struct {
	next  gameweek.Repository
	cache *basecache.Store
}

func NewGameweekRepository(next gameweek.Repository, cache *basecache.Store) *GameweekRepository {
	return &GameweekRepository{next: next, cache: cache}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	items, err := basecache.Load(ctx, r.cache, keyPrefix+"gameweek:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]gameweek.Gameweek(nil), items...), nil
}

func (r *GameweekRepository) UpsertAll(ctx context.Context, gameweeks []gameweek.Gameweek) error {
	if err := r.next.UpsertAll(ctx, gameweeks); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, keyPrefix+"gameweek:")
	return nil
}

type LiveRepository struct {
	next  live.Repository
	cache *basecache.Store
}

func NewLiveRepository(next live.Repository, cache *basecache.Store) *LiveRepository {
	return &LiveRepository{next: next, cache: cache}
}

func (r *LiveRepository) ListByGameweek(ctx context.Context, gw int) ([]live.ElementStats, error) {
	items, err := basecache.Load(ctx, r.cache, liveKey(gw), func(ctx context.Context) ([]live.ElementStats, error) {
		return r.next.ListByGameweek(ctx, gw)
	})
	if err != nil {
		return nil, err
	}
	return append([]live.ElementStats{}, items...), nil
}

func (r *LiveRepository) ReplaceGameweek(ctx context.Context, gw int, stats []live.ElementStats) error {
	if err := r.next.ReplaceGameweek(ctx, gw, stats); err != nil {
		return err
	}
	r.cache.Delete(ctx, liveKey(gw))
	return nil
}

// Invalidator drops every cached snapshot read. It satisfies usecase.CacheInvalidator.
type Invalidator struct {
	cache  *basecache.Store
	logger *logging.Logger
}

func NewInvalidator(cache *basecache.Store, logger *logging.Logger) *Invalidator {
	return &Invalidator{cache: cache, logger: logging.OrDefault(logger)}
}

func (i *Invalidator) Invalidate(ctx context.Context) {
	if i == nil || i.cache == nil {
		return
	}
	removed := i.cache.DeletePrefix(ctx, keyPrefix)
	i.logger.DebugContext(ctx, "snapshot cache invalidated", "removed", removed)
}

func liveKey(gw int) string {
	return keyPrefix + "live:gw:" + strconv.Itoa(gw)
}

func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
