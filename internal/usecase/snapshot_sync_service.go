package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/team"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
)

const (
	syncStatusSuccess = "success"
	syncStatusFailed  = "failed"

	maxGameweek = 38
)

// ExternalBootstrap is the static season snapshot published by the upstream API.
type ExternalBootstrap struct {
	Players   []player.Record
	Teams     []team.Team
	Gameweeks []gameweek.Gameweek
}

// SnapshotSource is the upstream data provider.
type SnapshotSource interface {
	FetchBootstrap(ctx context.Context) (ExternalBootstrap, error)
	FetchFixtures(ctx context.Context) ([]fixture.Fixture, error)
	FetchLive(ctx context.Context, gameweek int) ([]live.ElementStats, error)
}

// PayloadPurger is implemented by sources that cache upstream responses. Sync purges them so
// entry picks read after a refresh match the new snapshot.
type PayloadPurger interface {
	PurgePayloadCache(ctx context.Context) (int, error)
}

// CacheInvalidator drops derived read caches after new data lands.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type SyncInput struct {
	// Gameweeks lists live stats to refresh; empty means the current gameweek only.
	Gameweeks []int
}

type SyncResult struct {
	RunID          string
	StartedAt      time.Time
	DurationMs     int64
	Players        int
	SkippedPlayers int
	Teams          int
	Gameweeks      int
	Fixtures       int
	SuccessCount   int
	FailedCount    int
	Tasks          []SyncTaskResult
}

type SyncTaskResult struct {
	Task       string
	Gameweek   int
	Status     string
	Records    int
	DurationMs int64
	Message    string
}

type SnapshotSyncConfig struct {
	Workers int
}

type SnapshotSyncService struct {
	source       SnapshotSource
	playerRepo   player.Repository
	teamRepo     team.Repository
	gameweekRepo gameweek.Repository
	fixtureRepo  fixture.Repository
	liveRepo     live.Repository
	invalidator  CacheInvalidator
	cfg          SnapshotSyncConfig
	logger       *logging.Logger

	running atomic.Bool
}

func NewSnapshotSyncService(
	source SnapshotSource,
	playerRepo player.Repository,
	teamRepo team.Repository,
	gameweekRepo gameweek.Repository,
	fixtureRepo fixture.Repository,
	liveRepo live.Repository,
	invalidator CacheInvalidator,
	cfg SnapshotSyncConfig,
	logger *logging.Logger,
) *SnapshotSyncService {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &SnapshotSyncService{
		source:       source,
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		gameweekRepo: gameweekRepo,
		fixtureRepo:  fixtureRepo,
		liveRepo:     liveRepo,
		invalidator:  invalidator,
		cfg:          cfg,
		logger:       logging.OrDefault(logger),
	}
}

// Sync pulls the upstream snapshot into storage. Only one sync runs at a time; a second caller
// gets ErrConflict.
func (s *SnapshotSyncService) Sync(ctx context.Context, input SyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotSyncService.Sync")
	defer span.End()

	for _, gw := range input.Gameweeks {
		if gw < 1 || gw > maxGameweek {
			return SyncResult{}, fmt.Errorf("%w: gameweek %d out of range", ErrInvalidInput, gw)
		}
	}
	if s.source == nil {
		return SyncResult{}, fmt.Errorf("%w: snapshot source is not configured", ErrDependencyUnavailable)
	}
	if !s.running.CompareAndSwap(false, true) {
		return SyncResult{}, fmt.Errorf("%w: snapshot sync already running", ErrConflict)
	}
	defer s.running.Store(false)

	started := time.Now()
	result := SyncResult{
		RunID:     uuid.NewString(),
		StartedAt: started.UTC(),
		Tasks:     make([]SyncTaskResult, 0, 2+len(input.Gameweeks)),
	}
	logger := s.logger.With("run_id", result.RunID)
	logger.InfoContext(ctx, "snapshot sync started", "gameweeks", input.Gameweeks)
	s.purgePayloads(ctx, logger)

	bootstrapTask, current, err := s.syncBootstrap(ctx, &result)
	result.Tasks = append(result.Tasks, bootstrapTask)
	if err != nil {
		logger.ErrorContext(ctx, "snapshot sync bootstrap failed", "error", err)
		return SyncResult{}, err
	}

	result.Tasks = append(result.Tasks, s.syncFixtures(ctx, &result))

	gameweeks := dedupeGameweeks(input.Gameweeks)
	if len(gameweeks) == 0 {
		gameweeks = []int{current}
	}
	liveTasks, err := s.syncLive(ctx, gameweeks)
	if err != nil {
		return SyncResult{}, err
	}
	result.Tasks = append(result.Tasks, liveTasks...)

	for _, task := range result.Tasks {
		if task.Status == syncStatusSuccess {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}

	result.DurationMs = time.Since(started).Milliseconds()
	logger.InfoContext(ctx, "snapshot sync finished",
		"players", result.Players,
		"fixtures", result.Fixtures,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *SnapshotSyncService) purgePayloads(ctx context.Context, logger *logging.Logger) {
	purger, ok := s.source.(PayloadPurger)
	if !ok {
		return
	}
	removed, err := purger.PurgePayloadCache(ctx)
	if err != nil {
		logger.WarnContext(ctx, "purge upstream payload cache failed", "error", err)
		return
	}
	logger.DebugContext(ctx, "upstream payload cache purged", "removed", removed)
}

func (s *SnapshotSyncService) syncBootstrap(ctx context.Context, result *SyncResult) (SyncTaskResult, int, error) {
	start := time.Now()
	task := SyncTaskResult{Task: "bootstrap", Status: syncStatusFailed}
	fail := func(err error) (SyncTaskResult, int, error) {
		task.Message = err.Error()
		task.DurationMs = time.Since(start).Milliseconds()
		return task, 0, err
	}

	bootstrap, err := s.source.FetchBootstrap(ctx)
	if err != nil {
		return fail(fmt.Errorf("fetch bootstrap: %w", err))
	}

	players := make([]player.Player, 0, len(bootstrap.Players))
	for _, record := range bootstrap.Players {
		p, newErr := player.New(record)
		if newErr != nil {
			result.SkippedPlayers++
			s.logger.WarnContext(ctx, "skip upstream player", "player_id", record.ID, "error", newErr)
			continue
		}
		players = append(players, p)
	}

	teams := make([]team.Team, 0, len(bootstrap.Teams))
	for _, item := range bootstrap.Teams {
		if validateErr := item.Validate(); validateErr != nil {
			s.logger.WarnContext(ctx, "skip upstream team", "team_id", item.ID, "error", validateErr)
			continue
		}
		teams = append(teams, item)
	}

	if err := s.teamRepo.UpsertAll(ctx, teams); err != nil {
		return fail(fmt.Errorf("upsert teams: %w", err))
	}
	if err := s.playerRepo.UpsertAll(ctx, players); err != nil {
		return fail(fmt.Errorf("upsert players: %w", err))
	}
	if err := s.gameweekRepo.UpsertAll(ctx, bootstrap.Gameweeks); err != nil {
		return fail(fmt.Errorf("upsert gameweeks: %w", err))
	}

	result.Players = len(players)
	result.Teams = len(teams)
	result.Gameweeks = len(bootstrap.Gameweeks)

	task.Status = syncStatusSuccess
	task.Records = len(players) + len(teams) + len(bootstrap.Gameweeks)
	task.DurationMs = time.Since(start).Milliseconds()
	return task, gameweek.ResolveCurrent(bootstrap.Gameweeks), nil
}

func (s *SnapshotSyncService) syncFixtures(ctx context.Context, result *SyncResult) SyncTaskResult {
	start := time.Now()
	task := SyncTaskResult{Task: "fixtures", Status: syncStatusFailed}

	fixtures, err := s.source.FetchFixtures(ctx)
	if err == nil {
		err = s.fixtureRepo.UpsertAll(ctx, fixtures)
	}
	task.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		task.Message = err.Error()
		s.logger.WarnContext(ctx, "sync fixtures failed", "error", err)
		return task
	}

	result.Fixtures = len(fixtures)
	task.Status = syncStatusSuccess
	task.Records = len(fixtures)
	return task
}

// syncLive refreshes each gameweek's live stats on a bounded ants pool.
func (s *SnapshotSyncService) syncLive(ctx context.Context, gameweeks []int) ([]SyncTaskResult, error) {
	workerCount := min(s.cfg.Workers, len(gameweeks))
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make(chan SyncTaskResult, len(gameweeks))
	var workers sync.WaitGroup
	for _, gw := range gameweeks {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			results <- s.syncLiveGameweek(ctx, gw)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]SyncTaskResult, 0, len(gameweeks))
	for row := range results {
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Gameweek < out[j].Gameweek
	})
	return out, nil
}

func (s *SnapshotSyncService) syncLiveGameweek(ctx context.Context, gw int) SyncTaskResult {
	start := time.Now()
	task := SyncTaskResult{Task: "live", Gameweek: gw, Status: syncStatusFailed}

	stats, err := s.source.FetchLive(ctx, gw)
	if err == nil {
		err = s.liveRepo.ReplaceGameweek(ctx, gw, stats)
	}
	task.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		task.Message = err.Error()
		if !errors.Is(err, context.Canceled) {
			s.logger.WarnContext(ctx, "sync live stats failed", "gameweek", gw, "error", err)
		}
		return task
	}

	task.Status = syncStatusSuccess
	task.Records = len(stats)
	return task
}

func dedupeGameweeks(gameweeks []int) []int {
	seen := make(map[int]struct{}, len(gameweeks))
	out := make([]int, 0, len(gameweeks))
	for _, gw := range gameweeks {
		if _, ok := seen[gw]; ok {
			continue
		}
		seen[gw] = struct{}{}
		out = append(out, gw)
	}
	sort.Ints(out)
	return out
}
