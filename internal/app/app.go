package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fpl-insights/external/fplapi"
	"github.com/riskibarqy/fpl-insights/internal/config"
	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
	"github.com/riskibarqy/fpl-insights/internal/domain/team"
	cacherepo "github.com/riskibarqy/fpl-insights/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fpl-insights/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fpl-insights/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fpl-insights/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fpl-insights/internal/platform/cache"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/platform/resilience"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

// App owns the HTTP server, the sync scheduler and every resource they hold open.
type App struct {
	Server    *http.Server
	Scheduler *Scheduler
	Sync      *usecase.SnapshotSyncService

	logger  *logging.Logger
	closers []func() error
}

type repositories struct {
	players   player.Repository
	teams     team.Repository
	gameweeks gameweek.Repository
	fixtures  fixture.Repository
	live      live.Repository
	squads    squad.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	logger = logging.OrDefault(logger)
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	var payloads fplapi.PayloadCache
	if cfg.RedisEnabled {
		redisCache, err := basecache.NewRedisPayloadCache(ctx, basecache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, redisCache.Close)
		payloads = redisCache
		logger.Info("redis payload cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.PayloadCacheTTL.String())
	}

	client := fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:      cfg.FPLAPIBaseURL,
		UserAgent:    cfg.FPLAPIUserAgent,
		Timeout:      cfg.FPLAPITimeout,
		MaxRetries:   cfg.FPLAPIMaxRetries,
		RetryBackoff: cfg.FPLAPIRetryBackoff,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLAPICircuitEnabled,
			FailureThreshold: cfg.FPLAPICircuitFailureCount,
			OpenTimeout:      cfg.FPLAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLAPICircuitHalfOpenMaxReq,
		},
		PayloadCache: payloads,
		PayloadTTL:   cfg.PayloadCacheTTL,
	})

	repos, err := a.buildRepositories(cfg, client)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var invalidator usecase.CacheInvalidator
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.gameweeks = cacherepo.NewGameweekRepository(repos.gameweeks, store)
		repos.fixtures = cacherepo.NewFixtureRepository(repos.fixtures, store)
		repos.live = cacherepo.NewLiveRepository(repos.live, store)
		invalidator = cacherepo.NewInvalidator(store, logger)
	}

	playerSvc := usecase.NewPlayerService(repos.players, repos.teams, repos.fixtures, repos.gameweeks, cfg.Analytics, logger)
	gameweekSvc := usecase.NewGameweekService(repos.gameweeks, repos.live, repos.players, logger)
	squadSvc := usecase.NewSquadAnalyticsService(repos.players, repos.fixtures, repos.gameweeks, repos.live, repos.squads, cfg.Analytics, logger)
	a.Sync = usecase.NewSnapshotSyncService(
		client,
		repos.players,
		repos.teams,
		repos.gameweeks,
		repos.fixtures,
		repos.live,
		invalidator,
		usecase.SnapshotSyncConfig{Workers: cfg.SyncWorkers},
		logger,
	)

	handler := httpapi.NewHandler(playerSvc, gameweekSvc, squadSvc, a.Sync, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	a.Scheduler, err = NewScheduler(cfg.SyncCron, a.Sync, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

// buildRepositories picks the snapshot store. Squads always come from the upstream API except in
// memory mode, where the seeded demo entry keeps the service usable offline.
func (a *App) buildRepositories(cfg config.Config, client *fplapi.Client) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, db.Close)
		return postgresRepositories(db, client), nil
	default:
		a.logger.Info("using in-memory snapshot store", "entry_id", memory.SeedEntryID, "gameweek", memory.SeedCurrentGameweek)
		return repositories{
			players:   memory.NewPlayerRepository(memory.SeedPlayers()),
			teams:     memory.NewTeamRepository(memory.SeedTeams()),
			gameweeks: memory.NewGameweekRepository(memory.SeedGameweeks()),
			fixtures:  memory.NewFixtureRepository(memory.SeedFixtures()),
			live:      memory.NewLiveRepository(memory.SeedLiveStats()...),
			squads:    memory.NewSquadRepository(memory.SeedEntries()...),
		}, nil
	}
}

func postgresRepositories(db *sqlx.DB, client *fplapi.Client) repositories {
	return repositories{
		players:   postgres.NewPlayerRepository(db),
		teams:     postgres.NewTeamRepository(db),
		gameweeks: postgres.NewGameweekRepository(db),
		fixtures:  postgres.NewFixtureRepository(db),
		live:      postgres.NewLiveRepository(db),
		squads:    client,
	}
}

// Run serves HTTP and the scheduler until ctx ends or the server fails.
func (a *App) Run(ctx context.Context, syncOnStartup bool) error {
	a.Scheduler.Start()
	if syncOnStartup {
		go a.Scheduler.RunOnce(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown stops the scheduler and the HTTP server. A scheduled sync that does not wind down
// before ctx expires is abandoned.
func (a *App) Shutdown(ctx context.Context) error {
	select {
	case <-a.Scheduler.Stop().Done():
	case <-ctx.Done():
		a.logger.Warn("scheduled snapshot sync still running at shutdown deadline", "error", ctx.Err())
	}
	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	a.logger.Info("http server stopped")
	return a.Close()
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
