package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-insights/internal/domain/analytics"
	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
)

type ReplacementResult struct {
	EntryID    int
	Gameweek   int
	Bank       int64
	Member     analytics.MemberReport
	Candidates []analytics.Candidate
}

type SquadAnalyticsService struct {
	playerRepo   player.Repository
	fixtureRepo  fixture.Repository
	gameweekRepo gameweek.Repository
	liveRepo     live.Repository
	squadRepo    squad.Repository
	cfg          analytics.Config
	logger       *logging.Logger
}

func NewSquadAnalyticsService(
	playerRepo player.Repository,
	fixtureRepo fixture.Repository,
	gameweekRepo gameweek.Repository,
	liveRepo live.Repository,
	squadRepo squad.Repository,
	cfg analytics.Config,
	logger *logging.Logger,
) *SquadAnalyticsService {
	return &SquadAnalyticsService{
		playerRepo:   playerRepo,
		fixtureRepo:  fixtureRepo,
		gameweekRepo: gameweekRepo,
		liveRepo:     liveRepo,
		squadRepo:    squadRepo,
		cfg:          cfg,
		logger:       logging.OrDefault(logger),
	}
}

type squadSnapshot struct {
	ac      analyticsContext
	pool    []player.Player
	entry   squad.Entry
	points  map[int]int
	hasLive bool
}

func (s *SquadAnalyticsService) Analyze(ctx context.Context, entryID, gw int) (analytics.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadAnalyticsService.Analyze",
		attribute.Int("entry_id", entryID),
		attribute.Int("gameweek", gw),
	)
	defer span.End()

	snapshot, err := s.load(ctx, entryID, gw)
	if err != nil {
		return analytics.Report{}, err
	}

	report := snapshot.ac.engine.Analyze(analytics.Input{
		Entry:          snapshot.entry,
		Pool:           snapshot.pool,
		GameweekPoints: snapshot.points,
	})
	if len(report.SkippedPlayerIDs) > 0 {
		s.logger.WarnContext(ctx, "squad picks missing from player pool",
			"entry_id", entryID,
			"gameweek", snapshot.ac.gameweek,
			"skipped", report.SkippedPlayerIDs,
		)
	}

	return report, nil
}

// Replacements ranks transfer targets for one squad member regardless of its risk flags.
func (s *SquadAnalyticsService) Replacements(ctx context.Context, entryID, playerID, gw int) (ReplacementResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadAnalyticsService.Replacements",
		attribute.Int("entry_id", entryID),
		attribute.Int("player_id", playerID),
	)
	defer span.End()

	if playerID <= 0 {
		return ReplacementResult{}, fmt.Errorf("%w: player id must be > 0", ErrInvalidInput)
	}

	snapshot, err := s.load(ctx, entryID, gw)
	if err != nil {
		return ReplacementResult{}, err
	}

	var pick squad.Pick
	owned := false
	for _, item := range snapshot.entry.Picks {
		if item.PlayerID == playerID {
			pick = item
			owned = true
			break
		}
	}
	if !owned {
		return ReplacementResult{}, fmt.Errorf("%w: player %d is not in entry %d", ErrNotFound, playerID, entryID)
	}

	var problem player.Player
	resolved := false
	for _, p := range snapshot.pool {
		if p.ID == playerID {
			problem = p
			resolved = true
			break
		}
	}
	if !resolved {
		return ReplacementResult{}, fmt.Errorf("%w: player %d missing from snapshot", ErrNotFound, playerID)
	}

	engine := snapshot.ac.engine
	flags := engine.Risk().Analyze(problem)
	points := problem.EventPoints
	if snapshot.points != nil {
		points = snapshot.points[problem.ID]
	}

	return ReplacementResult{
		EntryID:  entryID,
		Gameweek: snapshot.ac.gameweek,
		Bank:     snapshot.entry.Bank,
		Member: analytics.MemberReport{
			SquadMember:       analytics.SquadMember{Pick: pick, Player: problem},
			Flags:             flags,
			Severity:          analytics.MaxSeverity(flags),
			GameweekPoints:    points,
			PointsPerMillion:  analytics.PointsPerMillion(problem),
			MinutesPercentage: engine.MinutesPercentage(problem),
			FixtureDifficulty: engine.FixtureDifficulty(problem.TeamID),
		},
		Candidates: engine.Recommend(problem, snapshot.entry.PlayerIDs(), snapshot.pool, snapshot.entry.Bank),
	}, nil
}

// load reads the reference data first, then the entry and live stats for the resolved gameweek.
// Each phase fans out on a conc pool that cancels siblings on the first error.
func (s *SquadAnalyticsService) load(ctx context.Context, entryID, gw int) (squadSnapshot, error) {
	if entryID <= 0 {
		return squadSnapshot{}, fmt.Errorf("%w: entry id must be > 0", ErrInvalidInput)
	}
	if gw < 0 {
		return squadSnapshot{}, fmt.Errorf("%w: gameweek must be >= 0", ErrInvalidInput)
	}

	var (
		gameweeks []gameweek.Gameweek
		fixtures  []fixture.Fixture
		players   []player.Player
	)
	reference := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	reference.Go(func(ctx context.Context) error {
		var err error
		if gameweeks, err = s.gameweekRepo.List(ctx); err != nil {
			return fmt.Errorf("list gameweeks: %w", err)
		}
		return nil
	})
	reference.Go(func(ctx context.Context) error {
		var err error
		if fixtures, err = s.fixtureRepo.List(ctx); err != nil {
			return fmt.Errorf("list fixtures: %w", err)
		}
		return nil
	})
	reference.Go(func(ctx context.Context) error {
		var err error
		if players, err = s.playerRepo.List(ctx); err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		return nil
	})
	if err := reference.Wait(); err != nil {
		return squadSnapshot{}, err
	}

	ac, err := buildAnalyticsContext(s.cfg, gameweeks, fixtures, gw)
	if err != nil {
		return squadSnapshot{}, err
	}

	var (
		entry squad.Entry
		found bool
		stats []live.ElementStats
	)
	scoped := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	scoped.Go(func(ctx context.Context) error {
		var err error
		if entry, found, err = s.squadRepo.GetEntry(ctx, entryID, ac.gameweek); err != nil {
			return fmt.Errorf("get entry picks: %w", err)
		}
		return nil
	})
	scoped.Go(func(ctx context.Context) error {
		var err error
		if stats, err = s.liveRepo.ListByGameweek(ctx, ac.gameweek); err != nil {
			return fmt.Errorf("list live stats: %w", err)
		}
		return nil
	})
	if err := scoped.Wait(); err != nil {
		return squadSnapshot{}, err
	}
	if !found {
		return squadSnapshot{}, fmt.Errorf("%w: entry %d gameweek %d", ErrNotFound, entryID, ac.gameweek)
	}
	if err := squad.ValidatePicks(entry.Picks); err != nil {
		return squadSnapshot{}, fmt.Errorf("entry %d gameweek %d: %w", entryID, ac.gameweek, err)
	}

	snapshot := squadSnapshot{
		ac:      ac,
		pool:    players,
		entry:   entry,
		hasLive: len(stats) > 0,
	}
	switch {
	case snapshot.hasLive:
		snapshot.points = live.PointsByPlayer(stats)
	case ac.gameweek != ac.current:
		// EventPoints belong to the current round; other gameweeks without live rows score 0.
		snapshot.points = map[int]int{}
	}
	return snapshot, nil
}
