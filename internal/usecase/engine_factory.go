package usecase

import (
	"fmt"

	"github.com/riskibarqy/fpl-insights/internal/domain/analytics"
	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
)

// analyticsContext is an engine bound to a resolved gameweek plus the fixture index it reads.
type analyticsContext struct {
	engine     *analytics.Engine
	difficulty *fixture.DifficultyIndex
	gameweek   int
	current    int
}

// buildAnalyticsContext resolves requested (0 means current) against the gameweek list and
// builds an engine over fixtures from that gameweek onwards.
func buildAnalyticsContext(
	cfg analytics.Config,
	gameweeks []gameweek.Gameweek,
	fixtures []fixture.Fixture,
	requested int,
) (analyticsContext, error) {
	if requested < 0 {
		return analyticsContext{}, fmt.Errorf("%w: gameweek must be >= 0", ErrInvalidInput)
	}

	current := gameweek.ResolveCurrent(gameweeks)
	target := requested
	if target == 0 {
		target = current
	} else if len(gameweeks) > 0 {
		if _, ok := gameweek.Find(gameweeks, target); !ok {
			return analyticsContext{}, fmt.Errorf("%w: gameweek %d", ErrNotFound, target)
		}
	}

	difficulty := fixture.NewDifficultyIndex(fixtures, target)
	engine, err := analytics.NewEngine(cfg, difficulty, target)
	if err != nil {
		return analyticsContext{}, fmt.Errorf("build analytics engine: %w", err)
	}
	// Player minutes are season totals as of the snapshot, so the current gameweek bounds them.
	engine = engine.WithMinutesGameweek(current)

	return analyticsContext{
		engine:     engine,
		difficulty: difficulty,
		gameweek:   target,
		current:    current,
	}, nil
}
