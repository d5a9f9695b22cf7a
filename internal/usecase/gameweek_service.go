package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	topPerformerLimit = 10
	transferLimit     = 5
)

type Performer struct {
	Player player.Player
	Stats  live.ElementStats
}

type GameweekSummary struct {
	Gameweek           gameweek.Gameweek
	CurrentGameweek    int
	LiveStatsAvailable bool
	TopPerformers      []Performer
	MostTransferredIn  []player.Player
	MostTransferredOut []player.Player
}

type GameweekService struct {
	gameweekRepo gameweek.Repository
	liveRepo     live.Repository
	playerRepo   player.Repository
	logger       *logging.Logger
}

func NewGameweekService(
	gameweekRepo gameweek.Repository,
	liveRepo live.Repository,
	playerRepo player.Repository,
	logger *logging.Logger,
) *GameweekService {
	return &GameweekService{
		gameweekRepo: gameweekRepo,
		liveRepo:     liveRepo,
		playerRepo:   playerRepo,
		logger:       logging.OrDefault(logger),
	}
}

// Summary builds the gameweek dashboard. Gameweek 0 means the current one.
func (s *GameweekService) Summary(ctx context.Context, gw int) (GameweekSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Summary", attribute.Int("gameweek", gw))
	defer span.End()

	if gw < 0 {
		return GameweekSummary{}, fmt.Errorf("%w: gameweek must be >= 0", ErrInvalidInput)
	}

	gameweeks, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return GameweekSummary{}, fmt.Errorf("list gameweeks: %w", err)
	}
	current := gameweek.ResolveCurrent(gameweeks)
	if gw == 0 {
		gw = current
	}
	meta, ok := gameweek.Find(gameweeks, gw)
	if !ok {
		return GameweekSummary{}, fmt.Errorf("%w: gameweek %d", ErrNotFound, gw)
	}

	stats, err := s.liveRepo.ListByGameweek(ctx, gw)
	if err != nil {
		return GameweekSummary{}, fmt.Errorf("list live stats: %w", err)
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return GameweekSummary{}, fmt.Errorf("list players: %w", err)
	}

	byID := make(map[int]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	summary := GameweekSummary{
		Gameweek:           meta,
		CurrentGameweek:    current,
		LiveStatsAvailable: len(stats) > 0,
		TopPerformers:      topPerformers(stats, byID, topPerformerLimit),
	}
	if gw == current {
		summary.MostTransferredIn = topBy(players, transferLimit, func(p player.Player) int64 { return p.TransfersInEvent })
		summary.MostTransferredOut = topBy(players, transferLimit, func(p player.Player) int64 { return p.TransfersOutEvent })
	}

	s.logger.DebugContext(ctx, "gameweek summary built", "gameweek", gw, "live_rows", len(stats))
	return summary, nil
}

func topPerformers(stats []live.ElementStats, players map[int]player.Player, limit int) []Performer {
	ordered := append([]live.ElementStats(nil), stats...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TotalPoints != ordered[j].TotalPoints {
			return ordered[i].TotalPoints > ordered[j].TotalPoints
		}
		if ordered[i].Minutes != ordered[j].Minutes {
			return ordered[i].Minutes > ordered[j].Minutes
		}
		return ordered[i].PlayerID < ordered[j].PlayerID
	})

	out := make([]Performer, 0, min(limit, len(ordered)))
	for _, row := range ordered {
		p, ok := players[row.PlayerID]
		if !ok {
			continue
		}
		out = append(out, Performer{Player: p, Stats: row})
		if len(out) == limit {
			break
		}
	}
	return out
}

func topBy(players []player.Player, limit int, key func(player.Player) int64) []player.Player {
	ordered := append([]player.Player(nil), players...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return key(ordered[i]) > key(ordered[j])
	})

	out := make([]player.Player, 0, limit)
	for _, p := range ordered {
		if key(p) <= 0 || len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out
}
