package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fpl-insights/internal/domain/analytics"
	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/team"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultPlayerLimit = 100
	maxPlayerLimit     = 1000
)

const (
	SortByPoints    = "points"
	SortByPPM       = "ppm"
	SortByForm      = "form"
	SortByOwnership = "ownership"
	SortByPrice     = "price"
	SortByMinutes   = "minutes"
	SortByFixtures  = "fixtures"
	SortByMomentum  = "momentum"
	SortByScore     = "score"
)

// PlayerQuery filters the player table. MaxPrice is in tenths of a million; 0 disables it.
type PlayerQuery struct {
	Position   string
	TeamID     int
	MaxPrice   int64
	MinMinutes int
	Search     string
	Sort       string
	Order      string
	Limit      int
}

type PlayerRow struct {
	Player            player.Player
	Team              team.Team
	PointsPerMillion  float64
	MinutesPercentage float64
	FixtureDifficulty float64
	IsDifferential    bool
	CandidateScore    float64
	RiskSeverity      analytics.Severity
}

type PlayerInsight struct {
	Row                PlayerRow
	Gameweek           int
	Flags              []analytics.Flag
	Breakdown          analytics.ScoreBreakdown
	UpcomingDifficulty []int
}

type PlayerService struct {
	playerRepo   player.Repository
	teamRepo     team.Repository
	fixtureRepo  fixture.Repository
	gameweekRepo gameweek.Repository
	cfg          analytics.Config
	logger       *logging.Logger
}

func NewPlayerService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	gameweekRepo gameweek.Repository,
	cfg analytics.Config,
	logger *logging.Logger,
) *PlayerService {
	return &PlayerService{
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		fixtureRepo:  fixtureRepo,
		gameweekRepo: gameweekRepo,
		cfg:          cfg,
		logger:       logging.OrDefault(logger),
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, query PlayerQuery) ([]PlayerRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers",
		attribute.String("sort", query.Sort),
		attribute.String("position", query.Position),
	)
	defer span.End()

	query, position, err := normalizePlayerQuery(query)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	ac, teams, err := s.loadContext(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(query.Search)
	rows := make([]PlayerRow, 0, len(players))
	for _, p := range players {
		if position != 0 && p.Position != position {
			continue
		}
		if query.TeamID > 0 && p.TeamID != query.TeamID {
			continue
		}
		if query.MaxPrice > 0 && p.Price > query.MaxPrice {
			continue
		}
		if p.Minutes < query.MinMinutes {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		rows = append(rows, buildPlayerRow(ac.engine, p, teams))
	}

	sortPlayerRows(rows, query.Sort, query.Order)
	if len(rows) > query.Limit {
		rows = rows[:query.Limit]
	}
	return rows, nil
}

func (s *PlayerService) GetPlayerInsight(ctx context.Context, playerID int) (PlayerInsight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayerInsight", attribute.Int("player_id", playerID))
	defer span.End()

	if playerID <= 0 {
		return PlayerInsight{}, fmt.Errorf("%w: player id must be > 0", ErrInvalidInput)
	}

	found, err := s.playerRepo.GetByIDs(ctx, []int{playerID})
	if err != nil {
		return PlayerInsight{}, fmt.Errorf("get player: %w", err)
	}
	if len(found) == 0 {
		return PlayerInsight{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	p := found[0]

	ac, teams, err := s.loadContext(ctx)
	if err != nil {
		return PlayerInsight{}, err
	}

	return PlayerInsight{
		Row:                buildPlayerRow(ac.engine, p, teams),
		Gameweek:           ac.gameweek,
		Flags:              ac.engine.Risk().Analyze(p),
		Breakdown:          ac.engine.Score(p),
		UpcomingDifficulty: ac.difficulty.Upcoming(p.TeamID, s.cfg.FixtureHorizon),
	}, nil
}

func (s *PlayerService) loadContext(ctx context.Context) (analyticsContext, map[int]team.Team, error) {
	gameweeks, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return analyticsContext{}, nil, fmt.Errorf("list gameweeks: %w", err)
	}
	fixtures, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return analyticsContext{}, nil, fmt.Errorf("list fixtures: %w", err)
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return analyticsContext{}, nil, fmt.Errorf("list teams: %w", err)
	}

	ac, err := buildAnalyticsContext(s.cfg, gameweeks, fixtures, 0)
	if err != nil {
		return analyticsContext{}, nil, err
	}
	return ac, team.Index(teams), nil
}

func normalizePlayerQuery(query PlayerQuery) (PlayerQuery, player.Position, error) {
	var position player.Position
	if strings.TrimSpace(query.Position) != "" {
		parsed, err := player.ParsePosition(query.Position)
		if err != nil {
			return query, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		position = parsed
	}

	query.Sort = strings.ToLower(strings.TrimSpace(query.Sort))
	if query.Sort == "" {
		query.Sort = SortByPoints
	}
	switch query.Sort {
	case SortByPoints, SortByPPM, SortByForm, SortByOwnership, SortByPrice,
		SortByMinutes, SortByFixtures, SortByMomentum, SortByScore:
	default:
		return query, 0, fmt.Errorf("%w: unsupported sort %q", ErrInvalidInput, query.Sort)
	}

	query.Order = strings.ToLower(strings.TrimSpace(query.Order))
	if query.Order == "" {
		query.Order = "desc"
		if query.Sort == SortByFixtures {
			query.Order = "asc"
		}
	}
	if query.Order != "asc" && query.Order != "desc" {
		return query, 0, fmt.Errorf("%w: order must be asc or desc", ErrInvalidInput)
	}

	if query.TeamID < 0 || query.MaxPrice < 0 || query.MinMinutes < 0 || query.Limit < 0 {
		return query, 0, fmt.Errorf("%w: numeric filters must be >= 0", ErrInvalidInput)
	}
	if query.Limit == 0 {
		query.Limit = defaultPlayerLimit
	}
	query.Limit = min(query.Limit, maxPlayerLimit)
	query.Search = strings.TrimSpace(query.Search)

	return query, position, nil
}

func matchesSearch(p player.Player, needle string) bool {
	for _, name := range []string{p.WebName, p.FirstName, p.SecondName} {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	return false
}

func buildPlayerRow(engine *analytics.Engine, p player.Player, teams map[int]team.Team) PlayerRow {
	return PlayerRow{
		Player:            p,
		Team:              teams[p.TeamID],
		PointsPerMillion:  analytics.PointsPerMillion(p),
		MinutesPercentage: engine.MinutesPercentage(p),
		FixtureDifficulty: engine.FixtureDifficulty(p.TeamID),
		IsDifferential:    engine.IsDifferential(p),
		CandidateScore:    engine.Score(p).Total(),
		RiskSeverity:      analytics.MaxSeverity(engine.Risk().Analyze(p)),
	}
}

func sortPlayerRows(rows []PlayerRow, sortBy, order string) {
	key := func(row PlayerRow) float64 {
		switch sortBy {
		case SortByPPM:
			return row.PointsPerMillion
		case SortByForm:
			return row.Player.Form
		case SortByOwnership:
			return row.Player.SelectedByPercent
		case SortByPrice:
			return float64(row.Player.Price)
		case SortByMinutes:
			return float64(row.Player.Minutes)
		case SortByFixtures:
			return row.FixtureDifficulty
		case SortByMomentum:
			return float64(row.Player.NetTransfers())
		case SortByScore:
			return row.CandidateScore
		default:
			return float64(row.Player.TotalPoints)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if order == "asc" {
			return key(rows[i]) < key(rows[j])
		}
		return key(rows[i]) > key(rows[j])
	})
}
