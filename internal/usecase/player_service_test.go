package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fpl-insights/internal/domain/analytics"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	fixturemock "github.com/riskibarqy/fpl-insights/internal/mocks/domain/fixture"
	gameweekmock "github.com/riskibarqy/fpl-insights/internal/mocks/domain/gameweek"
	playermock "github.com/riskibarqy/fpl-insights/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/fpl-insights/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func newPlayerServiceForTest(t *testing.T) (*PlayerService, *playermock.Repository) {
	t.Helper()

	playerRepo := playermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	gameweekRepo := gameweekmock.NewRepository(t)

	teamRepo.On("List", mock.Anything).Return(sampleTeams(), nil).Maybe()
	fixtureRepo.On("List", mock.Anything).Return(sampleFixtures(), nil).Maybe()
	gameweekRepo.On("List", mock.Anything).Return(sampleGameweeks(), nil).Maybe()

	service := NewPlayerService(playerRepo, teamRepo, fixtureRepo, gameweekRepo, analytics.DefaultConfig(), nil)
	return service, playerRepo
}

func TestPlayerService_ListPlayers_FiltersSortsAndLimits(t *testing.T) {
	t.Parallel()

	service, playerRepo := newPlayerServiceForTest(t)
	playerRepo.On("List", mock.Anything).Return(samplePool(), nil).Once()

	rows, err := service.ListPlayers(context.Background(), PlayerQuery{
		Position: "fwd",
		MaxPrice: 60,
		Sort:     SortByForm,
		Limit:    2,
	})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("unexpected row count: got=%d want=2", len(rows))
	}
	if rows[0].Player.ID != 20 {
		t.Fatalf("expected in-form bargain first, got=%d", rows[0].Player.ID)
	}
	for _, row := range rows {
		if row.Player.Position != player.PositionForward || row.Player.Price > 60 {
			t.Fatalf("row escaped filters: %+v", row.Player)
		}
		if row.Team.ShortName == "" {
			t.Fatalf("expected team to be joined for player %d", row.Player.ID)
		}
	}
}

func TestPlayerService_ListPlayers_SearchAndDerivedColumns(t *testing.T) {
	t.Parallel()

	service, playerRepo := newPlayerServiceForTest(t)
	playerRepo.On("List", mock.Anything).Return(samplePool(), nil).Once()

	rows, err := service.ListPlayers(context.Background(), PlayerQuery{Search: "SAKA"})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("unexpected row count: got=%d want=1", len(rows))
	}
	row := rows[0]
	if row.PointsPerMillion != 15 {
		t.Fatalf("unexpected ppm: got=%v want=15", row.PointsPerMillion)
	}
	if row.FixtureDifficulty != 2 {
		t.Fatalf("unexpected fixture difficulty: got=%v want=2", row.FixtureDifficulty)
	}
	if row.MinutesPercentage != 90 {
		t.Fatalf("unexpected minutes percentage: got=%v want=90", row.MinutesPercentage)
	}
	if row.IsDifferential {
		t.Fatalf("20%% owned player should not be a differential")
	}
}

func TestPlayerService_ListPlayers_FixturesSortDefaultsAscending(t *testing.T) {
	t.Parallel()

	service, playerRepo := newPlayerServiceForTest(t)
	playerRepo.On("List", mock.Anything).Return(samplePool(), nil).Once()

	rows, err := service.ListPlayers(context.Background(), PlayerQuery{Sort: SortByFixtures, Limit: 1000})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].FixtureDifficulty > rows[i].FixtureDifficulty {
			t.Fatalf("rows not ascending at %d", i)
		}
	}
}

func TestPlayerService_ListPlayers_InvalidQuery(t *testing.T) {
	t.Parallel()

	service, _ := newPlayerServiceForTest(t)

	tests := []PlayerQuery{
		{Position: "striker"},
		{Sort: "goals"},
		{Order: "sideways"},
		{Limit: -1},
	}
	for _, query := range tests {
		if _, err := service.ListPlayers(context.Background(), query); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", query, err)
		}
	}
}

func TestPlayerService_GetPlayerInsight(t *testing.T) {
	t.Parallel()

	service, playerRepo := newPlayerServiceForTest(t)
	pool := samplePool()
	playerRepo.On("GetByIDs", mock.Anything, []int{9}).Return([]player.Player{pool[8]}, nil).Once()

	insight, err := service.GetPlayerInsight(context.Background(), 9)
	if err != nil {
		t.Fatalf("get player insight: %v", err)
	}
	if insight.Gameweek != 10 {
		t.Fatalf("unexpected gameweek: got=%d want=10", insight.Gameweek)
	}
	if !analytics.HasHighRisk(insight.Flags) {
		t.Fatalf("expected high risk flags, got %+v", insight.Flags)
	}
	if len(insight.UpcomingDifficulty) != 5 || insight.UpcomingDifficulty[0] != 4 {
		t.Fatalf("unexpected upcoming difficulty: %v", insight.UpcomingDifficulty)
	}
	if insight.Row.RiskSeverity != analytics.SeverityHigh {
		t.Fatalf("unexpected severity: %s", insight.Row.RiskSeverity)
	}
}

func TestPlayerService_GetPlayerInsight_NotFound(t *testing.T) {
	t.Parallel()

	service, playerRepo := newPlayerServiceForTest(t)
	playerRepo.On("GetByIDs", mock.Anything, []int{404}).Return([]player.Player{}, nil).Once()

	_, err := service.GetPlayerInsight(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := service.GetPlayerInsight(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
