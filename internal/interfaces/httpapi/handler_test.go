package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fpl-insights/internal/domain/analytics"
	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
	"github.com/riskibarqy/fpl-insights/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

const testJobToken = "job-secret"

type seedSource struct{}

func (seedSource) FetchBootstrap(context.Context) (usecase.ExternalBootstrap, error) {
	records := make([]player.Record, 0, len(memory.SeedPlayers()))
	for _, p := range memory.SeedPlayers() {
		records = append(records, player.Record{
			ID:          p.ID,
			WebName:     p.WebName,
			TeamID:      p.TeamID,
			ElementType: int(p.Position),
			NowCost:     p.Price,
			Status:      string(p.Status),
			TotalPoints: p.TotalPoints,
			Minutes:     p.Minutes,
		})
	}
	return usecase.ExternalBootstrap{
		Players:   records,
		Teams:     memory.SeedTeams(),
		Gameweeks: memory.SeedGameweeks(),
	}, nil
}

func (seedSource) FetchFixtures(context.Context) ([]fixture.Fixture, error) {
	return memory.SeedFixtures(), nil
}

func (seedSource) FetchLive(_ context.Context, gw int) ([]live.ElementStats, error) {
	if gw != memory.SeedCurrentGameweek {
		return []live.ElementStats{}, nil
	}
	return memory.SeedLiveStats(), nil
}

func newTestRouter(t *testing.T, source usecase.SnapshotSource) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	cfg := analytics.DefaultConfig()

	players := memory.NewPlayerRepository(memory.SeedPlayers())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	gameweeks := memory.NewGameweekRepository(memory.SeedGameweeks())
	fixtures := memory.NewFixtureRepository(memory.SeedFixtures())
	liveStats := memory.NewLiveRepository(memory.SeedLiveStats()...)
	entries := memory.NewSquadRepository(append(memory.SeedEntries(), twoCaptainEntry())...)

	handler := NewHandler(
		usecase.NewPlayerService(players, teams, fixtures, gameweeks, cfg, logger),
		usecase.NewGameweekService(gameweeks, liveStats, players, logger),
		usecase.NewSquadAnalyticsService(players, fixtures, gameweeks, liveStats, entries, cfg, logger),
		usecase.NewSnapshotSyncService(source, players, teams, gameweeks, fixtures, liveStats, nil, usecase.SnapshotSyncConfig{Workers: 2}, logger),
		logger,
	)
	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

const twoCaptainEntryID = 2002

func twoCaptainEntry() squad.Entry {
	entry := memory.SeedEntries()[0]
	entry.ID = twoCaptainEntryID
	entry.Picks = append([]squad.Pick(nil), entry.Picks...)
	for i := range entry.Picks {
		entry.Picks[i].IsCaptain = i < 2
	}
	return entry
}

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func serve[T any](t *testing.T, router http.Handler, req *http.Request, wantStatus int) envelope[T] {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("unexpected status for %s %s: got=%d want=%d body=%s", req.Method, req.URL, rec.Code, wantStatus, rec.Body.String())
	}

	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return out
}

func TestHandler_Healthz(t *testing.T) {
	router := newTestRouter(t, nil)
	out := serve[map[string]string](t, router, httptest.NewRequest(http.MethodGet, "/healthz", nil), http.StatusOK)
	if out.Data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %+v", out.Data)
	}
}

func TestHandler_ListPlayers(t *testing.T) {
	router := newTestRouter(t, nil)

	out := serve[[]playerRowDTO](t, router, httptest.NewRequest(http.MethodGet, "/v1/players?position=FWD&limit=2", nil), http.StatusOK)
	if len(out.Data) != 2 {
		t.Fatalf("unexpected row count: got=%d want=2", len(out.Data))
	}
	if out.Data[0].ID != 13 {
		t.Fatalf("unexpected top forward: got=%d want=13", out.Data[0].ID)
	}
	for _, row := range out.Data {
		if row.Position != "FWD" {
			t.Fatalf("unexpected position: %s", row.Position)
		}
	}
}

func TestHandler_ListPlayers_MaxPrice(t *testing.T) {
	router := newTestRouter(t, nil)

	out := serve[[]playerRowDTO](t, router, httptest.NewRequest(http.MethodGet, "/v1/players?max_price=5.5&sort=price&order=asc", nil), http.StatusOK)
	if len(out.Data) == 0 {
		t.Fatalf("expected cheap players")
	}
	for i, row := range out.Data {
		if row.Price > 5.5 {
			t.Fatalf("unexpected price above filter: id=%d price=%v", row.ID, row.Price)
		}
		if i > 0 && row.Price < out.Data[i-1].Price {
			t.Fatalf("rows not sorted ascending by price at %d", i)
		}
	}
}

func TestHandler_ListPlayers_InvalidQuery(t *testing.T) {
	router := newTestRouter(t, nil)

	paths := []string{
		"/v1/players?sort=random",
		"/v1/players?position=striker",
		"/v1/players?limit=-1",
		"/v1/players?max_price=cheap",
		"/v1/players?order=sideways",
	}
	for _, path := range paths {
		out := serve[any](t, router, httptest.NewRequest(http.MethodGet, path, nil), http.StatusBadRequest)
		if out.Error == nil || out.Error.Status != "INVALID_ARGUMENT" {
			t.Fatalf("unexpected error for %s: %+v", path, out.Error)
		}
	}
}

func TestHandler_GetPlayerInsight(t *testing.T) {
	router := newTestRouter(t, nil)

	out := serve[playerInsightDTO](t, router, httptest.NewRequest(http.MethodGet, "/v1/players/14", nil), http.StatusOK)
	if out.Data.Player.ID != 14 || out.Data.Gameweek != memory.SeedCurrentGameweek {
		t.Fatalf("unexpected insight: id=%d gameweek=%d", out.Data.Player.ID, out.Data.Gameweek)
	}
	if len(out.Data.Flags) == 0 || out.Data.Flags[0].Kind != string(analytics.KindAvailability) {
		t.Fatalf("expected availability flag first, got %+v", out.Data.Flags)
	}
	if out.Data.Player.RiskSeverity != "high" {
		t.Fatalf("unexpected risk severity: %s", out.Data.Player.RiskSeverity)
	}

	serve[any](t, router, httptest.NewRequest(http.MethodGet, "/v1/players/999", nil), http.StatusNotFound)
	serve[any](t, router, httptest.NewRequest(http.MethodGet, "/v1/players/abc", nil), http.StatusBadRequest)
}

func TestHandler_GameweekSummary(t *testing.T) {
	router := newTestRouter(t, nil)

	out := serve[gameweekSummaryDTO](t, router, httptest.NewRequest(http.MethodGet, "/v1/gameweeks/current", nil), http.StatusOK)
	if out.Data.ID != memory.SeedCurrentGameweek || !out.Data.LiveStatsAvailable {
		t.Fatalf("unexpected summary: id=%d live=%v", out.Data.ID, out.Data.LiveStatsAvailable)
	}
	if len(out.Data.TopPerformers) == 0 || out.Data.TopPerformers[0].Player.ID != 13 {
		t.Fatalf("unexpected top performers: %+v", out.Data.TopPerformers)
	}
	if len(out.Data.MostTransferredIn) == 0 {
		t.Fatalf("expected transfer trends for the current gameweek")
	}

	past := serve[gameweekSummaryDTO](t, router, httptest.NewRequest(http.MethodGet, "/v1/gameweeks/9", nil), http.StatusOK)
	if past.Data.LiveStatsAvailable || len(past.Data.MostTransferredIn) != 0 {
		t.Fatalf("unexpected past summary: %+v", past.Data)
	}

	serve[any](t, router, httptest.NewRequest(http.MethodGet, "/v1/gameweeks/99", nil), http.StatusNotFound)
}

func TestHandler_AnalyzeSquad(t *testing.T) {
	router := newTestRouter(t, nil)

	out := serve[reportDTO](t, router, httptest.NewRequest(http.MethodGet, "/v1/entries/1001/analytics", nil), http.StatusOK)
	if out.Data.EntryID != memory.SeedEntryID || len(out.Data.Members) != 15 {
		t.Fatalf("unexpected report: entry=%d members=%d", out.Data.EntryID, len(out.Data.Members))
	}
	if out.Data.Bank != 1.5 {
		t.Fatalf("unexpected bank: got=%v want=1.5", out.Data.Bank)
	}

	foundWatkins := false
	for _, problem := range out.Data.Problems {
		if problem.Member.Player.ID == 14 {
			foundWatkins = true
		}
	}
	if !foundWatkins {
		t.Fatalf("expected injured forward among problems")
	}

	serve[any](t, router, httptest.NewRequest(http.MethodGet, "/v1/entries/42/analytics", nil), http.StatusNotFound)
	serve[any](t, router, httptest.NewRequest(http.MethodGet, "/v1/entries/1001/analytics?gameweek=x", nil), http.StatusBadRequest)

	invalid := serve[any](t, router, httptest.NewRequest(http.MethodGet, "/v1/entries/2002/analytics", nil), http.StatusUnprocessableEntity)
	if invalid.Error == nil || len(invalid.Error.Errors) != 1 || invalid.Error.Errors[0].Reason != "invalidSquad" {
		t.Fatalf("unexpected invalid squad error: %+v", invalid.Error)
	}
	serve[any](t, router, httptest.NewRequest(http.MethodGet, "/v1/entries/2002/replacements/14", nil), http.StatusUnprocessableEntity)
}

func TestHandler_ListReplacements(t *testing.T) {
	router := newTestRouter(t, nil)

	out := serve[replacementResultDTO](t, router, httptest.NewRequest(http.MethodGet, "/v1/entries/1001/replacements/14", nil), http.StatusOK)
	if out.Data.Player.Player.ID != 14 || len(out.Data.Candidates) == 0 {
		t.Fatalf("unexpected replacements: %+v", out.Data)
	}

	owned := map[int]bool{}
	for _, pick := range memory.SeedEntries()[0].Picks {
		owned[pick.PlayerID] = true
	}
	for _, c := range out.Data.Candidates {
		if c.Player.Position != "FWD" || owned[c.Player.ID] {
			t.Fatalf("unexpected candidate: %+v", c.Player)
		}
	}

	serve[any](t, router, httptest.NewRequest(http.MethodGet, "/v1/entries/1001/replacements/16", nil), http.StatusNotFound)
}

func TestHandler_RunSnapshotSyncJob(t *testing.T) {
	tests := []struct {
		name   string
		source usecase.SnapshotSource
		token  string
		body   string
		want   int
	}{
		{name: "missing token", source: seedSource{}, want: http.StatusUnauthorized},
		{name: "wrong token", source: seedSource{}, token: "nope", want: http.StatusUnauthorized},
		{name: "gameweek out of range", source: seedSource{}, token: testJobToken, body: `{"gameweeks":[40]}`, want: http.StatusBadRequest},
		{name: "unknown field", source: seedSource{}, token: testJobToken, body: `{"force":true}`, want: http.StatusBadRequest},
		{name: "no source", token: testJobToken, want: http.StatusServiceUnavailable},
		{name: "default sync", source: seedSource{}, token: testJobToken, want: http.StatusOK},
		{name: "explicit gameweeks", source: seedSource{}, token: testJobToken, body: `{"gameweeks":[9,10]}`, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.source)
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-snapshot", strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set(internalJobTokenHeader, tt.token)
			}

			out := serve[syncResultDTO](t, router, req, tt.want)
			if tt.want != http.StatusOK {
				return
			}
			if out.Data.RunID == "" || out.Data.FailedCount != 0 {
				t.Fatalf("unexpected sync result: %+v", out.Data)
			}
			if out.Data.Players != len(memory.SeedPlayers()) {
				t.Fatalf("unexpected synced players: got=%d want=%d", out.Data.Players, len(memory.SeedPlayers()))
			}
		})
	}
}

func TestRouter_RecoversPanic(t *testing.T) {
	logger := logging.NewNop()
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	recoverPanic(logger, panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
}
