package analytics

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
)

type staticDifficulty map[int]float64

func (s staticDifficulty) Average(teamID, _ int) float64 {
	if v, ok := s[teamID]; ok {
		return v
	}
	return 3
}

func newTestEngine(t *testing.T, difficulty DifficultyLookup, gameweek int) *Engine {
	t.Helper()

	engine, err := NewEngine(DefaultConfig(), difficulty, gameweek)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func reliablePlayer(id int, position player.Position, price int64) player.Player {
	return player.Player{
		ID:                            id,
		WebName:                       "Player",
		TeamID:                        1,
		Position:                      position,
		Price:                         price,
		Status:                        player.StatusAvailable,
		TotalPoints:                   40,
		Minutes:                       810,
		Form:                          5,
		SelectedByPercent:             20,
		ExpectedGoalInvolvementsPer90: 0.4,
		ExpectedGoalsConcededPer90:    1.0,
	}
}

func squadFixture(benchPoints []int) ([]SquadMember, map[int]int) {
	members := make([]SquadMember, 0, squad.SquadSize)
	points := make(map[int]int)
	for slot := 1; slot <= squad.SquadSize; slot++ {
		p := reliablePlayer(slot, player.PositionMidfielder, 50)
		members = append(members, SquadMember{
			Pick:   squad.Pick{PlayerID: p.ID, Slot: slot, Multiplier: 1},
			Player: p,
		})
		points[p.ID] = 5
		if slot > squad.StarterSlots {
			points[p.ID] = benchPoints[slot-squad.StarterSlots-1]
		}
	}
	return members, points
}

func TestAggregateBenchPointsWasted(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{}, 10)

	t.Run("bench points summed from gameweek stats", func(t *testing.T) {
		members, points := squadFixture([]int{2, 0, 6, 1})
		got := engine.Aggregate(members, points)
		if got.BenchPointsWasted != 9 {
			t.Fatalf("unexpected bench points: got=%d want=9", got.BenchPointsWasted)
		}
	})

	t.Run("all zero bench", func(t *testing.T) {
		members, points := squadFixture([]int{0, 0, 0, 0})
		got := engine.Aggregate(members, points)
		if got.BenchPointsWasted != 0 {
			t.Fatalf("unexpected bench points: got=%d want=0", got.BenchPointsWasted)
		}
	})

	t.Run("missing gameweek record contributes zero", func(t *testing.T) {
		members, points := squadFixture([]int{2, 0, 6, 1})
		delete(points, 14)
		got := engine.Aggregate(members, points)
		if got.BenchPointsWasted != 3 {
			t.Fatalf("unexpected bench points: got=%d want=3", got.BenchPointsWasted)
		}
	})

	t.Run("falls back to event points without gameweek stats", func(t *testing.T) {
		members, _ := squadFixture([]int{0, 0, 0, 0})
		for i := range members {
			members[i].Player.EventPoints = 2
		}
		got := engine.Aggregate(members, nil)
		if got.BenchPointsWasted != 8 {
			t.Fatalf("unexpected bench points: got=%d want=8", got.BenchPointsWasted)
		}
	})
}

func TestAggregateAverages(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{1: 2, 2: 4}, 10)
	members := []SquadMember{
		{Pick: squad.Pick{PlayerID: 1, Slot: 1}, Player: player.Player{ID: 1, TeamID: 1, Position: player.PositionDefender, Price: 50, TotalPoints: 60, Minutes: 900, SelectedByPercent: 10, Form: 6}},
		{Pick: squad.Pick{PlayerID: 2, Slot: 2}, Player: player.Player{ID: 2, TeamID: 2, Position: player.PositionDefender, Price: 0, TotalPoints: 30, Minutes: 450, SelectedByPercent: 30, Form: 6}},
	}

	got := engine.Aggregate(members, map[int]int{})
	if got.MemberCount != 2 {
		t.Fatalf("unexpected member count: got=%d want=2", got.MemberCount)
	}
	if !approxEqual(got.AveragePPM, 6) {
		t.Fatalf("unexpected average ppm: got=%v want=6", got.AveragePPM)
	}
	if !approxEqual(got.AverageOwnership, 20) {
		t.Fatalf("unexpected average ownership: got=%v want=20", got.AverageOwnership)
	}
	if !approxEqual(got.AverageFixtureDifficulty, 3) {
		t.Fatalf("unexpected average difficulty: got=%v want=3", got.AverageFixtureDifficulty)
	}
	if !approxEqual(got.AverageMinutesPercentage, 75) {
		t.Fatalf("unexpected average minutes: got=%v want=75", got.AverageMinutesPercentage)
	}
	if got.HighRiskCount != 1 {
		t.Fatalf("unexpected high risk count: got=%d want=1", got.HighRiskCount)
	}
}

func TestAggregateEmptySquad(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{}, 10)
	got := engine.Aggregate(nil, nil)
	if got != (Aggregates{}) {
		t.Fatalf("expected zero aggregates, got %+v", got)
	}
}

func TestZeroDenominatorsYieldZero(t *testing.T) {
	t.Parallel()

	if got := PointsPerMillion(player.Player{TotalPoints: 50, Price: 0}); got != 0 {
		t.Fatalf("unexpected ppm for zero price: got=%v", got)
	}
	if got := MinutesPercentage(500, 0); got != 0 {
		t.Fatalf("unexpected minutes percentage for gameweek 0: got=%v", got)
	}
	if got := MinutesPercentage(2000, 10); got != 100 {
		t.Fatalf("expected minutes percentage capped at 100, got=%v", got)
	}
}

func TestScoreCompositeScenario(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{7: 2}, 10)
	candidate := player.Player{
		ID:                1,
		TeamID:            7,
		Position:          player.PositionMidfielder,
		Price:             100,
		TotalPoints:       12,
		Minutes:           810,
		Form:              8,
		TransfersInEvent:  150_000,
		TransfersOutEvent: 30_000,
	}

	got := engine.Score(candidate)
	want := ScoreBreakdown{Form: 30, Fixtures: 15, Value: 12, Minutes: 15, Momentum: 10}
	if !approxEqual(got.Form, want.Form) || !approxEqual(got.Fixtures, want.Fixtures) ||
		!approxEqual(got.Value, want.Value) || !approxEqual(got.Minutes, want.Minutes) ||
		!approxEqual(got.Momentum, want.Momentum) {
		t.Fatalf("unexpected breakdown: got=%+v want=%+v", got, want)
	}
	if !approxEqual(got.Total(), 82) {
		t.Fatalf("unexpected composite score: got=%v want=82", got.Total())
	}
}

func TestScoreMinutesDivisor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		divisor float64
		minutes int
		want    float64
	}{
		{name: "default caps at ninety percent", divisor: 6, minutes: 810, want: 15},
		{name: "default below cap", divisor: 6, minutes: 540, want: 10},
		{name: "literal divisor", divisor: 6.67, minutes: 810, want: 90 / 6.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.MinutesDivisor = tt.divisor
			engine, err := NewEngine(cfg, staticDifficulty{}, 10)
			if err != nil {
				t.Fatalf("new engine: %v", err)
			}
			got := engine.Score(player.Player{TeamID: 1, Minutes: tt.minutes}).Minutes
			if !approxEqual(got, tt.want) {
				t.Fatalf("unexpected minutes contribution: got=%v want=%v", got, tt.want)
			}
		})
	}
	if DefaultConfig().MinutesDivisor != 6 {
		t.Fatalf("unexpected default minutes divisor: got=%v want=6", DefaultConfig().MinutesDivisor)
	}
}

func TestEngineWithMinutesGameweek(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{}, 5)
	p := player.Player{
		TeamID:                        1,
		Position:                      player.PositionMidfielder,
		Status:                        player.StatusAvailable,
		Minutes:                       450,
		Form:                          6,
		ExpectedGoalInvolvementsPer90: 0.5,
	}

	if got := engine.MinutesPercentage(p); !approxEqual(got, 100) {
		t.Fatalf("unexpected minutes percentage: got=%v want=100", got)
	}

	season := engine.WithMinutesGameweek(10)
	if season.Gameweek() != 5 {
		t.Fatalf("unexpected analysed gameweek: got=%d want=5", season.Gameweek())
	}
	if got := season.MinutesPercentage(p); !approxEqual(got, 50) {
		t.Fatalf("unexpected minutes percentage: got=%v want=50", got)
	}
	flags := season.Risk().Analyze(p)
	if len(flags) != 1 || flags[0].Kind != KindRotationRisk || flags[0].Severity != SeverityMedium {
		t.Fatalf("unexpected flags: %+v", flags)
	}
	if engine.MinutesPercentage(p) != 100 {
		t.Fatalf("expected original engine to be unchanged")
	}
	if engine.WithMinutesGameweek(0) != engine {
		t.Fatalf("expected non-positive gameweek to keep the engine")
	}
}

func TestScoreNegativeMomentumIsNotPenalised(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{1: 5}, 10)
	got := engine.Score(player.Player{TeamID: 1, TransfersOutEvent: 500_000, Form: -1})
	if got.Momentum != 0 || got.Fixtures != 0 || got.Form != 0 {
		t.Fatalf("expected zero contributions, got %+v", got)
	}
}

func TestRecommendEligibility(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{}, 10)
	problem := reliablePlayer(1, player.PositionMidfielder, 80)
	owned := []int{1, 2}
	pool := []player.Player{
		problem,
		reliablePlayer(2, player.PositionMidfielder, 60),
		reliablePlayer(3, player.PositionMidfielder, 85),
		reliablePlayer(4, player.PositionMidfielder, 86),
		reliablePlayer(5, player.PositionForward, 70),
		reliablePlayer(6, player.PositionMidfielder, 45),
	}

	got := engine.Recommend(problem, owned, pool, 5)

	ids := make([]int, 0, len(got))
	for _, candidate := range got {
		ids = append(ids, candidate.Player.ID)
		if candidate.Player.Price > 85 {
			t.Fatalf("candidate %d over budget: price=%d", candidate.Player.ID, candidate.Player.Price)
		}
		if candidate.PriceDelta != candidate.Player.Price-problem.Price {
			t.Fatalf("unexpected price delta for %d: %d", candidate.Player.ID, candidate.PriceDelta)
		}
	}
	slices.Sort(ids)
	if !slices.Equal(ids, []int{3, 6}) {
		t.Fatalf("unexpected candidates: got=%v want=[3 6]", ids)
	}
}

func TestRecommendNegativeBankIsClamped(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{}, 10)
	problem := reliablePlayer(1, player.PositionDefender, 50)
	pool := []player.Player{reliablePlayer(2, player.PositionDefender, 50)}

	got := engine.Recommend(problem, []int{1}, pool, -20)
	if len(got) != 1 {
		t.Fatalf("expected same-price candidate to stay eligible, got %d", len(got))
	}
}

func TestRecommendNoEligibleCandidates(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{}, 10)
	problem := reliablePlayer(1, player.PositionGoalkeeper, 40)
	pool := []player.Player{
		problem,
		reliablePlayer(2, player.PositionDefender, 40),
		reliablePlayer(3, player.PositionGoalkeeper, 60),
	}

	got := engine.Recommend(problem, []int{1}, pool, 0)
	if got == nil {
		t.Fatalf("expected empty non-nil slice")
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}

func TestRecommendStableTieOrder(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{}, 10)
	problem := reliablePlayer(1, player.PositionForward, 90)
	pool := []player.Player{
		reliablePlayer(30, player.PositionForward, 70),
		reliablePlayer(10, player.PositionForward, 70),
		reliablePlayer(20, player.PositionForward, 70),
	}

	got := engine.Recommend(problem, []int{1}, pool, 0)
	want := []int{30, 10, 20}
	for i, candidate := range got {
		if candidate.Player.ID != want[i] {
			t.Fatalf("unexpected tie order at %d: got=%d want=%d", i, candidate.Player.ID, want[i])
		}
	}
}

func TestRecommendOrderingAndBounds(t *testing.T) {
	t.Parallel()

	difficulty := staticDifficulty{}
	rng := rand.New(rand.NewPCG(7, 11))
	pool := make([]player.Player, 0, 200)
	for id := 1; id <= 200; id++ {
		teamID := rng.IntN(20) + 1
		difficulty[teamID] = 1 + rng.Float64()*4
		pool = append(pool, player.Player{
			ID:                id,
			TeamID:            teamID,
			Position:          player.AllPositions[rng.IntN(len(player.AllPositions))],
			Price:             int64(40 + rng.IntN(100)),
			TotalPoints:       rng.IntN(250),
			Minutes:           rng.IntN(2000),
			Form:              rng.Float64() * 12,
			TransfersInEvent:  int64(rng.IntN(300_000)),
			TransfersOutEvent: int64(rng.IntN(300_000)),
		})
	}
	engine := newTestEngine(t, difficulty, 12)

	owned := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	for _, problem := range pool[:15] {
		bank := int64(rng.IntN(30))
		got := engine.Recommend(problem, owned, pool, bank)

		if len(got) > engine.Config().ShortlistSize {
			t.Fatalf("shortlist too long: %d", len(got))
		}
		for i, candidate := range got {
			if candidate.Score < 0 || candidate.Score > MaxScore {
				t.Fatalf("score out of bounds: %v", candidate.Score)
			}
			if candidate.Player.ID == problem.ID || slices.Contains(owned, candidate.Player.ID) {
				t.Fatalf("owned player %d recommended", candidate.Player.ID)
			}
			if candidate.Player.Position != problem.Position {
				t.Fatalf("position mismatch for %d", candidate.Player.ID)
			}
			if candidate.Player.Price > problem.Price+bank {
				t.Fatalf("candidate %d over budget", candidate.Player.ID)
			}
			if i > 0 && got[i-1].Score < candidate.Score {
				t.Fatalf("candidates not sorted at %d: %v < %v", i, got[i-1].Score, candidate.Score)
			}
		}
	}
}

func TestAnalyzeReport(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, staticDifficulty{}, 10)
	members, points := squadFixture([]int{2, 0, 6, 1})

	pool := make([]player.Player, 0, len(members)+2)
	picks := make([]squad.Pick, 0, len(members))
	for _, member := range members {
		picks = append(picks, member.Pick)
		if member.Player.ID == 15 {
			continue
		}
		p := member.Player
		if p.ID == 3 {
			p.Minutes = 100
		}
		pool = append(pool, p)
	}
	pool = append(pool, reliablePlayer(99, player.PositionMidfielder, 50))
	picks[0].IsCaptain = true

	report := engine.Analyze(Input{
		Entry:          squad.Entry{ID: 42, Gameweek: 10, Picks: picks, Bank: 3},
		Pool:           pool,
		GameweekPoints: points,
	})

	if !slices.Equal(report.SkippedPlayerIDs, []int{15}) {
		t.Fatalf("unexpected skipped ids: %v", report.SkippedPlayerIDs)
	}
	if report.Aggregates.MemberCount != 14 {
		t.Fatalf("unexpected member count: got=%d want=14", report.Aggregates.MemberCount)
	}
	if report.Aggregates.BenchPointsWasted != 8 {
		t.Fatalf("unexpected bench points: got=%d want=8", report.Aggregates.BenchPointsWasted)
	}
	if len(report.Problems) != 1 || report.Problems[0].Member.Player.ID != 3 {
		t.Fatalf("unexpected problem players: %+v", report.Problems)
	}
	replacements := report.Problems[0].Replacements
	if len(replacements) != 1 || replacements[0].Player.ID != 99 {
		t.Fatalf("unexpected replacements: %+v", replacements)
	}
}
