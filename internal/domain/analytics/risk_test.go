package analytics

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

func intPtr(v int) *int {
	return &v
}

func TestRiskAnalyzerAxes(t *testing.T) {
	t.Parallel()

	analyzer := NewRiskAnalyzer(DefaultConfig().Risk, staticDifficulty{1: 2.5, 2: 3.6, 3: 4.2}, 5, 10)

	tests := []struct {
		name   string
		mutate func(p *player.Player)
		kind   Kind
		want   Severity
	}{
		{name: "healthy player", mutate: func(p *player.Player) {}, want: SeverityNone},
		{name: "rotation medium", mutate: func(p *player.Player) { p.Minutes = 400 }, kind: KindRotationRisk, want: SeverityMedium},
		{name: "rotation high", mutate: func(p *player.Player) { p.Minutes = 200 }, kind: KindRotationRisk, want: SeverityHigh},
		{name: "form medium", mutate: func(p *player.Player) { p.Form = 3.0 }, kind: KindBadForm, want: SeverityMedium},
		{name: "form high", mutate: func(p *player.Player) { p.Form = 1.5 }, kind: KindBadForm, want: SeverityHigh},
		{name: "fixtures medium", mutate: func(p *player.Player) { p.TeamID = 2 }, kind: KindPoorFixtures, want: SeverityMedium},
		{name: "fixtures high", mutate: func(p *player.Player) { p.TeamID = 3 }, kind: KindPoorFixtures, want: SeverityHigh},
		{name: "momentum medium", mutate: func(p *player.Player) { p.TransfersOutEvent = 30_000 }, kind: KindNegativeMomentum, want: SeverityMedium},
		{name: "momentum high", mutate: func(p *player.Player) { p.TransfersOutEvent = 150_000 }, kind: KindNegativeMomentum, want: SeverityHigh},
		{name: "attacker weak xgi", mutate: func(p *player.Player) { p.ExpectedGoalInvolvementsPer90 = 0.1 }, kind: KindWeakUnderlyingStats, want: SeverityLow},
		{
			name: "defender leaky xgc",
			mutate: func(p *player.Player) {
				p.Position = player.PositionDefender
				p.ExpectedGoalsConcededPer90 = 2.1
			},
			kind: KindWeakUnderlyingStats,
			want: SeverityMedium,
		},
		{
			name: "doubtful",
			mutate: func(p *player.Player) {
				p.Status = player.StatusDoubtful
				p.ChanceOfPlayingNextRound = intPtr(75)
			},
			kind: KindAvailability,
			want: SeverityMedium,
		},
		{
			name: "doubtful below half",
			mutate: func(p *player.Player) {
				p.Status = player.StatusDoubtful
				p.ChanceOfPlayingNextRound = intPtr(25)
			},
			kind: KindAvailability,
			want: SeverityHigh,
		},
		{name: "injured", mutate: func(p *player.Player) { p.Status = player.StatusInjured }, kind: KindAvailability, want: SeverityHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := reliablePlayer(1, player.PositionMidfielder, 60)
			tc.mutate(&p)

			flags := analyzer.Analyze(p)
			if tc.want == SeverityNone {
				if len(flags) != 0 {
					t.Fatalf("expected no flags, got %+v", flags)
				}
				return
			}
			if len(flags) != 1 {
				t.Fatalf("expected one flag, got %+v", flags)
			}
			if flags[0].Kind != tc.kind || flags[0].Severity != tc.want {
				t.Fatalf("unexpected flag: got=%s/%s want=%s/%s", flags[0].Kind, flags[0].Severity, tc.kind, tc.want)
			}
		})
	}
}

func TestRiskAnalyzerUnplayedPlayer(t *testing.T) {
	t.Parallel()

	analyzer := NewRiskAnalyzer(DefaultConfig().Risk, staticDifficulty{}, 5, 10)
	p := reliablePlayer(1, player.PositionForward, 60)
	p.Minutes = 0
	p.Form = 0
	p.ExpectedGoalInvolvementsPer90 = 0

	flags := analyzer.Analyze(p)
	if len(flags) != 1 || flags[0].Kind != KindRotationRisk || flags[0].Severity != SeverityHigh {
		t.Fatalf("expected only high rotation risk, got %+v", flags)
	}
	if !HasHighRisk(flags) {
		t.Fatalf("expected high risk")
	}
}

func TestRiskAnalyzerIsIdempotent(t *testing.T) {
	t.Parallel()

	analyzer := NewRiskAnalyzer(DefaultConfig().Risk, staticDifficulty{1: 4.5}, 5, 10)
	p := reliablePlayer(1, player.PositionDefender, 45)
	p.Minutes = 120
	p.Form = 1
	p.TransfersOutEvent = 200_000
	p.Status = player.StatusDoubtful

	first := analyzer.Analyze(p)
	second := analyzer.Analyze(p)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("flags differ between runs: %+v vs %+v", first, second)
	}
	if len(first) != 5 {
		t.Fatalf("unexpected flag count: got=%d want=5", len(first))
	}
	if HasHighRisk(first) != HasHighRisk(second) {
		t.Fatalf("high risk predicate not stable")
	}
}

func TestMaxSeverity(t *testing.T) {
	t.Parallel()

	if got := MaxSeverity(nil); got != SeverityNone {
		t.Fatalf("unexpected severity for no flags: %s", got)
	}
	flags := []Flag{{Severity: SeverityLow}, {Severity: SeverityMedium}}
	if got := MaxSeverity(flags); got != SeverityMedium {
		t.Fatalf("unexpected severity: got=%s want=medium", got)
	}
	if HasHighRisk(flags) {
		t.Fatalf("unexpected high risk")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "caps above max score", mutate: func(c *Config) { c.FormCap = 50 }},
		{name: "zero minutes divisor", mutate: func(c *Config) { c.MinutesDivisor = 0 }},
		{name: "zero shortlist", mutate: func(c *Config) { c.ShortlistSize = 0 }},
		{name: "inverted rotation thresholds", mutate: func(c *Config) { c.Risk.RotationHighPct = 70 }},
		{name: "positive momentum threshold", mutate: func(c *Config) { c.Risk.MomentumMedium = 10 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
