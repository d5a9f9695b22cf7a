package analytics

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

// Severity orders risk flags. SeverityNone is never attached to a flag.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "none"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Kind string

const (
	KindAvailability        Kind = "availability"
	KindRotationRisk        Kind = "rotation_risk"
	KindBadForm             Kind = "bad_form"
	KindPoorFixtures        Kind = "poor_fixtures"
	KindNegativeMomentum    Kind = "negative_momentum"
	KindWeakUnderlyingStats Kind = "weak_underlying_stats"
)

// Flag is one risk axis that fired for a player.
type Flag struct {
	Kind     Kind
	Severity Severity
	Reason   string
	Value    float64
}

// DifficultyLookup returns a team's average fixture difficulty over the next horizon matches.
type DifficultyLookup interface {
	Average(teamID, horizon int) float64
}

// RiskAnalyzer classifies a player along independent axes. It holds no mutable state.
type RiskAnalyzer struct {
	thresholds RiskThresholds
	difficulty DifficultyLookup
	horizon    int
	gameweek   int
}

func NewRiskAnalyzer(thresholds RiskThresholds, difficulty DifficultyLookup, horizon, gameweek int) *RiskAnalyzer {
	return &RiskAnalyzer{
		thresholds: thresholds,
		difficulty: difficulty,
		horizon:    horizon,
		gameweek:   gameweek,
	}
}

// Analyze returns flags in a fixed axis order. A player without minutes is only judged on
// availability, rotation, fixtures and momentum.
func (a *RiskAnalyzer) Analyze(p player.Player) []Flag {
	flags := make([]Flag, 0, 4)
	appendFlag := func(flag Flag, ok bool) {
		if ok {
			flags = append(flags, flag)
		}
	}

	appendFlag(a.availability(p))
	appendFlag(a.rotation(p))
	if p.Minutes > 0 {
		appendFlag(a.form(p))
	}
	appendFlag(a.fixtures(p))
	appendFlag(a.momentum(p))
	if p.Minutes > 0 {
		appendFlag(a.underlying(p))
	}

	return flags
}

func (a *RiskAnalyzer) availability(p player.Player) (Flag, bool) {
	chance := -1
	if p.ChanceOfPlayingNextRound != nil {
		chance = *p.ChanceOfPlayingNextRound
	}
	reason := availabilityReason(p)

	switch p.Status {
	case player.StatusInjured, player.StatusSuspended, player.StatusUnavailable, player.StatusNotInSquad:
		return Flag{Kind: KindAvailability, Severity: SeverityHigh, Reason: reason, Value: float64(max(chance, 0))}, true
	}
	if chance >= 0 && chance < a.thresholds.AvailabilityRisky {
		return Flag{Kind: KindAvailability, Severity: SeverityHigh, Reason: reason, Value: float64(chance)}, true
	}
	if p.Status == player.StatusDoubtful {
		value := 50.0
		if chance >= 0 {
			value = float64(chance)
		}
		return Flag{Kind: KindAvailability, Severity: SeverityMedium, Reason: reason, Value: value}, true
	}
	return Flag{}, false
}

func availabilityReason(p player.Player) string {
	if news := strings.TrimSpace(p.News); news != "" {
		return news
	}
	switch p.Status {
	case player.StatusInjured:
		return "injured"
	case player.StatusSuspended:
		return "suspended"
	case player.StatusDoubtful:
		return "doubtful for next round"
	default:
		return "unavailable for next round"
	}
}

func (a *RiskAnalyzer) rotation(p player.Player) (Flag, bool) {
	if a.gameweek <= 0 {
		return Flag{}, false
	}
	pct := MinutesPercentage(p.Minutes, a.gameweek)
	reason := fmt.Sprintf("played %.0f%% of available minutes", pct)

	switch {
	case pct < a.thresholds.RotationHighPct:
		return Flag{Kind: KindRotationRisk, Severity: SeverityHigh, Reason: reason, Value: pct}, true
	case pct < a.thresholds.RotationMediumPct:
		return Flag{Kind: KindRotationRisk, Severity: SeverityMedium, Reason: reason, Value: pct}, true
	default:
		return Flag{}, false
	}
}

func (a *RiskAnalyzer) form(p player.Player) (Flag, bool) {
	reason := fmt.Sprintf("form %.1f", p.Form)

	switch {
	case p.Form < a.thresholds.FormHigh:
		return Flag{Kind: KindBadForm, Severity: SeverityHigh, Reason: reason, Value: p.Form}, true
	case p.Form < a.thresholds.FormMedium:
		return Flag{Kind: KindBadForm, Severity: SeverityMedium, Reason: reason, Value: p.Form}, true
	default:
		return Flag{}, false
	}
}

func (a *RiskAnalyzer) fixtures(p player.Player) (Flag, bool) {
	if a.difficulty == nil {
		return Flag{}, false
	}
	fdr := a.difficulty.Average(p.TeamID, a.horizon)
	reason := fmt.Sprintf("average difficulty %.2f over next %d fixtures", fdr, a.horizon)

	switch {
	case fdr >= a.thresholds.FixturesHigh:
		return Flag{Kind: KindPoorFixtures, Severity: SeverityHigh, Reason: reason, Value: fdr}, true
	case fdr >= a.thresholds.FixturesMedium:
		return Flag{Kind: KindPoorFixtures, Severity: SeverityMedium, Reason: reason, Value: fdr}, true
	default:
		return Flag{}, false
	}
}

func (a *RiskAnalyzer) momentum(p player.Player) (Flag, bool) {
	net := p.NetTransfers()
	reason := fmt.Sprintf("net transfers %d", net)

	switch {
	case net < a.thresholds.MomentumHigh:
		return Flag{Kind: KindNegativeMomentum, Severity: SeverityHigh, Reason: reason, Value: float64(net)}, true
	case net < a.thresholds.MomentumMedium:
		return Flag{Kind: KindNegativeMomentum, Severity: SeverityMedium, Reason: reason, Value: float64(net)}, true
	default:
		return Flag{}, false
	}
}

func (a *RiskAnalyzer) underlying(p player.Player) (Flag, bool) {
	if p.Position.IsAttacking() {
		xgi := p.ExpectedGoalInvolvementsPer90
		if xgi < a.thresholds.AttackerMinXGI90 {
			return Flag{
				Kind:     KindWeakUnderlyingStats,
				Severity: SeverityLow,
				Reason:   fmt.Sprintf("xGI per 90 %.2f", xgi),
				Value:    xgi,
			}, true
		}
		return Flag{}, false
	}

	xgc := p.ExpectedGoalsConcededPer90
	if xgc > a.thresholds.DefenderMaxXGC90 {
		return Flag{
			Kind:     KindWeakUnderlyingStats,
			Severity: SeverityMedium,
			Reason:   fmt.Sprintf("xGC per 90 %.2f", xgc),
			Value:    xgc,
		}, true
	}
	return Flag{}, false
}

// HasHighRisk reports whether any flag is high severity.
func HasHighRisk(flags []Flag) bool {
	return MaxSeverity(flags) == SeverityHigh
}

func MaxSeverity(flags []Flag) Severity {
	out := SeverityNone
	for _, flag := range flags {
		if flag.Severity > out {
			out = flag.Severity
		}
	}
	return out
}
