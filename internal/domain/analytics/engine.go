package analytics

import (
	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
)

// Engine computes squad analytics for one gameweek over a fixed fixture snapshot. Minutes% is
// measured against minutesGameweek, which defaults to the analysed gameweek.
// It is safe for concurrent use.
type Engine struct {
	cfg             Config
	difficulty      DifficultyLookup
	gameweek        int
	minutesGameweek int
	risk            *RiskAnalyzer
}

func NewEngine(cfg Config, difficulty DifficultyLookup, gameweek int) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:             cfg,
		difficulty:      difficulty,
		gameweek:        gameweek,
		minutesGameweek: gameweek,
		risk:            NewRiskAnalyzer(cfg.Risk, difficulty, cfg.FixtureHorizon, gameweek),
	}, nil
}

// WithMinutesGameweek returns a copy that measures minutes% against gw instead of the analysed
// gameweek. Non-positive gw keeps the receiver.
func (e *Engine) WithMinutesGameweek(gw int) *Engine {
	if gw <= 0 || gw == e.minutesGameweek {
		return e
	}
	out := *e
	out.minutesGameweek = gw
	out.risk = NewRiskAnalyzer(e.cfg.Risk, e.difficulty, e.cfg.FixtureHorizon, gw)
	return &out
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Gameweek() int {
	return e.gameweek
}

// MinutesPercentage is p's share of the minutes available up to the engine's minutes gameweek.
func (e *Engine) MinutesPercentage(p player.Player) float64 {
	return MinutesPercentage(p.Minutes, e.minutesGameweek)
}

func (e *Engine) Risk() *RiskAnalyzer {
	return e.risk
}

// FixtureDifficulty is the team's average difficulty over the configured horizon.
func (e *Engine) FixtureDifficulty(teamID int) float64 {
	if e.difficulty == nil {
		return fixture.NeutralDifficulty
	}
	return e.difficulty.Average(teamID, e.cfg.FixtureHorizon)
}

func (e *Engine) IsDifferential(p player.Player) bool {
	return p.SelectedByPercent < e.cfg.DifferentialOwnership
}

// Input is everything Analyze needs. GameweekPoints may be nil when no live stats exist.
type Input struct {
	Entry          squad.Entry
	Pool           []player.Player
	GameweekPoints map[int]int
}

type MemberReport struct {
	SquadMember
	Flags             []Flag
	Severity          Severity
	GameweekPoints    int
	PointsPerMillion  float64
	MinutesPercentage float64
	FixtureDifficulty float64
}

type ProblemPlayer struct {
	Member       MemberReport
	Replacements []Candidate
}

type Report struct {
	EntryID          int
	Gameweek         int
	Bank             int64
	Aggregates       Aggregates
	Members          []MemberReport
	Problems         []ProblemPlayer
	SkippedPlayerIDs []int
}

// Analyze resolves the entry's picks against the pool and builds the full report. Picks whose
// player is missing from the pool are skipped and listed in SkippedPlayerIDs.
func (e *Engine) Analyze(in Input) Report {
	byID := make(map[int]player.Player, len(in.Pool))
	for _, p := range in.Pool {
		byID[p.ID] = p
	}

	members := make([]SquadMember, 0, len(in.Entry.Picks))
	skipped := make([]int, 0)
	for _, pick := range in.Entry.Picks {
		p, ok := byID[pick.PlayerID]
		if !ok {
			skipped = append(skipped, pick.PlayerID)
			continue
		}
		members = append(members, SquadMember{Pick: pick, Player: p})
	}

	report := Report{
		EntryID:          in.Entry.ID,
		Gameweek:         e.gameweek,
		Bank:             in.Entry.Bank,
		Aggregates:       e.Aggregate(members, in.GameweekPoints),
		Members:          make([]MemberReport, 0, len(members)),
		Problems:         make([]ProblemPlayer, 0),
		SkippedPlayerIDs: skipped,
	}

	owned := in.Entry.PlayerIDs()
	for _, member := range members {
		flags := e.risk.Analyze(member.Player)
		row := MemberReport{
			SquadMember:       member,
			Flags:             flags,
			Severity:          MaxSeverity(flags),
			GameweekPoints:    e.gameweekPointsFor(member.Player, in.GameweekPoints),
			PointsPerMillion:  PointsPerMillion(member.Player),
			MinutesPercentage: e.MinutesPercentage(member.Player),
			FixtureDifficulty: e.FixtureDifficulty(member.Player.TeamID),
		}
		report.Members = append(report.Members, row)

		if row.Severity >= SeverityMedium {
			report.Problems = append(report.Problems, ProblemPlayer{
				Member:       row,
				Replacements: e.Recommend(member.Player, owned, in.Pool, in.Entry.Bank),
			})
		}
	}

	return report
}
