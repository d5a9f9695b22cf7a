package analytics

import (
	"sort"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

// ScoreBreakdown holds each capped contribution of the composite score.
type ScoreBreakdown struct {
	Form     float64
	Fixtures float64
	Value    float64
	Minutes  float64
	Momentum float64
}

func (b ScoreBreakdown) Total() float64 {
	return b.Form + b.Fixtures + b.Value + b.Minutes + b.Momentum
}

// Candidate is a scored replacement option. PriceDelta is candidate price minus the replaced
// player's price, in tenths; negative means cheaper.
type Candidate struct {
	Player            player.Player
	Score             float64
	Breakdown         ScoreBreakdown
	PriceDelta        int64
	FixtureDifficulty float64
	MinutesPercentage float64
	PointsPerMillion  float64
}

// Score computes the composite replacement score for a single player.
func (e *Engine) Score(p player.Player) ScoreBreakdown {
	cfg := e.cfg
	fdr := e.FixtureDifficulty(p.TeamID)

	return ScoreBreakdown{
		Form:     clamp(p.Form*cfg.FormMultiplier, 0, cfg.FormCap),
		Fixtures: clamp((cfg.FixtureBaseline-fdr)*cfg.FixtureMultiplier, 0, cfg.FixtureCap),
		Value:    clamp(PointsPerMillion(p)*cfg.ValueMultiplier, 0, cfg.ValueCap),
		Minutes:  clamp(e.MinutesPercentage(p)/cfg.MinutesDivisor, 0, cfg.MinutesCap),
		Momentum: clamp(float64(p.NetTransfers())/cfg.MomentumDivisor, 0, cfg.MomentumCap),
	}
}

// Recommend ranks same-position players the manager could afford in place of problem.
// owned lists every player id already in the squad. The result is never nil.
func (e *Engine) Recommend(problem player.Player, owned []int, pool []player.Player, bank int64) []Candidate {
	budget := problem.Price + max(bank, 0)
	ownedSet := make(map[int]struct{}, len(owned)+1)
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}
	ownedSet[problem.ID] = struct{}{}

	candidates := make([]Candidate, 0)
	for _, p := range pool {
		if p.Position != problem.Position || p.Price > budget {
			continue
		}
		if _, isOwned := ownedSet[p.ID]; isOwned {
			continue
		}

		breakdown := e.Score(p)
		candidates = append(candidates, Candidate{
			Player:            p,
			Score:             breakdown.Total(),
			Breakdown:         breakdown,
			PriceDelta:        p.Price - problem.Price,
			FixtureDifficulty: e.FixtureDifficulty(p.TeamID),
			MinutesPercentage: e.MinutesPercentage(p),
			PointsPerMillion:  PointsPerMillion(p),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > e.cfg.ShortlistSize {
		candidates = candidates[:e.cfg.ShortlistSize]
	}

	return candidates
}
