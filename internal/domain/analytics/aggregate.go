package analytics

import (
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
)

// SquadMember is a pick resolved to its player record.
type SquadMember struct {
	Pick   squad.Pick
	Player player.Player
}

// Aggregates are the squad-level summary numbers. All averages are over resolved members.
type Aggregates struct {
	MemberCount              int
	BenchPointsWasted        int
	AveragePPM               float64
	AverageOwnership         float64
	AverageFixtureDifficulty float64
	AverageMinutesPercentage float64
	HighRiskCount            int
}

// Aggregate reduces members in one pass. gameweekPoints carries per-player points for the
// engine's gameweek; when it is nil the player's event points are used for the bench instead.
func (e *Engine) Aggregate(members []SquadMember, gameweekPoints map[int]int) Aggregates {
	out := Aggregates{MemberCount: len(members)}
	if len(members) == 0 {
		return out
	}

	var ppm, ownership, fdr, minutes float64
	for _, member := range members {
		p := member.Player

		if member.Pick.IsBench() {
			out.BenchPointsWasted += e.gameweekPointsFor(p, gameweekPoints)
		}
		ppm += PointsPerMillion(p)
		ownership += p.SelectedByPercent
		fdr += e.FixtureDifficulty(p.TeamID)
		minutes += e.MinutesPercentage(p)
		if HasHighRisk(e.risk.Analyze(p)) {
			out.HighRiskCount++
		}
	}

	n := float64(len(members))
	out.AveragePPM = ppm / n
	out.AverageOwnership = ownership / n
	out.AverageFixtureDifficulty = fdr / n
	out.AverageMinutesPercentage = minutes / n

	return out
}

func (e *Engine) gameweekPointsFor(p player.Player, gameweekPoints map[int]int) int {
	if gameweekPoints == nil {
		return p.EventPoints
	}
	return gameweekPoints[p.ID]
}
