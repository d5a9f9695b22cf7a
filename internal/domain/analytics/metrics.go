package analytics

import "github.com/riskibarqy/fpl-insights/internal/domain/player"

const minutesPerMatch = 90

// MinutesPercentage is the share of available minutes played through the given gameweek, capped at
// 100. No available minutes yields 0.
func MinutesPercentage(minutes, gameweek int) float64 {
	available := minutesPerMatch * gameweek
	if available <= 0 || minutes <= 0 {
		return 0
	}
	return min(float64(minutes)/float64(available)*100, 100)
}

func PointsPerMillion(p player.Player) float64 {
	return p.PointsPerMillion()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
