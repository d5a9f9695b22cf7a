package analytics

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds every weight, cap and threshold used by the engine. The values are empirical
// heuristics; DefaultConfig returns the product defaults.
type Config struct {
	FixtureHorizon        int     `validate:"gte=1,lte=38"`
	ShortlistSize         int     `validate:"gte=1,lte=50"`
	DifferentialOwnership float64 `validate:"gte=0,lte=100"`

	FormMultiplier float64 `validate:"gte=0"`
	FormCap        float64 `validate:"gte=0"`

	FixtureBaseline   float64 `validate:"gt=0"`
	FixtureMultiplier float64 `validate:"gte=0"`
	FixtureCap        float64 `validate:"gte=0"`

	ValueMultiplier float64 `validate:"gte=0"`
	ValueCap        float64 `validate:"gte=0"`

	MinutesDivisor float64 `validate:"gt=0"`
	MinutesCap     float64 `validate:"gte=0"`

	MomentumDivisor float64 `validate:"gt=0"`
	MomentumCap     float64 `validate:"gte=0"`

	Risk RiskThresholds
}

// RiskThresholds configures the risk axes. Momentum thresholds are negative net transfer counts.
type RiskThresholds struct {
	RotationMediumPct float64 `validate:"gte=0,lte=100"`
	RotationHighPct   float64 `validate:"gte=0,lte=100,ltefield=RotationMediumPct"`

	FormMedium float64 `validate:"gte=0"`
	FormHigh   float64 `validate:"gte=0,ltefield=FormMedium"`

	FixturesMedium float64 `validate:"gte=1,lte=5"`
	FixturesHigh   float64 `validate:"gte=1,lte=5,gtefield=FixturesMedium"`

	MomentumMedium int64 `validate:"lte=0"`
	MomentumHigh   int64 `validate:"lte=0,ltefield=MomentumMedium"`

	AttackerMinXGI90  float64 `validate:"gte=0"`
	DefenderMaxXGC90  float64 `validate:"gte=0"`
	AvailabilityRisky int     `validate:"gte=0,lte=100"`
}

const MaxScore = 100.0

func DefaultConfig() Config {
	return Config{
		FixtureHorizon:        5,
		ShortlistSize:         5,
		DifferentialOwnership: 15,

		FormMultiplier: 5,
		FormCap:        30,

		FixtureBaseline:   5,
		FixtureMultiplier: 5,
		FixtureCap:        25,

		ValueMultiplier: 10,
		ValueCap:        20,

		MinutesDivisor: 6,
		MinutesCap:     15,

		MomentumDivisor: 10_000,
		MomentumCap:     10,

		Risk: RiskThresholds{
			RotationMediumPct: 60,
			RotationHighPct:   30,
			FormMedium:        3.5,
			FormHigh:          2.0,
			FixturesMedium:    3.5,
			FixturesHigh:      4.0,
			MomentumMedium:    -25_000,
			MomentumHigh:      -100_000,
			AttackerMinXGI90:  0.15,
			DefenderMaxXGC90:  1.8,
			AvailabilityRisky: 50,
		},
	}
}

var configValidator = validator.New()

func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid analytics config: %w", err)
	}
	if sum := c.FormCap + c.FixtureCap + c.ValueCap + c.MinutesCap + c.MomentumCap; sum > MaxScore {
		return fmt.Errorf("invalid analytics config: score caps sum to %.2f, max %.0f", sum, MaxScore)
	}
	return nil
}
