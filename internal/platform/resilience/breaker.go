package resilience

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

// NormalizeCircuitBreakerConfig fills zero values from the defaults, keeping Enabled as given.
func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// Breaker guards calls to one upstream dependency. A disabled breaker passes every call through.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

func NewBreaker(name string, cfg CircuitBreakerConfig, logger *logging.Logger) *Breaker {
	if !cfg.Enabled {
		return &Breaker{}
	}
	cfg = NormalizeCircuitBreakerConfig(cfg)
	logger = logging.OrDefault(logger)
	threshold := uint32(cfg.FailureThreshold)

	return &Breaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: uint32(cfg.HalfOpenMaxReq),
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// Execute runs fn through the breaker. countAsFailure decides which errors trip it; errors it
// rejects are returned to the caller without counting against the dependency.
func (b *Breaker) Execute(fn func() error, countAsFailure func(error) bool) error {
	if b == nil || b.cb == nil {
		return fn()
	}

	var passthrough error
	_, err := b.cb.Execute(func() (any, error) {
		callErr := fn()
		if callErr != nil && countAsFailure != nil && !countAsFailure(callErr) {
			passthrough = callErr
			return nil, nil
		}
		return nil, callErr
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	if err != nil {
		return err
	}
	return passthrough
}

func (b *Breaker) State() string {
	if b == nil || b.cb == nil {
		return "disabled"
	}
	return b.cb.State().String()
}
