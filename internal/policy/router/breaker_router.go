package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/sundacoder/ZedID/internal/errors"
	"github.com/sundacoder/ZedID/internal/policy/domain"
)

// BreakerConfig configures the circuit breaker around a Router.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures int
	// OpenTimeout is how long the breaker stays open before letting a probe through.
	OpenTimeout time.Duration
}

type breakerRouter struct {
	next    Router
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerRouter wraps next with a circuit breaker. While the breaker is
// open, Route fails immediately with domain.ErrRoutingFailed. Calls are never retried.
func NewBreakerRouter(next Router, cfg BreakerConfig, logger *slog.Logger) Router {
	maxFailures := uint32(max(cfg.MaxFailures, 1))

	settings := gobreaker.Settings{
		Name:        "model-router",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &breakerRouter{next: next, breaker: gobreaker.NewCircuitBreaker(settings)}
}

func (b *breakerRouter) Route(ctx context.Context, prompt string, kind domain.Kind) (*domain.RouteResult, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.Route(ctx, prompt, kind)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.Wrapf(domain.ErrRoutingFailed, "circuit breaker %s", b.breaker.State())
		}
		return nil, err
	}
	return result.(*domain.RouteResult), nil
}
