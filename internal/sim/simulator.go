// Package sim stands in for the remote backend the dashboard would normally
// talk to. Every call waits a bounded random delay and can fail at a
// configured rate, so clients exercise their loading and error states.
//
// A caller that goes away (its context is cancelled) during the delay never
// has its operation applied: Do returns ctx.Err() and op is not run.
package sim

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrSimulatedFailure is returned when the simulator decides a call fails.
var ErrSimulatedFailure = errors.New("simulated backend failure")

const (
	DefaultMinDelay = 300 * time.Millisecond
	DefaultMaxDelay = 600 * time.Millisecond
)

// Simulator injects latency and failures in front of an operation. The zero
// value runs operations immediately and never fails.
type Simulator struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	// FailRate is the probability in [0,1] that a call fails.
	FailRate float64

	// Rand returns a number in [0,1). Defaults to math/rand/v2.
	Rand func() float64
	// Sleep waits d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// FailNext, when set, overrides FailRate for each call.
	FailNext func() bool
}

// New returns a simulator with the given bounds. A max below min is raised to min.
func New(minDelay, maxDelay time.Duration, failRate float64) *Simulator {
	if minDelay < 0 {
		minDelay = 0
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	if failRate < 0 {
		failRate = 0
	}
	if failRate > 1 {
		failRate = 1
	}
	return &Simulator{MinDelay: minDelay, MaxDelay: maxDelay, FailRate: failRate}
}

// Instant returns a simulator with no delay and no failures.
func Instant() *Simulator { return &Simulator{} }

// AlwaysFail returns a simulator with no delay whose calls always fail.
func AlwaysFail() *Simulator {
	return &Simulator{FailNext: func() bool { return true }}
}

func (s *Simulator) rand() float64 {
	if s.Rand != nil {
		return s.Rand()
	}
	return rand.Float64()
}

// Delay picks the wait for one call, uniform in [MinDelay, MaxDelay].
func (s *Simulator) Delay() time.Duration {
	if s.MaxDelay <= s.MinDelay {
		return s.MinDelay
	}
	span := float64(s.MaxDelay - s.MinDelay)
	return s.MinDelay + time.Duration(s.rand()*span)
}

func (s *Simulator) fail() bool {
	if s.FailNext != nil {
		return s.FailNext()
	}
	return s.FailRate > 0 && s.rand() < s.FailRate
}

func (s *Simulator) sleep(ctx context.Context, d time.Duration) error {
	if s.Sleep != nil {
		return s.Sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do waits, then either fails with ErrSimulatedFailure or runs op. A nil
// Simulator runs op directly. Failures are not retried.
func (s *Simulator) Do(ctx context.Context, op func(ctx context.Context) error) error {
	if s == nil {
		return op(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.sleep(ctx, s.Delay()); err != nil {
		return err
	}
	// The caller may have gone away while a custom Sleep ignored ctx.
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.fail() {
		log.Ctx(ctx).Debug().Msg("simulated backend failure")
		return ErrSimulatedFailure
	}
	return op(ctx)
}

// Call is Do for operations that return a value.
func Call[T any](ctx context.Context, s *Simulator, op func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := s.Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
