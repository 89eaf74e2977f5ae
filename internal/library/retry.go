package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/julianstephens/homeplan/internal/logger"
	"github.com/julianstephens/homeplan/internal/models"
)

// Retrying retries failed lookups of the wrapped library with backoff.
type Retrying struct {
	next     Library
	attempts uint
	delay    time.Duration
	maxDelay time.Duration
}

// NewRetrying wraps next so that transient failures are retried.
func NewRetrying(next Library, attempts uint, delay, maxDelay time.Duration) *Retrying {
	return &Retrying{next: next, attempts: attempts, delay: delay, maxDelay: maxDelay}
}

func (r *Retrying) Lookup(ctx context.Context, q models.LibraryQuery) ([]models.LibraryExercise, error) {
	var exercises []models.LibraryExercise
	err := retry.Do(
		func() error {
			var err error
			exercises, err = r.next.Lookup(ctx, q)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.MaxDelay(r.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying library lookup", "attempt", n+1, "error", err)
		}),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return exercises, nil
}
