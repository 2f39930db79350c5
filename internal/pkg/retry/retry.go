// Package retry re-runs optimistic read-modify-write cycles that lost a race
package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/realm-api/internal/errors"
)

const (
	// DefaultAttempts bounds how often a conflicting commit is retried
	DefaultAttempts = 5

	initialDelay = 10 * time.Millisecond
	maxDelay     = 160 * time.Millisecond
)

// OnConflict runs fn until it succeeds, returns an error other than
// Aborted, or attempts run out. Each attempt must redo its reads: fn is
// the whole read → transform → commit cycle.
func OnConflict(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	delay := initialDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil || !errors.IsAborted(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		slog.DebugContext(ctx, "commit conflict, retrying",
			"attempt", attempt,
			"delay", delay,
			"error", err.Error())

		select {
		case <-ctx.Done():
			return errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "retry canceled")
		case <-time.After(delay):
		}
		if delay < maxDelay {
			delay *= 2
		}
	}

	return errors.Wrapf(err, "gave up after %d attempts", attempts)
}
