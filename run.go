package lode

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/quarryworks/lode/pkg/domain"
)

// defaultRetryPolicy caps how long Run keeps re-attempting a failing
// tick with nobody clearing the obstruction. The traversal state is not
// lost when the cap is hit: the failing frame stays persisted and a
// later Run picks it up again.
func defaultRetryPolicy() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxInterval = 10 * time.Second
	policy.MaxElapsedTime = 2 * time.Minute
	return policy
}

// Run drives the excavation to terminal success.
//
// A Running tick continues immediately and resets the retry policy
// (progress was made). A Failure tick consults the policy: Run sleeps
// for the suggested interval and retries the identical tick, because
// the failing frame is preserved on the stack. When the policy gives
// up, Run returns an error with the excavation state intact.
func (e *Excavator) Run(ctx context.Context) error {
	e.retry.Reset()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := e.Tick(ctx)
		if err != nil {
			return err
		}

		switch res {
		case domain.ResultSuccess:
			e.logger.Info("excavation finished", "session", e.sessionID)
			return nil

		case domain.ResultRunning:
			e.retry.Reset()

		default:
			delay := e.retry.NextBackOff()
			if delay == backoff.Stop {
				return fmt.Errorf("lode: excavation stalled, retry policy exhausted (state preserved, depth %d)", e.Depth())
			}
			e.logger.Warn("tick failed, retrying", "delay", delay, "depth", e.Depth())

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
}
