package orchestrator

import (
	"context"
	"time"

	"dispatch/internal/pkg/errs"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = time.Minute
)

// RetryPolicy bounds how often a stage is re-run after a retriable failure.
// The delay between attempts is fixed.
type RetryPolicy struct {
	// MaxAttempts counts every run of a stage, the first one included.
	MaxAttempts int

	// Delay is the pause between two attempts.
	Delay time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultRetryDelay}
}

func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return errs.NewValueIsInvalidError("retry max attempts")
	}
	if p.Delay < 0 {
		return errs.NewValueIsInvalidError("retry delay")
	}
	return nil
}

// wait pauses for the policy delay or until ctx is done.
func (p RetryPolicy) wait(ctx context.Context) error {
	if p.Delay == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
