package authcore

import (
	"context"
	"errors"
	"time"
)

// FailoverError is a caller-raised error carrying a classified reason. Only
// ReasonRateLimit and ReasonTimeout trigger Run's infinite-retry path; the
// rest propagate immediately.
type FailoverError struct {
	Reason FailureReason
	Err    error
}

func (e *FailoverError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "authcore: failover error: " + string(e.Reason)
}

func (e *FailoverError) Unwrap() error { return e.Err }

func (e *FailoverError) retryable() bool {
	return e.Reason == ReasonRateLimit || e.Reason == ReasonTimeout
}

// ErrAborted is the generic cancellation error raised when the driver finds
// its context already cancelled at the start of an attempt. An error returned
// by execute after cancellation is propagated as is, not replaced by
// ErrAborted.
var ErrAborted = errors.New("authcore: aborted")

// ErrAbortedDuringCooldown is raised specifically when cancellation fires
// while sleepWithAbort is waiting out a cooldown, distinguishable from the
// generic aborted error.
var ErrAbortedDuringCooldown = errors.New("authcore: aborted during cooldown wait")

// Candidate is one profile-for-model pair the driver may wait on.
type Candidate struct {
	ProfileID string
	Stats     ProfileUsageStats
}

// QuotaExhaustionEvent is the payload passed to OnQuotaExhaustion.
type QuotaExhaustionEvent struct {
	Provider string
	Model    string
	WaitMs   int64
	Attempt  int
}

// RunOptions configures a single Run invocation.
type RunOptions struct {
	Clock Clock

	// Provider/Model/Candidates are optional. When Candidates returns a
	// non-empty set, waitMs is computed via minEligibleWait (scoped to
	// Model when it is set); otherwise the driver falls back to the default
	// one-minute wait. Provider and Model are also reported to
	// OnQuotaExhaustion and the warning log.
	Provider   string
	Model      string
	Candidates func() []Candidate

	OnQuotaExhaustion func(QuotaExhaustionEvent)
}

const defaultWaitMs = 60_000

// Run is the infinite-retry driver. It invokes execute; on a FailoverError
// with a retryable reason it sleeps until the earliest candidate becomes
// eligible (or a default wait, absent candidates) and retries, indefinitely,
// respecting ctx cancellation. Non-qualifying errors and successes both
// return immediately.
func Run[T any](ctx context.Context, opts RunOptions, execute func(attempt int) (T, error)) (T, error) {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	var zero T
	attempt := 0
	for {
		attempt++
		if err := ctx.Err(); err != nil {
			return zero, ErrAborted
		}

		result, err := execute(attempt)
		if err == nil {
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, err
		}

		var failover *FailoverError
		if !errors.As(err, &failover) || !failover.retryable() {
			return zero, err
		}

		waitMs := defaultWaitMs
		if opts.Candidates != nil {
			if candidates := opts.Candidates(); len(candidates) > 0 {
				waitMs = int(minEligibleWait(candidates, opts.Model, clock.NowMillis()))
			}
		}

		event := QuotaExhaustionEvent{Provider: opts.Provider, Model: opts.Model, WaitMs: int64(waitMs), Attempt: attempt}
		if opts.OnQuotaExhaustion != nil {
			opts.OnQuotaExhaustion(event)
		} else {
			warnQuotaExhausted(opts.Provider, opts.Model, int64(waitMs), attempt)
		}

		if err := sleepWithAbort(ctx, time.Duration(waitMs)*time.Millisecond); err != nil {
			return zero, err
		}
	}
}

// minEligibleWait is the smallest ResolveUnusableUntil-now among candidates,
// or 0 if any candidate is already eligible. modelID scopes the eligibility
// check to that model's cooldown in addition to the profile-wide one.
func minEligibleWait(candidates []Candidate, modelID string, now int64) int64 {
	var min int64
	found := false
	for _, c := range candidates {
		until, ok := ResolveUnusableUntil(c.Stats, modelID)
		if !ok || until <= now {
			return 0
		}
		wait := until - now
		if !found || wait < min {
			min = wait
			found = true
		}
	}
	if !found {
		return 0
	}
	return min
}

// sleepWithAbort sleeps for d, waking promptly and returning
// ErrAbortedDuringCooldown if ctx is cancelled first. The timer is always
// stopped on every exit path so no goroutine or channel send is leaked.
func sleepWithAbort(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return ErrAbortedDuringCooldown
		}
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ErrAbortedDuringCooldown
	case <-timer.C:
		return nil
	}
}
