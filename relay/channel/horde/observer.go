package horde

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Observer receives job lifecycle events. Implementations must be safe for
// concurrent use since every request reports to the same observer.
type Observer interface {
	SubmissionAttempt(ctx context.Context, candidate Candidate, err error)
	JobSubmitted(ctx context.Context, handle JobHandle, cfg JobConfiguration)
	// JobFinished fires once per GenerateJob call. handle is empty when
	// submission failed; err is nil on success.
	JobFinished(ctx context.Context, handle JobHandle, err error, elapsed time.Duration)
}

type NopObserver struct{}

func (NopObserver) SubmissionAttempt(context.Context, Candidate, error) {}

func (NopObserver) JobSubmitted(context.Context, JobHandle, JobConfiguration) {}

func (NopObserver) JobFinished(context.Context, JobHandle, error, time.Duration) {}

// MultiObserver fans events out in order.
type MultiObserver []Observer

func (m MultiObserver) SubmissionAttempt(ctx context.Context, candidate Candidate, err error) {
	for _, o := range m {
		o.SubmissionAttempt(ctx, candidate, err)
	}
}

func (m MultiObserver) JobSubmitted(ctx context.Context, handle JobHandle, cfg JobConfiguration) {
	for _, o := range m {
		o.JobSubmitted(ctx, handle, cfg)
	}
}

func (m MultiObserver) JobFinished(ctx context.Context, handle JobHandle, err error, elapsed time.Duration) {
	for _, o := range m {
		o.JobFinished(ctx, handle, err, elapsed)
	}
}

// Outcome labels a GenerateJob result for metrics and the job log.
func Outcome(err error) string {
	if err == nil {
		return "succeeded"
	}
	if kind, ok := KindOf(err); ok {
		return string(kind)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "failed"
}
