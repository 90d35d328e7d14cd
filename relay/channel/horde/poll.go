package horde

import (
	"context"
	"time"

	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/pkg/errors"
)

type StatusKind int

const (
	StatusPending StatusKind = iota
	StatusDone
	StatusImpossible
)

func (k StatusKind) String() string {
	switch k {
	case StatusDone:
		return "done"
	case StatusImpossible:
		return "impossible"
	}
	return "pending"
}

// JobStatus is the classified result of one status query. Generations is
// only set for StatusDone.
type JobStatus struct {
	Kind        StatusKind
	Generations []Generation
}

// Classify maps a status body onto exactly one JobStatus. A nil body, or
// one without is_possible, is pending.
func Classify(resp *StatusResponse) JobStatus {
	if resp == nil {
		return JobStatus{Kind: StatusPending}
	}
	if resp.Done {
		return JobStatus{Kind: StatusDone, Generations: resp.Generations}
	}
	if resp.IsPossible != nil && !*resp.IsPossible {
		return JobStatus{Kind: StatusImpossible}
	}
	return JobStatus{Kind: StatusPending}
}

// Poller waits for a submitted job to reach a terminal state. Each attempt
// waits Interval and then issues one status query.
type Poller struct {
	Checker     StatusChecker
	Interval    time.Duration
	MaxAttempts int
	// Wait defaults to a context-aware timer.
	Wait func(ctx context.Context, d time.Duration) error
}

func NewPoller(checker StatusChecker) *Poller {
	return &Poller{
		Checker:     checker,
		Interval:    config.HordePollInterval,
		MaxAttempts: config.HordeMaxPollAttempts,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Poller) Poll(ctx context.Context, handle JobHandle) ([]Generation, error) {
	wait := p.Wait
	if wait == nil {
		wait = sleepContext
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPollAttempts
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := wait(ctx, p.Interval); err != nil {
			return nil, errors.Wrapf(err, "polling job %s", handle)
		}
		resp, err := p.Checker.CheckStatus(ctx, handle)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrapf(ctx.Err(), "polling job %s", handle)
			}
			logger.Warnf(ctx, "[horde] job %s status attempt %d/%d unreadable, treating as pending: %s", handle, attempt, maxAttempts, err.Error())
		} else if resp != nil && resp.IsPossible == nil && !resp.Done {
			logger.Warnf(ctx, "[horde] job %s status attempt %d/%d has no is_possible field, treating as pending", handle, attempt, maxAttempts)
		}

		status := Classify(resp)
		switch status.Kind {
		case StatusDone:
			logger.Infof(ctx, "[horde] job %s done after %d attempts with %d generations", handle, attempt, len(status.Generations))
			return status.Generations, nil
		case StatusImpossible:
			return nil, &JobError{Kind: ProcessingImpossible, Handle: handle}
		}
		if resp != nil {
			logger.Debugf(ctx, "[horde] job %s pending: queue position %d, wait %ds", handle, resp.QueuePosition, resp.WaitTime)
		}
	}
	return nil, &JobError{Kind: ProcessingTimedOut, Handle: handle}
}
