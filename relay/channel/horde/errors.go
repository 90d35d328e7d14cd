package horde

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	SubmissionRejected   ErrorKind = "submission_rejected"
	ProcessingImpossible ErrorKind = "processing_impossible"
	ProcessingTimedOut   ErrorKind = "processing_timed_out"
	AssetFetchFailed     ErrorKind = "asset_fetch_failed"
)

var (
	// ErrNoConfigurationAccepted is the submission cause when no candidate
	// was ever attempted.
	ErrNoConfigurationAccepted = errors.New("failed to submit task to AI Horde with any model configuration")
	ErrUnsupportedFormat       = errors.New("unsupported response_format")
)

// JobError is the single failure type returned by GenerateJob.
type JobError struct {
	Kind   ErrorKind
	Handle JobHandle
	Err    error
}

func (e *JobError) Error() string {
	switch e.Kind {
	case ProcessingImpossible:
		return "AI Horde cannot fulfill this request (no matching workers)"
	case ProcessingTimedOut:
		return "request timed out or failed processing"
	case AssetFetchFailed:
		if e.Err != nil {
			return "failed to fetch generated image: " + e.Err.Error()
		}
		return "failed to fetch generated image"
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a JobError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var jobErr *JobError
	if errors.As(err, &jobErr) {
		return jobErr.Kind, true
	}
	return "", false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// UpstreamError is a non-2xx answer from AI Horde or an asset host.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return e.Message
}
