package horde

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type stubTransport struct {
	mu          sync.Mutex
	submitErrs  []error
	submitted   []JobConfiguration
	credentials []string
	statuses    []*StatusResponse
	statusErrs  []error
	statusCalls int
}

func (s *stubTransport) Submit(_ context.Context, cfg JobConfiguration, credential string) (JobHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := len(s.submitted)
	s.submitted = append(s.submitted, cfg)
	s.credentials = append(s.credentials, credential)
	if idx < len(s.submitErrs) && s.submitErrs[idx] != nil {
		return "", s.submitErrs[idx]
	}
	return JobHandle(fmt.Sprintf("job-%d", idx)), nil
}

func (s *stubTransport) CheckStatus(_ context.Context, _ JobHandle) (*StatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.statusCalls
	s.statusCalls++
	if idx < len(s.statusErrs) && s.statusErrs[idx] != nil {
		return nil, s.statusErrs[idx]
	}
	if idx < len(s.statuses) {
		return s.statuses[idx], nil
	}
	return pending(), nil
}

func (s *stubTransport) submitCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submitted)
}

type stubFetcher struct {
	mu     sync.Mutex
	assets map[string][]byte
	errs   map[string]error
	calls  []string
}

func (f *stubFetcher) FetchAsset(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	data, ok := f.assets[url]
	if !ok {
		return nil, &UpstreamError{StatusCode: 404}
	}
	return data, nil
}

type recordingObserver struct {
	mu        sync.Mutex
	attempts  []string
	submitted []JobHandle
	finished  []error
	handles   []JobHandle
}

func (r *recordingObserver) SubmissionAttempt(_ context.Context, candidate Candidate, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outcome := "accepted"
	if err != nil {
		outcome = "rejected"
	}
	r.attempts = append(r.attempts, candidate.Name+":"+outcome)
}

func (r *recordingObserver) JobSubmitted(_ context.Context, handle JobHandle, _ JobConfiguration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted = append(r.submitted, handle)
}

func (r *recordingObserver) JobFinished(_ context.Context, handle JobHandle, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles = append(r.handles, handle)
	r.finished = append(r.finished, err)
}

func boolPtr(b bool) *bool {
	return &b
}

func pending() *StatusResponse {
	return &StatusResponse{IsPossible: boolPtr(true), WaitTime: 10}
}

func impossible() *StatusResponse {
	return &StatusResponse{IsPossible: boolPtr(false)}
}

func done(urls ...string) *StatusResponse {
	gens := make([]Generation, 0, len(urls))
	for i, u := range urls {
		gens = append(gens, Generation{Img: u, Id: fmt.Sprintf("gen-%d", i)})
	}
	return &StatusResponse{Done: true, IsPossible: boolPtr(true), Generations: gens}
}

func noWait(context.Context, time.Duration) error {
	return nil
}
