package horde

import (
	"context"
	"testing"
	"time"

	"github.com/contributory/ai-gateway/common/config"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(transport *stubTransport, fetcher *stubFetcher, observer Observer) *Orchestrator {
	return &Orchestrator{
		Transport: transport,
		Fetcher:   fetcher,
		Poller:    newTestPoller(transport),
		Observer:  observer,
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestGenerateJobRedBalloon(t *testing.T) {
	transport := &stubTransport{
		submitErrs: []error{&UpstreamError{StatusCode: 400, Message: "Invalid model"}, nil},
		statuses:   []*StatusResponse{pending(), pending(), done("https://r2/balloon.webp")},
	}
	observer := &recordingObserver{}
	orchestrator := newTestOrchestrator(transport, &stubFetcher{}, observer)

	result, err := orchestrator.GenerateJob(context.Background(), &relaymodel.ImageRequest{Prompt: "A red balloon"}, "")
	require.NoError(t, err)

	assert.Equal(t, 2, transport.submitCalls())
	assert.Equal(t, 3, transport.statusCalls)
	assert.Equal(t, ResponseFormatURL, result.Format)
	assert.Equal(t, int64(1700000000), result.Created)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "https://r2/balloon.webp", result.Data[0].Url)
	assert.Equal(t, "A red balloon", result.Data[0].RevisedPrompt)

	assert.Equal(t, []string{config.HordePublicAPIKey, config.HordePublicAPIKey}, transport.credentials)
	assert.Equal(t, []string{"stable_diffusion:rejected", "stable_diffusion_2.1:accepted"}, observer.attempts)
	assert.Equal(t, []JobHandle{"job-1"}, observer.submitted)
	assert.Equal(t, []error{nil}, observer.finished)
}

func TestGenerateJobEmbedded(t *testing.T) {
	transport := &stubTransport{statuses: []*StatusResponse{done("https://r2/1.webp")}}
	fetcher := &stubFetcher{assets: map[string][]byte{"https://r2/1.webp": []byte("png")}}
	orchestrator := newTestOrchestrator(transport, fetcher, nil)

	req := &relaymodel.ImageRequest{Prompt: "p", ResponseFormat: ResponseFormatB64JSON}
	result, err := orchestrator.GenerateJob(context.Background(), req, "Bearer private-key")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "cG5n", result.Data[0].B64Json)
	assert.Equal(t, []string{"private-key"}, transport.credentials)
}

func TestGenerateJobAssetFailureCarriesHandle(t *testing.T) {
	transport := &stubTransport{statuses: []*StatusResponse{done("https://r2/1.webp")}}
	observer := &recordingObserver{}
	orchestrator := newTestOrchestrator(transport, &stubFetcher{}, observer)

	_, err := orchestrator.GenerateJob(context.Background(), &relaymodel.ImageRequest{Prompt: "p", ResponseFormat: "b64_json"}, "k")
	var jobErr *JobError
	require.ErrorAs(t, err, &jobErr)
	assert.Equal(t, AssetFetchFailed, jobErr.Kind)
	assert.Equal(t, JobHandle("job-0"), jobErr.Handle)
	assert.Equal(t, []JobHandle{"job-0"}, observer.handles)
}

func TestGenerateJobSubmissionFailure(t *testing.T) {
	rejection := &UpstreamError{StatusCode: 401, Message: "Invalid API key"}
	transport := &stubTransport{submitErrs: []error{rejection, rejection, rejection, rejection}}
	observer := &recordingObserver{}
	orchestrator := newTestOrchestrator(transport, &stubFetcher{}, observer)

	_, err := orchestrator.GenerateJob(context.Background(), &relaymodel.ImageRequest{Prompt: "p"}, "bad")
	assert.True(t, IsKind(err, SubmissionRejected))
	assert.Zero(t, transport.statusCalls)
	assert.Empty(t, observer.submitted)
	require.Len(t, observer.handles, 1)
	assert.Equal(t, JobHandle(""), observer.handles[0])
}

func TestGenerateJobRejectsFormatBeforeSubmit(t *testing.T) {
	transport := &stubTransport{}
	orchestrator := newTestOrchestrator(transport, &stubFetcher{}, nil)

	_, err := orchestrator.GenerateJob(context.Background(), &relaymodel.ImageRequest{Prompt: "p", ResponseFormat: "png"}, "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, transport.submitCalls())
}

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", config.HordePublicAPIKey},
		{"   ", config.HordePublicAPIKey},
		{"Bearer ", config.HordePublicAPIKey},
		{"Bearer abc", "abc"},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveAPIKey(tt.raw), tt.raw)
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "succeeded", Outcome(nil))
	assert.Equal(t, "processing_timed_out", Outcome(&JobError{Kind: ProcessingTimedOut}))
	assert.Equal(t, "canceled", Outcome(context.Canceled))
	assert.Equal(t, "failed", Outcome(ErrUnsupportedFormat))
}
