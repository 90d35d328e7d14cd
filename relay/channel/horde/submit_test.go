package horde

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfigurationDefaults(t *testing.T) {
	cfg := BuildConfiguration(&relaymodel.ImageRequest{Prompt: "a fox"}, DefaultLadder[0])

	assert.Equal(t, "a fox", cfg.Prompt)
	assert.Equal(t, DefaultSampler, cfg.Params.SamplerName)
	assert.Equal(t, DefaultCfgScale, cfg.Params.CfgScale)
	assert.Equal(t, DefaultSteps, cfg.Params.Steps)
	assert.Equal(t, 1, cfg.Params.N)
	assert.Equal(t, 512, cfg.Params.Width)
	assert.Equal(t, 512, cfg.Params.Height)
	assert.True(t, cfg.NSFW)
	assert.False(t, cfg.CensorNSFW)
	assert.Equal(t, []string{"stable_diffusion"}, cfg.Models)
}

func TestBuildConfigurationPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		req   relaymodel.ImageRequest
		check func(t *testing.T, cfg JobConfiguration)
	}{
		{
			name: "explicit size wins over default",
			req:  relaymodel.ImageRequest{Prompt: "p", Size: "768x1024"},
			check: func(t *testing.T, cfg JobConfiguration) {
				assert.Equal(t, 768, cfg.Params.Width)
				assert.Equal(t, 1024, cfg.Params.Height)
			},
		},
		{
			name: "malformed size leaves dimensions unset",
			req:  relaymodel.ImageRequest{Prompt: "p", Size: "huge"},
			check: func(t *testing.T, cfg JobConfiguration) {
				assert.Zero(t, cfg.Params.Width)
				assert.Zero(t, cfg.Params.Height)
			},
		},
		{
			name: "params win over sampler defaults and size",
			req: relaymodel.ImageRequest{Prompt: "p", Size: "768x768", Params: map[string]any{
				"steps": float64(50), "sampler_name": "k_dpmpp_2m", "width": float64(640), "karras": true,
			}},
			check: func(t *testing.T, cfg JobConfiguration) {
				assert.Equal(t, 50, cfg.Params.Steps)
				assert.Equal(t, "k_dpmpp_2m", cfg.Params.SamplerName)
				assert.Equal(t, 640, cfg.Params.Width)
				assert.Equal(t, 768, cfg.Params.Height)
				assert.Equal(t, map[string]any{"karras": true}, cfg.Params.Extra)
			},
		},
		{
			name: "n is carried",
			req:  relaymodel.ImageRequest{Prompt: "p", N: 3},
			check: func(t *testing.T, cfg JobConfiguration) {
				assert.Equal(t, 3, cfg.Params.N)
			},
		},
		{
			name: "caller models win over candidate",
			req:  relaymodel.ImageRequest{Prompt: "p", Models: []string{"Deliberate"}},
			check: func(t *testing.T, cfg JobConfiguration) {
				assert.Equal(t, []string{"Deliberate"}, cfg.Models)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, BuildConfiguration(&tt.req, DefaultLadder[1]))
		})
	}
}

func TestJobConfigurationJSON(t *testing.T) {
	req := &relaymodel.ImageRequest{Prompt: "p", Size: "bad", Params: map[string]any{"cfg_scale": "high", "seed": "42"}}
	cfg := BuildConfiguration(req, DefaultLadder[3])

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "models")
	assert.Equal(t, true, decoded["nsfw"])
	assert.Equal(t, false, decoded["censor_nsfw"])

	params := decoded["params"].(map[string]any)
	assert.Equal(t, "k_euler_a", params["sampler_name"])
	assert.Equal(t, "high", params["cfg_scale"])
	assert.Equal(t, "42", params["seed"])
	assert.Equal(t, float64(30), params["steps"])
	assert.NotContains(t, params, "width")
	assert.NotContains(t, params, "height")
}

func TestSubmitStopsAtFirstSuccess(t *testing.T) {
	for success := 0; success < len(DefaultLadder); success++ {
		t.Run(fmt.Sprintf("candidate %d", success), func(t *testing.T) {
			transport := &stubTransport{}
			for i := 0; i < success; i++ {
				transport.submitErrs = append(transport.submitErrs, &UpstreamError{StatusCode: 400, Message: "rejected"})
			}
			observer := &recordingObserver{}

			handle, cfg, err := Submit(context.Background(), transport, &relaymodel.ImageRequest{Prompt: "p"}, "key", observer)
			require.NoError(t, err)
			assert.Equal(t, JobHandle(fmt.Sprintf("job-%d", success)), handle)
			assert.Equal(t, success+1, transport.submitCalls())
			assert.Equal(t, DefaultLadder[success].Models, cfg.Models)
			assert.Len(t, observer.attempts, success+1)
		})
	}
}

func TestSubmitReturnsLastError(t *testing.T) {
	errs := []error{
		errors.New("first"),
		&UpstreamError{StatusCode: 400, Message: "second"},
		errors.New("third"),
		&UpstreamError{StatusCode: 503, Message: "last"},
	}
	transport := &stubTransport{submitErrs: errs}

	_, _, err := Submit(context.Background(), transport, &relaymodel.ImageRequest{Prompt: "p"}, "key", nil)
	require.Error(t, err)

	var jobErr *JobError
	require.ErrorAs(t, err, &jobErr)
	assert.Equal(t, SubmissionRejected, jobErr.Kind)
	assert.Equal(t, errs[3], jobErr.Err)
	assert.ErrorIs(t, err, errs[3])
	assert.Equal(t, "last", err.Error())
	assert.Equal(t, 4, transport.submitCalls())
}

func TestSubmitPinnedModelsSingleAttempt(t *testing.T) {
	rejection := &UpstreamError{StatusCode: 400, Message: "no such model"}
	transport := &stubTransport{submitErrs: []error{rejection, nil}}

	_, _, err := Submit(context.Background(), transport, &relaymodel.ImageRequest{Prompt: "p", Models: []string{"Deliberate"}}, "key", nil)
	assert.True(t, IsKind(err, SubmissionRejected))
	assert.ErrorIs(t, err, rejection)
	assert.Equal(t, 1, transport.submitCalls())
	assert.Equal(t, []string{"Deliberate"}, transport.submitted[0].Models)
}

func TestSubmitEmptyLadder(t *testing.T) {
	transport := &stubTransport{}

	_, _, err := SubmitCandidates(context.Background(), transport, &relaymodel.ImageRequest{Prompt: "p"}, nil, "key", nil)
	assert.True(t, IsKind(err, SubmissionRejected))
	assert.ErrorIs(t, err, ErrNoConfigurationAccepted)
	assert.Zero(t, transport.submitCalls())
}

func TestSubmitForwardsCredential(t *testing.T) {
	transport := &stubTransport{}

	_, _, err := Submit(context.Background(), transport, &relaymodel.ImageRequest{Prompt: "p"}, "secret", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"secret"}, transport.credentials)
}
