package horde

import (
	"context"
	"encoding/json"

	"github.com/contributory/ai-gateway/common/logger"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
)

// BuildConfiguration merges the caller's request onto the defaults for one
// candidate. Precedence: explicit size over 512x512, caller params over
// sampler defaults and size, caller models over the candidate's models.
func BuildConfiguration(req *relaymodel.ImageRequest, candidate Candidate) JobConfiguration {
	n := req.N
	if n <= 0 {
		n = 1
	}
	cfg := JobConfiguration{
		Prompt: req.Prompt,
		Params: Params{
			SamplerName: DefaultSampler,
			CfgScale:    DefaultCfgScale,
			Steps:       DefaultSteps,
			N:           n,
		},
		NSFW:       true,
		CensorNSFW: false,
	}
	if len(candidate.Models) > 0 {
		cfg.Models = append([]string(nil), candidate.Models...)
	}

	if req.Size != "" {
		// a malformed size leaves the dimensions to AI Horde
		if width, height, ok := relaymodel.ParseSize(req.Size); ok {
			cfg.Params.Width = width
			cfg.Params.Height = height
		}
	} else {
		cfg.Params.Width = DefaultWidth
		cfg.Params.Height = DefaultHeight
	}

	applyParams(&cfg.Params, req.Params)

	if len(req.Models) > 0 {
		cfg.Models = append([]string(nil), req.Models...)
	}
	return cfg
}

func applyParams(p *Params, overrides map[string]any) {
	for key, value := range overrides {
		switch key {
		case "sampler_name":
			if s, ok := value.(string); ok {
				p.SamplerName = s
				continue
			}
		case "cfg_scale":
			if f, ok := toFloat(value); ok {
				p.CfgScale = f
				continue
			}
		case "steps", "n", "width", "height":
			if f, ok := toFloat(value); ok && f == float64(int(f)) {
				switch key {
				case "steps":
					p.Steps = int(f)
				case "n":
					p.N = int(f)
				case "width":
					p.Width = int(f)
				case "height":
					p.Height = int(f)
				}
				continue
			}
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[key] = value
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// Submit tries the candidates for req until one is accepted.
func Submit(ctx context.Context, transport Submitter, req *relaymodel.ImageRequest, credential string, observer Observer) (JobHandle, JobConfiguration, error) {
	return SubmitCandidates(ctx, transport, req, Candidates(req.Models), credential, observer)
}

// SubmitCandidates submits in ladder order. The first accepted candidate
// wins and later ones are never attempted. When all fail, the JobError
// wraps the last recorded error.
func SubmitCandidates(ctx context.Context, transport Submitter, req *relaymodel.ImageRequest, candidates []Candidate, credential string, observer Observer) (JobHandle, JobConfiguration, error) {
	if observer == nil {
		observer = NopObserver{}
	}
	var lastErr error
	for _, candidate := range candidates {
		cfg := BuildConfiguration(req, candidate)
		handle, err := transport.Submit(ctx, cfg, credential)
		observer.SubmissionAttempt(ctx, candidate, err)
		if err != nil {
			logger.Warnf(ctx, "[horde] candidate %s rejected: %s", candidate.Name, err.Error())
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		logger.Infof(ctx, "[horde] job %s accepted with candidate %s", handle, candidate.Name)
		return handle, cfg, nil
	}
	if lastErr == nil {
		lastErr = ErrNoConfigurationAccepted
	}
	return "", JobConfiguration{}, &JobError{Kind: SubmissionRejected, Err: lastErr}
}
