package horde

import (
	"context"
	"time"

	"github.com/contributory/ai-gateway/common/helper"
	"github.com/contributory/ai-gateway/common/logger"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/pkg/errors"
)

// Orchestrator drives one image job through submit, poll and assemble.
// It keeps no per-job state, so one value serves all requests.
type Orchestrator struct {
	Transport Transport
	Fetcher   AssetFetcher
	Poller    *Poller
	Observer  Observer
	Now       func() time.Time
}

func NewOrchestrator(client *Client, observer Observer) *Orchestrator {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Orchestrator{
		Transport: client,
		Fetcher:   client,
		Poller:    NewPoller(client),
		Observer:  observer,
		Now:       time.Now,
	}
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) observer() Observer {
	if o.Observer != nil {
		return o.Observer
	}
	return NopObserver{}
}

// GenerateJob runs req to exactly one terminal outcome. credential is the
// raw Authorization or apikey value; a blank one uses the anonymous key.
func (o *Orchestrator) GenerateJob(ctx context.Context, req *relaymodel.ImageRequest, credential string) (*GenerationResult, error) {
	format, err := NormalizeFormat(req.ResponseFormat)
	if err != nil {
		return nil, err
	}
	apiKey := ResolveAPIKey(credential)
	if IsPublicKey(apiKey) {
		logger.Info(ctx, "[horde] generating with public key (slow)")
	} else {
		logger.Infof(ctx, "[horde] generating with private key %s (fast)", helper.MaskKey(apiKey))
	}

	observer := o.observer()
	start := o.now()
	handle, cfg, err := Submit(ctx, o.Transport, req, apiKey, observer)
	if err != nil {
		observer.JobFinished(ctx, "", err, o.now().Sub(start))
		return nil, err
	}
	observer.JobSubmitted(ctx, handle, cfg)

	result, err := o.finish(ctx, handle, req.Prompt, format)
	observer.JobFinished(ctx, handle, err, o.now().Sub(start))
	return result, err
}

func (o *Orchestrator) finish(ctx context.Context, handle JobHandle, prompt string, format string) (*GenerationResult, error) {
	poller := o.Poller
	if poller == nil {
		poller = NewPoller(o.Transport)
	}
	generations, err := poller.Poll(ctx, handle)
	if err != nil {
		return nil, err
	}
	result, err := Assemble(ctx, o.Fetcher, generations, format, prompt, o.now())
	if err != nil {
		var jobErr *JobError
		if errors.As(err, &jobErr) {
			jobErr.Handle = handle
		}
		return nil, err
	}
	return result, nil
}
