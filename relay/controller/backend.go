package controller

import (
	"context"

	"github.com/contributory/ai-gateway/relay/channel/bytez"
	"github.com/contributory/ai-gateway/relay/channel/horde"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
)

// ImageJobRunner runs one AI Horde job to its terminal outcome.
type ImageJobRunner interface {
	GenerateJob(ctx context.Context, req *relaymodel.ImageRequest, credential string) (*horde.GenerationResult, error)
}

type BytezBackend interface {
	GenerateSpeech(ctx context.Context, text string, model string, credential string) (*bytez.Speech, error)
	GenerateImage(ctx context.Context, prompt string, model string, credential string) (*relaymodel.ImageResponse, error)
}

var (
	HordeRunner ImageJobRunner
	BytezRunner BytezBackend
)

// InitBackends wires the production clients. observer may be nil.
func InitBackends(hordeClient *horde.Client, bytezClient *bytez.Client, observer horde.Observer) {
	HordeRunner = horde.NewOrchestrator(hordeClient, observer)
	BytezRunner = bytezClient
}
