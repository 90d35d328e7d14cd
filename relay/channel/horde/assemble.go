package horde

import (
	"context"
	"encoding/base64"
	"time"

	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/pkg/errors"
)

// GenerationResult is the OpenAI image response for one finished job.
type GenerationResult struct {
	Format string `json:"-"`
	relaymodel.ImageResponse
}

// NormalizeFormat defaults an empty response_format to url.
func NormalizeFormat(format string) (string, error) {
	switch format {
	case "":
		return ResponseFormatURL, nil
	case ResponseFormatURL, ResponseFormatB64JSON:
		return format, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", format)
}

// Assemble converts generations into the requested encoding. Embedded
// assets are fetched one at a time in order, and any failure fails the
// whole batch.
func Assemble(ctx context.Context, fetcher AssetFetcher, generations []Generation, format string, prompt string, now time.Time) (*GenerationResult, error) {
	data := make([]relaymodel.ImageData, 0, len(generations))
	switch format {
	case ResponseFormatURL:
		for _, g := range generations {
			data = append(data, relaymodel.ImageData{Url: g.Img, RevisedPrompt: prompt})
		}
	case ResponseFormatB64JSON:
		for i, g := range generations {
			payload, err := fetcher.FetchAsset(ctx, g.Img)
			if err != nil {
				return nil, &JobError{Kind: AssetFetchFailed, Err: errors.Wrapf(err, "generation %d", i)}
			}
			data = append(data, relaymodel.ImageData{
				B64Json:       base64.StdEncoding.EncodeToString(payload),
				RevisedPrompt: prompt,
			})
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return &GenerationResult{
		Format: format,
		ImageResponse: relaymodel.ImageResponse{
			Created: now.Unix(),
			Data:    data,
		},
	}, nil
}
