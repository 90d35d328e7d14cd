package bytez

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/helper"
	"github.com/contributory/ai-gateway/common/logger"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/contributory/ai-gateway/relay/util"
	"github.com/pkg/errors"
)

var (
	ErrNoOutput    = errors.New("No output URL returned from Bytez")
	ErrAudioStream = errors.New("Failed to fetch audio stream from Bytez output URL")
)

// Client talks to the synchronous Bytez model API.
type Client struct {
	BaseURL string
	// APIKey is the server key used for catalogue lookups only.
	APIKey     string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: config.BytezBaseURL,
		APIKey:  config.BytezAPIKey,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return util.HTTPClient
}

func bearer(key string) string {
	if strings.HasPrefix(key, "Bearer ") {
		return key
	}
	return "Bearer " + key
}

// run submits text to model and returns the output URL.
func (c *Client) run(ctx context.Context, model string, text string, credential string) (string, error) {
	jsonData, err := json.Marshal(RunRequest{Text: text})
	if err != nil {
		return "", errors.Wrap(err, "marshal run request")
	}
	fullRequestURL := strings.TrimSuffix(c.BaseURL, "/") + "/" + strings.TrimPrefix(model, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullRequestURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", errors.Wrap(err, "new run request")
	}
	req.Header.Set("Authorization", bearer(credential))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", errors.Wrap(err, "run model")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read run response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("Bytez API Error: %d - %s", resp.StatusCode, string(body))
	}

	var runResp RunResponse
	if err = json.Unmarshal(body, &runResp); err != nil {
		return "", errors.Wrap(err, "decode run response")
	}
	if runResp.Error != nil && runResp.Error != "" {
		return "", errors.Errorf("Bytez API Error: %v", runResp.Error)
	}
	if runResp.Output == "" {
		return "", ErrNoOutput
	}
	return runResp.Output, nil
}

// GenerateSpeech runs a text-to-speech model and opens the produced audio.
func (c *Client) GenerateSpeech(ctx context.Context, text string, model string, credential string) (*Speech, error) {
	if model == "" {
		model = DefaultSpeechModel
	}
	output, err := c.run(ctx, model, text, credential)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, output, nil)
	if err != nil {
		return nil, errors.Wrap(err, "new audio request")
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrAudioStream, err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, errors.Wrapf(ErrAudioStream, "status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = DefaultAudioType
	}
	return &Speech{Body: resp.Body, ContentType: contentType}, nil
}

// GenerateImage runs a text-to-image model. Bytez hosts the result, so the
// response always carries a URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string, model string, credential string) (*relaymodel.ImageResponse, error) {
	output, err := c.run(ctx, model, prompt, credential)
	if err != nil {
		return nil, err
	}
	return &relaymodel.ImageResponse{
		Created: helper.GetTimestamp(),
		Data: []relaymodel.ImageData{
			{Url: output, RevisedPrompt: prompt},
		},
	}, nil
}

// ListModels returns the catalogue for task. Failures are logged and give
// an empty list.
func (c *Client) ListModels(ctx context.Context, task string) []relaymodel.OpenAIModel {
	models, err := c.Models(ctx, task)
	if err != nil {
		logger.Errorf(ctx, "[bytez] failed to fetch %s models: %s", task, err.Error())
		return []relaymodel.OpenAIModel{}
	}
	return models
}

// Models fetches the catalogue for task using the server key.
func (c *Client) Models(ctx context.Context, task string) ([]relaymodel.OpenAIModel, error) {
	fullRequestURL := fmt.Sprintf("%s/list/models?task=%s", strings.TrimSuffix(c.BaseURL, "/"), url.QueryEscape(task))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullRequestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "new list request")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", bearer(c.APIKey))
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "list models")
	}
	defer resp.Body.Close()

	var listResp ListModelsResponse
	if err = json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, errors.Wrapf(err, "decode list response (status %d)", resp.StatusCode)
	}
	if listResp.Error != nil && listResp.Error != "" {
		return nil, errors.Errorf("Failed to fetch models from Bytez: %v", listResp.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("Failed to fetch models from Bytez: status %d", resp.StatusCode)
	}

	created := helper.GetTimestamp()
	models := make([]relaymodel.OpenAIModel, 0, len(listResp.Output))
	for _, m := range listResp.Output {
		models = append(models, relaymodel.OpenAIModel{
			Id:         m.ModelId,
			Object:     "model",
			Created:    created,
			OwnedBy:    OwnedBy,
			Permission: []any{},
			Root:       m.ModelId,
		})
	}
	return models, nil
}
