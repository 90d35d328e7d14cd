package horde

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/helper"
	"github.com/contributory/ai-gateway/common/logger"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/contributory/ai-gateway/relay/util"
	"github.com/pkg/errors"
)

type Submitter interface {
	Submit(ctx context.Context, cfg JobConfiguration, credential string) (JobHandle, error)
}

type StatusChecker interface {
	CheckStatus(ctx context.Context, handle JobHandle) (*StatusResponse, error)
}

// Transport is the submission and status side of AI Horde. It never retries.
type Transport interface {
	Submitter
	StatusChecker
}

type AssetFetcher interface {
	FetchAsset(ctx context.Context, url string) ([]byte, error)
}

// Client talks to the AI Horde v2 REST API.
type Client struct {
	BaseURL     string
	ClientAgent string
	// HTTPClient defaults to util.HTTPClient.
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:     config.HordeBaseURL,
		ClientAgent: config.HordeClientAgent,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return util.HTTPClient
}

func (c *Client) url(path string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + path
}

func (c *Client) Submit(ctx context.Context, cfg JobConfiguration, credential string) (JobHandle, error) {
	jsonData, err := json.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, "marshal job configuration")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/generate/async"), bytes.NewReader(jsonData))
	if err != nil {
		return "", errors.Wrap(err, "new submit request")
	}
	req.Header.Set("apikey", credential)
	req.Header.Set("Client-Agent", c.ClientAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", errors.Wrap(err, "submit job")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read submit response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := util.ErrorMessageFromBody(body)
		if message == "" {
			message = "Failed to submit task to AI Horde"
		}
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: message}
	}

	var submitResp SubmitResponse
	if err = json.Unmarshal(body, &submitResp); err != nil {
		return "", errors.Wrap(err, "decode submit response")
	}
	if submitResp.Id == "" {
		return "", errors.New("AI Horde accepted the job but returned no id")
	}
	for _, w := range submitResp.Warnings {
		logger.Warnf(ctx, "[horde] job %s warning %s: %s", submitResp.Id, w.Code, w.Message)
	}
	return JobHandle(submitResp.Id), nil
}

func (c *Client) CheckStatus(ctx context.Context, handle JobHandle) (*StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/generate/status/"+url.PathEscape(string(handle))), nil)
	if err != nil {
		return nil, errors.Wrap(err, "new status request")
	}
	req.Header.Set("Client-Agent", c.ClientAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "check status")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read status response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: util.ErrorMessageFromBody(body)}
	}
	var status StatusResponse
	if err = json.Unmarshal(body, &status); err != nil {
		return nil, errors.Wrap(err, "decode status response")
	}
	return &status, nil
}

// FetchAsset downloads a finished image. Asset URLs are pre-signed, so no
// credential is sent.
func (c *Client) FetchAsset(ctx context.Context, assetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "new asset request")
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch asset")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := util.RelayErrorHandler(resp)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: apiErr.Error.Message}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read asset")
	}
	return data, nil
}

// WorkerModels returns the image models served by at least one worker,
// busiest first.
func (c *Client) WorkerModels(ctx context.Context) ([]WorkerModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/status/models?type=image"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "new models request")
	}
	req.Header.Set("Client-Agent", c.ClientAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch models")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("failed to fetch models from AI Horde: status %d", resp.StatusCode)
	}
	var models []WorkerModel
	if err = json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, errors.Wrap(err, "decode models")
	}
	sort.SliceStable(models, func(i, j int) bool {
		return models[i].Count > models[j].Count
	})
	return models, nil
}

// Models maps WorkerModels to OpenAI model objects.
func (c *Client) Models(ctx context.Context) ([]relaymodel.OpenAIModel, error) {
	models, err := c.WorkerModels(ctx)
	if err != nil {
		return nil, err
	}
	created := helper.GetTimestamp()
	list := make([]relaymodel.OpenAIModel, 0, len(models))
	for _, m := range models {
		list = append(list, openAIModel(m.Name, created))
	}
	return list, nil
}

// ListModels is Models with the single fallback model on any failure.
func (c *Client) ListModels(ctx context.Context) []relaymodel.OpenAIModel {
	models, err := c.Models(ctx)
	if err != nil {
		logger.Errorf(ctx, "[horde] error fetching models: %s", err.Error())
		return FallbackModels()
	}
	return models
}

func FallbackModels() []relaymodel.OpenAIModel {
	return []relaymodel.OpenAIModel{openAIModel(FallbackModel, helper.GetTimestamp())}
}

func openAIModel(name string, created int64) relaymodel.OpenAIModel {
	return relaymodel.OpenAIModel{
		Id:         name,
		Object:     "model",
		Created:    created,
		OwnedBy:    OwnedBy,
		Permission: []any{},
		Root:       name,
	}
}
