package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contributory/ai-gateway/common/ctxkey"
	"github.com/contributory/ai-gateway/relay/channel/horde"
	relaycontroller "github.com/contributory/ai-gateway/relay/controller"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubHordeCatalogue struct {
	models []relaymodel.OpenAIModel
	err    error
}

func (s stubHordeCatalogue) Models(context.Context) ([]relaymodel.OpenAIModel, error) {
	return s.models, s.err
}

type stubBytezCatalogue struct {
	tasks []string
	err   error
}

func (s *stubBytezCatalogue) Models(_ context.Context, task string) ([]relaymodel.OpenAIModel, error) {
	s.tasks = append(s.tasks, task)
	if s.err != nil {
		return nil, s.err
	}
	return []relaymodel.OpenAIModel{{Id: "suno/bark-small", Object: "model", OwnedBy: "bytez"}}, nil
}

type failingRunner struct{}

func (failingRunner) GenerateJob(context.Context, *relaymodel.ImageRequest, string) (*horde.GenerationResult, error) {
	return nil, &horde.JobError{Kind: horde.ProcessingImpossible, Handle: "job-1"}
}

func get(handler gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.GET(path, handler)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) relaymodel.ModelList {
	var list relaymodel.ModelList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func TestListHordeModels(t *testing.T) {
	HordeModels = stubHordeCatalogue{models: []relaymodel.OpenAIModel{{Id: "Deliberate"}, {Id: "stable_diffusion"}}}
	list := decodeList(t, get(ListHordeModels, "/ai-horde/v1/models"))
	assert.Equal(t, "list", list.Object)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "Deliberate", list.Data[0].Id)

	HordeModels = stubHordeCatalogue{err: errors.New("down")}
	list = decodeList(t, get(ListHordeModels, "/ai-horde/v1/models"))
	require.Len(t, list.Data, 1)
	assert.Equal(t, horde.FallbackModel, list.Data[0].Id)
	assert.Equal(t, horde.OwnedBy, list.Data[0].OwnedBy)
}

func TestListBytezModels(t *testing.T) {
	stub := &stubBytezCatalogue{}
	BytezModels = stub

	list := decodeList(t, get(ListBytezSpeechModels, "/bytez/v1/models"))
	require.Len(t, list.Data, 1)
	list = decodeList(t, get(ListBytezImageModels, "/bytez/v1/image-models"))
	require.Len(t, list.Data, 1)
	assert.Equal(t, []string{"text-to-speech", "text-to-image"}, stub.tasks)

	BytezModels = &stubBytezCatalogue{err: errors.New("down")}
	rec := get(ListBytezSpeechModels, "/bytez/v1/models")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"object":"list","data":[]}`, rec.Body.String())
}

func TestRelayWritesOpenAIError(t *testing.T) {
	relaycontroller.HordeRunner = failingRunner{}
	engine := gin.New()
	engine.POST("/ai-horde/v1/images/generations", func(c *gin.Context) {
		c.Set(ctxkey.Credential, "")
		c.Next()
	}, Relay)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai-horde/v1/images/generations", strings.NewReader(`{"prompt":"A red balloon"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Error relaymodel.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AI Horde cannot fulfill this request (no matching workers)", body.Error.Message)
	assert.Equal(t, "api_error", body.Error.Type)
	assert.Equal(t, "processing_impossible", body.Error.Code)
}

func TestRelayUnknownPath(t *testing.T) {
	engine := gin.New()
	engine.POST("/ai-horde/v1/audio/speech", Relay)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ai-horde/v1/audio/speech", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRelayNotFound(t *testing.T) {
	engine := gin.New()
	engine.NoRoute(RelayNotFound)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/chat/completions", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid URL (GET /v1/chat/completions)")
}

func TestGetStatus(t *testing.T) {
	rec := get(GetStatus, "/api/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Contains(t, body.Data, "version")
	assert.Equal(t, false, body.Data["job_log_enabled"])
}

func TestGetHordeJobsDisabled(t *testing.T) {
	rec := get(GetHordeJobs, "/api/horde/jobs")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "job log is disabled")
}
