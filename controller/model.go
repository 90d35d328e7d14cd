package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/contributory/ai-gateway/common"
	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/contributory/ai-gateway/relay/channel/bytez"
	"github.com/contributory/ai-gateway/relay/channel/horde"
	relaymodel "github.com/contributory/ai-gateway/relay/model"

	"github.com/gin-gonic/gin"
)

// https://platform.openai.com/docs/api-reference/models/list

type HordeCatalogue interface {
	Models(ctx context.Context) ([]relaymodel.OpenAIModel, error)
}

type BytezCatalogue interface {
	Models(ctx context.Context, task string) ([]relaymodel.OpenAIModel, error)
}

var (
	HordeModels HordeCatalogue
	BytezModels BytezCatalogue
)

const (
	hordeModelsCacheKey = "models:ai-horde:image"
	bytezModelsCacheKey = "models:bytez:"
)

func cacheEnabled() bool {
	return common.RedisEnabled && config.ModelCacheSeconds > 0
}

// cachedModels serves key from Redis when possible. Only successful,
// non-empty catalogues are cached so a transient failure is not pinned.
func cachedModels(ctx context.Context, key string, fetch func(ctx context.Context) ([]relaymodel.OpenAIModel, error)) ([]relaymodel.OpenAIModel, error) {
	if cacheEnabled() {
		if raw, err := common.RedisGet(ctx, key); err == nil {
			var models []relaymodel.OpenAIModel
			if err = json.Unmarshal([]byte(raw), &models); err == nil {
				return models, nil
			}
			logger.Warnf(ctx, "corrupt model cache %s: %s", key, err.Error())
			_ = common.RedisDel(ctx, key)
		}
	}
	models, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if cacheEnabled() && len(models) > 0 {
		if raw, err := json.Marshal(models); err == nil {
			if err = common.RedisSet(ctx, key, string(raw), time.Duration(config.ModelCacheSeconds)*time.Second); err != nil {
				logger.Warnf(ctx, "failed to cache models %s: %s", key, err.Error())
			}
		}
	}
	return models, nil
}

func hordeModels(ctx context.Context) []relaymodel.OpenAIModel {
	models, err := cachedModels(ctx, hordeModelsCacheKey, HordeModels.Models)
	if err != nil {
		logger.Errorf(ctx, "[horde] error fetching models: %s", err.Error())
		return horde.FallbackModels()
	}
	return models
}

func bytezModels(ctx context.Context, task string) []relaymodel.OpenAIModel {
	models, err := cachedModels(ctx, bytezModelsCacheKey+task, func(ctx context.Context) ([]relaymodel.OpenAIModel, error) {
		return BytezModels.Models(ctx, task)
	})
	if err != nil {
		logger.Errorf(ctx, "[bytez] failed to fetch %s models: %s", task, err.Error())
		return []relaymodel.OpenAIModel{}
	}
	return models
}

func ListHordeModels(c *gin.Context) {
	c.JSON(http.StatusOK, relaymodel.NewModelList(hordeModels(c.Request.Context())))
}

func ListBytezSpeechModels(c *gin.Context) {
	c.JSON(http.StatusOK, relaymodel.NewModelList(bytezModels(c.Request.Context(), bytez.TaskTextToSpeech)))
}

func ListBytezImageModels(c *gin.Context) {
	c.JSON(http.StatusOK, relaymodel.NewModelList(bytezModels(c.Request.Context(), bytez.TaskTextToImage)))
}

// WarmModelCache fills the Redis catalogue cache in the background.
func WarmModelCache() {
	if !cacheEnabled() {
		return
	}
	common.SafeGoroutine(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		models := hordeModels(ctx)
		speech := bytezModels(ctx, bytez.TaskTextToSpeech)
		images := bytezModels(ctx, bytez.TaskTextToImage)
		logger.SysLog(fmt.Sprintf("model cache warmed: %d horde, %d bytez speech, %d bytez image", len(models), len(speech), len(images)))
	})
}
