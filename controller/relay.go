package controller

import (
	"fmt"
	"net/http"

	"github.com/contributory/ai-gateway/common"
	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/ctxkey"
	"github.com/contributory/ai-gateway/common/logger"
	relayconstant "github.com/contributory/ai-gateway/relay/constant"
	controller "github.com/contributory/ai-gateway/relay/controller"
	"github.com/contributory/ai-gateway/relay/model"
	"github.com/contributory/ai-gateway/relay/util"

	"github.com/gin-gonic/gin"
)

func relayHelper(c *gin.Context, relayMode int, channelType int) *model.ErrorWithStatusCode {
	switch {
	case relayMode == relayconstant.RelayModeImagesGenerations && channelType == common.ChannelTypeHorde:
		return controller.RelayHordeImageHelper(c)
	case relayMode == relayconstant.RelayModeImagesGenerations && channelType == common.ChannelTypeBytez:
		return controller.RelayBytezImageHelper(c)
	case relayMode == relayconstant.RelayModeAudioSpeech && channelType == common.ChannelTypeBytez:
		return controller.RelayBytezSpeechHelper(c)
	}
	return util.ErrorWrapper(fmt.Errorf("unsupported path %s", c.Request.URL.Path), "invalid_request", http.StatusNotFound)
}

func Relay(c *gin.Context) {
	ctx := c.Request.Context()
	relayMode := relayconstant.Path2RelayMode(c.Request.URL.Path)
	channelType := relayconstant.Path2ChannelType(c.Request.URL.Path)
	c.Set(ctxkey.Channel, channelType)

	logger.Infof(ctx, "relay start: path=%s, channel=%s", c.Request.URL.Path, common.ChannelTypeNames[channelType])
	if config.DebugEnabled {
		requestBody, _ := common.GetRequestBody(c)
		logger.Debugf(ctx, "request body: %s", string(requestBody))
	}

	bizErr := relayHelper(c, relayMode, channelType)
	if bizErr == nil {
		return
	}
	c.JSON(bizErr.StatusCode, gin.H{
		"error": gin.H{
			"message": bizErr.Error.Message,
			"type":    bizErr.Error.Type,
			"param":   bizErr.Error.Param,
			"code":    bizErr.Error.Code,
		},
	})
}

func RelayNotFound(c *gin.Context) {
	err := model.Error{
		Message: fmt.Sprintf("Invalid URL (%s %s)", c.Request.Method, c.Request.URL.Path),
		Type:    "invalid_request_error",
		Param:   "",
		Code:    "",
	}
	c.JSON(http.StatusNotFound, gin.H{
		"error": err,
	})
}
