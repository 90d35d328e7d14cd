package controller

import (
	"net/http"

	"github.com/contributory/ai-gateway/common/ctxkey"
	"github.com/contributory/ai-gateway/common/logger"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/contributory/ai-gateway/relay/util"
	"github.com/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RelayHordeImageHelper serves POST /ai-horde/v1/images/generations.
func RelayHordeImageHelper(c *gin.Context) *relaymodel.ErrorWithStatusCode {
	ctx := c.Request.Context()
	imageRequest, err := getImageRequest(c)
	if err != nil {
		logger.Errorf(ctx, "getImageRequest failed: %s", err.Error())
		return util.ErrorWrapper(err, "invalid_image_request", http.StatusBadRequest)
	}
	c.Set(ctxkey.RequestModel, imageRequest.Model)

	result, err := HordeRunner.GenerateJob(ctx, imageRequest, c.GetString(ctxkey.Credential))
	if err != nil {
		logger.Errorf(ctx, "horde image generation failed: %s", err.Error())
		return jobErrorWrapper(err)
	}
	c.JSON(http.StatusOK, result)
	return nil
}

// RelayBytezImageHelper serves POST /bytez/v1/images/generations.
func RelayBytezImageHelper(c *gin.Context) *relaymodel.ErrorWithStatusCode {
	ctx := c.Request.Context()
	imageRequest, err := getImageRequest(c)
	if err != nil {
		return util.ErrorWrapper(err, "invalid_image_request", http.StatusBadRequest)
	}
	if imageRequest.Model == "" {
		return util.ErrorWrapper(errors.New("Missing 'model' parameter"), "invalid_image_request", http.StatusBadRequest)
	}
	c.Set(ctxkey.RequestModel, imageRequest.Model)

	result, err := BytezRunner.GenerateImage(ctx, imageRequest.Prompt, imageRequest.Model, c.GetString(ctxkey.Credential))
	if err != nil {
		logger.Errorf(ctx, "bytez image generation failed: %s", err.Error())
		return util.ErrorWrapper(err, "image_generation_failed", http.StatusInternalServerError)
	}
	c.JSON(http.StatusOK, result)
	return nil
}
