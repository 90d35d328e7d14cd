package controller

import (
	"io"
	"net/http"

	"github.com/contributory/ai-gateway/common"
	"github.com/contributory/ai-gateway/common/ctxkey"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/contributory/ai-gateway/relay/channel/bytez"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/contributory/ai-gateway/relay/util"
	"github.com/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RelayBytezSpeechHelper serves POST /bytez/v1/audio/speech and streams the
// produced audio back unchanged.
func RelayBytezSpeechHelper(c *gin.Context) *relaymodel.ErrorWithStatusCode {
	ctx := c.Request.Context()
	var ttsRequest relaymodel.SpeechRequest
	if err := common.UnmarshalBodyReusable(c, &ttsRequest); err != nil {
		return util.ErrorWrapper(err, "invalid_json", http.StatusBadRequest)
	}
	text := ttsRequest.GetInput()
	if text == "" {
		return util.ErrorWrapper(errors.New("Missing 'input' parameter"), "invalid_speech_request", http.StatusBadRequest)
	}
	model := ttsRequest.Model
	if model == "" {
		model = bytez.DefaultSpeechModel
	}
	c.Set(ctxkey.RequestModel, model)

	speech, err := BytezRunner.GenerateSpeech(ctx, text, model, c.GetString(ctxkey.Credential))
	if err != nil {
		logger.Errorf(ctx, "bytez speech generation failed: %s", err.Error())
		return util.ErrorWrapper(err, "speech_generation_failed", http.StatusInternalServerError)
	}
	defer speech.Body.Close()

	c.Writer.Header().Set("Content-Type", speech.ContentType)
	c.Writer.WriteHeader(http.StatusOK)
	if _, err = io.Copy(c.Writer, speech.Body); err != nil {
		// headers are gone, nothing left to report to the caller
		logger.Errorf(ctx, "streaming speech failed: %s", err.Error())
	}
	return nil
}
