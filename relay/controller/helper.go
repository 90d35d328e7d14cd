package controller

import (
	"context"
	"net/http"

	"github.com/contributory/ai-gateway/common"
	"github.com/contributory/ai-gateway/relay/channel/horde"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
	"github.com/contributory/ai-gateway/relay/util"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/gin-gonic/gin"
)

func getImageRequest(c *gin.Context) (*relaymodel.ImageRequest, error) {
	imageRequest := &relaymodel.ImageRequest{}
	err := common.UnmarshalBodyReusable(c, imageRequest)
	if err == nil {
		return imageRequest, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}
	for _, fieldErr := range validationErrors {
		switch fieldErr.Field() {
		case "Prompt":
			return nil, errors.New("Missing 'prompt' parameter")
		case "Size":
			return nil, errors.Errorf("invalid size %q, expected WIDTHxHEIGHT", fieldErr.Value())
		case "ResponseFormat":
			return nil, errors.Errorf("unsupported response_format %q, expected url or b64_json", fieldErr.Value())
		case "N":
			return nil, errors.New("n must be between 1 and 20")
		}
	}
	return nil, err
}

// jobErrorWrapper maps a GenerateJob failure onto the response error.
func jobErrorWrapper(err error) *relaymodel.ErrorWithStatusCode {
	if errors.Is(err, horde.ErrUnsupportedFormat) {
		return util.ErrorWrapper(err, "invalid_response_format", http.StatusBadRequest)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return util.ErrorWrapper(err, "request_canceled", http.StatusRequestTimeout)
	}
	if kind, ok := horde.KindOf(err); ok {
		return util.ErrorWrapper(err, string(kind), http.StatusInternalServerError)
	}
	return util.ErrorWrapper(err, "image_generation_failed", http.StatusInternalServerError)
}
