package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/logger"
	relaymodel "github.com/contributory/ai-gateway/relay/model"
)

// GeneralErrorResponse covers the error envelopes seen across upstreams.
type GeneralErrorResponse struct {
	Error    relaymodel.Error `json:"error"`
	Message  string           `json:"message"`
	Msg      string           `json:"msg"`
	Err      string           `json:"err"`
	ErrorMsg string           `json:"error_msg"`
	Header   struct {
		Message string `json:"message"`
	} `json:"header"`
	Response struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"response"`
}

func (e GeneralErrorResponse) ToMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != "" {
		return e.Err
	}
	if e.ErrorMsg != "" {
		return e.ErrorMsg
	}
	if e.Header.Message != "" {
		return e.Header.Message
	}
	if e.Response.Error.Message != "" {
		return e.Response.Error.Message
	}
	return ""
}

// ErrorMessageFromBody extracts the best message from an upstream error body.
func ErrorMessageFromBody(body []byte) string {
	var errResponse GeneralErrorResponse
	if err := json.Unmarshal(body, &errResponse); err != nil {
		return ""
	}
	return errResponse.ToMessage()
}

// RelayErrorHandler turns a non-2xx upstream response into an error payload
// and closes the body.
func RelayErrorHandler(resp *http.Response) (ErrorWithStatusCode *relaymodel.ErrorWithStatusCode) {
	ErrorWithStatusCode = &relaymodel.ErrorWithStatusCode{
		StatusCode: resp.StatusCode,
		Error: relaymodel.Error{
			Type:  "upstream_error",
			Code:  "bad_response_status_code",
			Param: strconv.Itoa(resp.StatusCode),
		},
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	if config.DebugEnabled {
		logger.SysLog(fmt.Sprintf("error happened, status code: %d, response: \n%s", resp.StatusCode, string(responseBody)))
	}

	var errResponse GeneralErrorResponse
	if err = json.Unmarshal(responseBody, &errResponse); err == nil {
		if errResponse.Error.Message != "" {
			ErrorWithStatusCode.Error = errResponse.Error
		} else {
			ErrorWithStatusCode.Error.Message = errResponse.ToMessage()
		}
	}
	if ErrorWithStatusCode.Error.Message == "" {
		switch resp.StatusCode {
		case http.StatusGatewayTimeout:
			ErrorWithStatusCode.Error.Message = "gateway timeout (504): upstream did not respond in time"
		case http.StatusBadGateway:
			ErrorWithStatusCode.Error.Message = "bad gateway (502): upstream returned an invalid response"
		case http.StatusServiceUnavailable:
			ErrorWithStatusCode.Error.Message = "service unavailable (503): upstream cannot handle the request right now"
		case http.StatusTooManyRequests:
			ErrorWithStatusCode.Error.Message = "too many requests (429): upstream rate limit reached"
		case http.StatusUnauthorized:
			ErrorWithStatusCode.Error.Message = "unauthorized (401): invalid or expired API key"
		case http.StatusForbidden:
			ErrorWithStatusCode.Error.Message = "forbidden (403): no access to this resource or model"
		case http.StatusNotFound:
			ErrorWithStatusCode.Error.Message = "not found (404): endpoint or model does not exist"
		default:
			ErrorWithStatusCode.Error.Message = fmt.Sprintf("upstream error (status code: %d)", resp.StatusCode)
		}
	}
	return
}

// ErrorWrapper builds a gateway-side error payload.
func ErrorWrapper(err error, code string, statusCode int) *relaymodel.ErrorWithStatusCode {
	return &relaymodel.ErrorWithStatusCode{
		Error: relaymodel.Error{
			Message: err.Error(),
			Type:    "api_error",
			Code:    code,
		},
		StatusCode: statusCode,
	}
}
