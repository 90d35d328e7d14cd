package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestRelayErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		code    any
	}{
		{"openai envelope", 400, `{"error":{"message":"bad prompt","type":"invalid_request_error","code":"x"}}`, "bad prompt", "x"},
		{"plain message", 400, `{"message":"Invalid model"}`, "Invalid model", "bad_response_status_code"},
		{"err field", 500, `{"err":"boom"}`, "boom", "bad_response_status_code"},
		{"non json", 503, `<html>down</html>`, "service unavailable (503): upstream cannot handle the request right now", "bad_response_status_code"},
		{"empty body", 418, ``, "upstream error (status code: 418)", "bad_response_status_code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelayErrorHandler(response(tt.status, tt.body))
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.message, got.Error.Message)
			assert.Equal(t, tt.code, got.Error.Code)
		})
	}
}

func TestErrorMessageFromBody(t *testing.T) {
	assert.Equal(t, "nested", ErrorMessageFromBody([]byte(`{"response":{"error":{"message":"nested"}}}`)))
	assert.Equal(t, "", ErrorMessageFromBody([]byte(`not json`)))
}

func TestErrorWrapper(t *testing.T) {
	got := ErrorWrapper(errors.New("boom"), "submission_rejected", http.StatusInternalServerError)
	assert.Equal(t, "boom", got.Error.Message)
	assert.Equal(t, "api_error", got.Error.Type)
	assert.Equal(t, "submission_rejected", got.Error.Code)
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
}
