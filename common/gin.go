package common

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const KeyRequestBody = "key_request_body"

// MaxRequestBodySize caps JSON and form bodies at 10 MiB.
const MaxRequestBodySize = 10 << 20

func GetRequestBody(c *gin.Context) ([]byte, error) {
	if cached, ok := c.Get(KeyRequestBody); ok && cached != nil {
		return cached.([]byte), nil
	}
	requestBody, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxRequestBodySize+1))
	if err != nil {
		return nil, err
	}
	_ = c.Request.Body.Close()
	if len(requestBody) > MaxRequestBodySize {
		return nil, fmt.Errorf("request body exceeds %d bytes", MaxRequestBodySize)
	}
	c.Set(KeyRequestBody, requestBody)
	return requestBody, nil
}

// UnmarshalBodyReusable binds the body into v and leaves it readable for
// later handlers.
func UnmarshalBodyReusable(c *gin.Context, v any) error {
	requestBody, err := GetRequestBody(c)
	if err != nil {
		return err
	}
	contentType := c.Request.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		return c.ShouldBindJSON(v)
	} else if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		return c.ShouldBindWith(v, binding.Form)
	}

	// no content type: JSON first, then form
	c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
	if err := c.ShouldBindJSON(v); err == nil {
		return nil
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
	return c.ShouldBindWith(v, binding.Form)
}
