package middleware

import (
	"net/http"
	"strings"

	"github.com/contributory/ai-gateway/common/ctxkey"
	"github.com/gin-gonic/gin"
)

// HordeCredential forwards Authorization, else apikey. A missing key is not
// an error: AI Horde serves anonymous requests with the public key.
func HordeCredential() func(c *gin.Context) {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Request.Header.Get("Authorization"))
		if key == "" {
			key = strings.TrimSpace(c.Request.Header.Get("apikey"))
		}
		c.Set(ctxkey.Credential, key)
		c.Next()
	}
}

// BytezAuth requires an Authorization header and forwards it as is.
func BytezAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Request.Header.Get("Authorization"))
		if key == "" {
			abortWithMessage(c, http.StatusUnauthorized, "Missing Authorization header")
			return
		}
		c.Set(ctxkey.Credential, key)
		c.Next()
	}
}
