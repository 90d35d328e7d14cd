package middleware

import (
	"github.com/contributory/ai-gateway/common/helper"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/gin-gonic/gin"
)

func abortWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"message": helper.MessageWithRequestId(message, c.GetString(logger.RequestIdKey)),
			"type":    "api_error",
		},
	})
	c.Abort()
	logger.Error(c.Request.Context(), message)
}
