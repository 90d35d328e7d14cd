package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/contributory/ai-gateway/common/helper"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/gin-gonic/gin"
)

func RelayPanicRecover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.SysError(fmt.Sprintf("panic detected: %v", err))
				logger.SysError(fmt.Sprintf("stacktrace from panic: %s", string(debug.Stack())))
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"message": helper.MessageWithRequestId(fmt.Sprintf("Panic detected, error: %v", err), c.GetString(logger.RequestIdKey)),
						"type":    "gateway_panic",
					},
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
