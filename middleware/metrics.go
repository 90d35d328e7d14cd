package middleware

import (
	"time"

	"github.com/contributory/ai-gateway/monitor"
	"github.com/gin-gonic/gin"
)

// Metrics records latency and status of every request on collector.
func Metrics(collector *monitor.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		collector.IncrementConcurrent()
		defer collector.DecrementConcurrent()

		c.Next()

		collector.RecordRequest(c.FullPath(), c.Writer.Status(), time.Since(startTime))
	}
}
