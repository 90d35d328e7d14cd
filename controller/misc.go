package controller

import (
	"net/http"

	"github.com/contributory/ai-gateway/common"
	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/model"

	"github.com/gin-gonic/gin"
)

func GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"version":             common.Version,
			"start_time":          common.StartTime,
			"system_name":         config.SystemName,
			"horde_base_url":      config.HordeBaseURL,
			"horde_poll_interval": config.HordePollInterval.Milliseconds(),
			"horde_max_attempts":  config.HordeMaxPollAttempts,
			"bytez_base_url":      config.BytezBaseURL,
			"redis_enabled":       common.RedisEnabled,
			"job_log_enabled":     model.DB != nil,
		},
	})
}
