package controller

import (
	"net/http"
	"strconv"

	"github.com/contributory/ai-gateway/model"

	"github.com/gin-gonic/gin"
)

// GetHordeJobs lists recent AI Horde jobs from the job log.
func GetHordeJobs(c *gin.Context) {
	if model.DB == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "job log is disabled",
		})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	jobs, err := model.GetRecentJobs(c.Query("status"), limit)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    jobs,
	})
}

func GetHordeJob(c *gin.Context) {
	if model.DB == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "job log is disabled",
		})
		return
	}
	job, err := model.GetJobByJobId(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    job,
	})
}
