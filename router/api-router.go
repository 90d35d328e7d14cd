package router

import (
	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/controller"
	"github.com/contributory/ai-gateway/monitor"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine) {
	apiRouter := router.Group("/api")
	apiRouter.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		apiRouter.GET("/status", controller.GetStatus)

		hordeJobRoute := apiRouter.Group("/horde/jobs")
		{
			hordeJobRoute.GET("", controller.GetHordeJobs)
			hordeJobRoute.GET("/:id", controller.GetHordeJob)
		}
	}
	if config.MetricEnabled {
		router.GET("/metrics", gin.WrapH(monitor.Default.Handler()))
	}
}
