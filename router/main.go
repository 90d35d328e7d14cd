package router

import (
	"fmt"

	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/contributory/ai-gateway/controller"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetRouter(router *gin.Engine) {
	SetApiRouter(router)
	SetRelayRouter(router)

	if config.SwaggerJSONURL != "" {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL(config.SwaggerJSONURL),
		))
		logger.SysLog(fmt.Sprintf("Swagger UI enabled at /swagger/index.html (doc: %s)", config.SwaggerJSONURL))
	}

	router.NoRoute(controller.RelayNotFound)
}
