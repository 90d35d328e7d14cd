package router

import (
	"github.com/contributory/ai-gateway/controller"
	"github.com/contributory/ai-gateway/middleware"
	relayconstant "github.com/contributory/ai-gateway/relay/constant"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func SetRelayRouter(router *gin.Engine) {
	// https://platform.openai.com/docs/api-reference/images/create
	hordeRouter := router.Group(relayconstant.HordePathPrefix)
	hordeRouter.Use(middleware.HordeCredential())
	{
		hordeRouter.GET("/models", gzip.Gzip(gzip.DefaultCompression), controller.ListHordeModels)
		hordeRouter.POST("/images/generations", controller.Relay)
	}

	// https://platform.openai.com/docs/api-reference/audio/createSpeech
	bytezRouter := router.Group(relayconstant.BytezPathPrefix)
	{
		bytezRouter.GET("/models", gzip.Gzip(gzip.DefaultCompression), controller.ListBytezSpeechModels)
		bytezRouter.GET("/image-models", gzip.Gzip(gzip.DefaultCompression), controller.ListBytezImageModels)
		bytezRouter.POST("/audio/speech", middleware.BytezAuth(), controller.Relay)
		bytezRouter.POST("/images/generations", middleware.BytezAuth(), controller.Relay)
	}
}
