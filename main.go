package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/contributory/ai-gateway/common"
	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/contributory/ai-gateway/controller"
	"github.com/contributory/ai-gateway/middleware"
	"github.com/contributory/ai-gateway/model"
	"github.com/contributory/ai-gateway/monitor"
	"github.com/contributory/ai-gateway/relay/channel/bytez"
	"github.com/contributory/ai-gateway/relay/channel/horde"
	relaycontroller "github.com/contributory/ai-gateway/relay/controller"
	"github.com/contributory/ai-gateway/relay/util"
	"github.com/contributory/ai-gateway/router"

	"github.com/gin-gonic/gin"
)

func main() {
	common.Init()
	logger.SetupLogger()
	logger.SysLog(fmt.Sprintf("%s %s started", config.SystemName, common.Version))
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.DebugEnabled {
		logger.SysLog("running in debug mode")
	}
	util.InitHTTPClient()

	// Initialize Redis
	err := common.InitRedisClient()
	if err != nil {
		logger.FatalLog("failed to initialize Redis: " + err.Error())
	}

	observers := horde.MultiObserver{monitor.Default}
	if config.JobLogEnabled {
		if err = model.InitDB(); err != nil {
			logger.FatalLog("failed to initialize job log database: " + err.Error())
		}
		defer func() {
			if err := model.CloseDB(); err != nil {
				logger.SysError("failed to close database: " + err.Error())
			}
		}()
		observers = append(observers, model.JobLog{})
	}

	hordeClient := horde.NewClient()
	bytezClient := bytez.NewClient()
	relaycontroller.InitBackends(hordeClient, bytezClient, observers)
	controller.HordeModels = hordeClient
	controller.BytezModels = bytezClient
	controller.WarmModelCache()

	// Initialize HTTP server
	server := gin.New()
	server.Use(middleware.RelayPanicRecover())
	server.Use(middleware.RequestId())
	server.Use(middleware.CORS())
	if config.MetricEnabled {
		logger.SysLog("metric enabled, exposing /metrics")
		server.Use(middleware.Metrics(monitor.Default))
	}
	middleware.SetUpLogger(server)
	router.SetRouter(server)

	var port = os.Getenv("PORT")
	if port == "" {
		port = strconv.Itoa(*common.Port)
	}
	logger.SysLog("listening on :" + port)
	err = server.Run(":" + port)
	if err != nil {
		logger.FatalLog("failed to start HTTP server: " + err.Error())
	}
}
