package util

import (
	"net/http"
	"time"

	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/contributory/ai-gateway/service"
)

// HTTPClient is shared by every upstream adaptor.
var HTTPClient = &http.Client{}

// InitHTTPClient rebuilds HTTPClient from the loaded relay settings.
func InitHTTPClient() {
	client, err := service.NewProxyHttpClient(config.RelayProxy)
	if err != nil {
		logger.SysError("failed to build relay proxy client, using direct connection: " + err.Error())
		client = &http.Client{}
		if config.RelayTimeout > 0 {
			client.Timeout = time.Duration(config.RelayTimeout) * time.Second
		}
	}
	HTTPClient = client
}
