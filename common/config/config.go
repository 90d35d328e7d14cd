package config

import (
	"os"
	"strings"
	"time"

	"github.com/contributory/ai-gateway/common/env"
	"github.com/google/uuid"
)

var SystemName = "AI Gateway"

var ServiceName = env.String("SERVICE_NAME", "ai-gateway")
var InstanceId = env.String("INSTANCE_ID", defaultInstanceId())

var DebugEnabled = strings.ToLower(os.Getenv("DEBUG")) == "true"

var RelayTimeout = env.Int("RELAY_TIMEOUT", 0) // unit is second
var RelayProxy = env.String("RELAY_PROXY", "")

// AI Horde
var HordeBaseURL = env.String("HORDE_BASE_URL", "https://stablehorde.net/api/v2")
var HordeClientAgent = env.String("HORDE_CLIENT_AGENT", "ai-gateway:1.0:admin")
var HordePublicAPIKey = env.String("HORDE_PUBLIC_API_KEY", "0000000000")
var HordePollInterval = env.Duration("HORDE_POLL_INTERVAL", 3000*time.Millisecond)
var HordeMaxPollAttempts = env.Int("HORDE_MAX_POLL_ATTEMPTS", 60)

// Bytez
var BytezBaseURL = env.String("BYTEZ_BASE_URL", "https://api.bytez.com/models/v2")
var BytezAPIKey = env.String("BYTEZ_API_KEY", "")

var ModelCacheSeconds = env.Int("MODEL_CACHE_SECONDS", 10*60)

var JobLogEnabled = env.Bool("JOB_LOG_ENABLED", false)
var MetricEnabled = env.Bool("METRIC_ENABLED", true)

var SwaggerJSONURL = env.String("SWAGGER_JSON_URL", "")

func defaultInstanceId() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return uuid.New().String()[:8]
}
