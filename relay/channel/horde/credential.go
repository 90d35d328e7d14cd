package horde

import (
	"strings"

	"github.com/contributory/ai-gateway/common/config"
)

// ResolveAPIKey strips a bearer prefix and falls back to the anonymous key.
func ResolveAPIKey(raw string) string {
	key := strings.TrimSpace(raw)
	if key == "Bearer" || strings.HasPrefix(key, "Bearer ") {
		key = strings.TrimSpace(strings.TrimPrefix(key, "Bearer"))
	}
	if key == "" {
		return config.HordePublicAPIKey
	}
	return key
}

func IsPublicKey(key string) bool {
	return key == config.HordePublicAPIKey
}
