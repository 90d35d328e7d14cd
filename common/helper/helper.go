package helper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GetTimestamp() int64 {
	return time.Now().Unix()
}

func GetTimeString() string {
	return time.Now().Format("20060102150405")
}

// GenRequestID returns a timestamp (YYYYMMDDHHmmss) followed by 8 hex chars.
func GenRequestID() string {
	return GetTimeString() + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func MessageWithRequestId(message string, id string) string {
	return fmt.Sprintf("%s (request id: %s)", message, id)
}

// MaskKey keeps the first and last four characters of a credential.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
