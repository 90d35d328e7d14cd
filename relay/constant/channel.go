package constant

import (
	"strings"

	"github.com/contributory/ai-gateway/common"
)

const (
	HordePathPrefix = "/ai-horde/v1"
	BytezPathPrefix = "/bytez/v1"
)

// Path2ChannelType picks the backend from the route prefix.
func Path2ChannelType(path string) int {
	switch {
	case strings.HasPrefix(path, HordePathPrefix):
		return common.ChannelTypeHorde
	case strings.HasPrefix(path, BytezPathPrefix):
		return common.ChannelTypeBytez
	}
	return common.ChannelTypeUnknown
}
