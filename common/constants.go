package common

import "time"

var Version = "v0.0.0"
var StartTime = time.Now().Unix()

const (
	ChannelTypeUnknown = iota
	ChannelTypeHorde
	ChannelTypeBytez
)

var ChannelTypeNames = map[int]string{
	ChannelTypeHorde: "ai-horde",
	ChannelTypeBytez: "bytez",
}
