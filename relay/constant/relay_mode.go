package constant

import "strings"

const (
	RelayModeUnknown = iota
	RelayModeImagesGenerations
	RelayModeAudioSpeech
)

func Path2RelayMode(path string) int {
	relayMode := RelayModeUnknown
	if strings.HasSuffix(path, "/images/generations") {
		relayMode = RelayModeImagesGenerations
	} else if strings.HasSuffix(path, "/audio/speech") {
		relayMode = RelayModeAudioSpeech
	}
	return relayMode
}
