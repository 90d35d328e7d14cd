package bytez

const (
	ChannelName = "bytez"
	OwnedBy     = "bytez"

	DefaultSpeechModel = "tts-1"
	DefaultAudioType   = "audio/mpeg"

	TaskTextToSpeech = "text-to-speech"
	TaskTextToImage  = "text-to-image"
)
