package horde

const (
	ChannelName = "ai-horde"
	OwnedBy     = "AI Horde Workers"

	DefaultSampler  = "k_euler_a"
	DefaultCfgScale = 7.5
	DefaultSteps    = 30
	DefaultWidth    = 512
	DefaultHeight   = 512

	// DefaultMaxPollAttempts replaces a non-positive poll budget so every
	// job gets at least one status query.
	DefaultMaxPollAttempts = 60

	// FallbackModel is served when the worker catalogue cannot be fetched.
	FallbackModel = "stable_diffusion"
)

// Result encodings accepted in response_format.
const (
	ResponseFormatURL     = "url"
	ResponseFormatB64JSON = "b64_json"
)

// DefaultLadder is tried in order when the caller does not pin models.
var DefaultLadder = []Candidate{
	{Name: "stable_diffusion", Models: []string{"stable_diffusion"}},
	{Name: "stable_diffusion_2.1", Models: []string{"stable_diffusion_2.1"}},
	{Name: "stable_diffusion_1.5", Models: []string{"stable_diffusion_1.5"}},
	{Name: "any", Models: nil},
}
