package bytez

import (
	"io"
)

type RunRequest struct {
	Text string `json:"text"`
}

// RunResponse is what POST /{model} returns. Error is a string on most
// failures but the API does not promise a shape.
type RunResponse struct {
	Error  any    `json:"error"`
	Output string `json:"output"`
}

type ListModel struct {
	ModelId string `json:"modelId"`
	Task    string `json:"task,omitempty"`
}

type ListModelsResponse struct {
	Error  any         `json:"error"`
	Output []ListModel `json:"output"`
}

// Speech is an audio stream the caller must close.
type Speech struct {
	Body        io.ReadCloser
	ContentType string
}
