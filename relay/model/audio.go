package model

// SpeechRequest accepts both the OpenAI "input" field and the Bytez "text".
type SpeechRequest struct {
	Model          string  `json:"model,omitempty"`
	Input          string  `json:"input,omitempty"`
	Text           string  `json:"text,omitempty"`
	Voice          string  `json:"voice,omitempty"`
	ResponseFormat string  `json:"response_format,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
}

func (r SpeechRequest) GetInput() string {
	if r.Input != "" {
		return r.Input
	}
	return r.Text
}
