package model

// ImageRequest is the OpenAI images/generations body plus the AI Horde
// extensions (models, params).
type ImageRequest struct {
	Model          string         `json:"model,omitempty"`
	Prompt         string         `json:"prompt" binding:"required"`
	N              int            `json:"n,omitempty" binding:"omitempty,min=1,max=20"`
	Size           string         `json:"size,omitempty" binding:"omitempty,imagesize"`
	ResponseFormat string         `json:"response_format,omitempty" binding:"omitempty,oneof=url b64_json"`
	User           string         `json:"user,omitempty"`
	Models         []string       `json:"models,omitempty"`
	Params         map[string]any `json:"params,omitempty"`
}

type ImageData struct {
	Url           string `json:"url,omitempty"`
	B64Json       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

type ImageResponse struct {
	Created int64       `json:"created"`
	Data    []ImageData `json:"data"`
}
