package model

// OpenAIModel is one entry of GET /models.
type OpenAIModel struct {
	Id         string  `json:"id"`
	Object     string  `json:"object"`
	Created    int64   `json:"created"`
	OwnedBy    string  `json:"owned_by"`
	Permission []any   `json:"permission"`
	Root       string  `json:"root,omitempty"`
	Parent     *string `json:"parent"`
}

type ModelList struct {
	Object string        `json:"object"`
	Data   []OpenAIModel `json:"data"`
}

func NewModelList(models []OpenAIModel) ModelList {
	if models == nil {
		models = []OpenAIModel{}
	}
	return ModelList{Object: "list", Data: models}
}
