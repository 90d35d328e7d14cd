package horde

import (
	"encoding/json"
)

// JobHandle is the id AI Horde assigns to an accepted job.
type JobHandle string

type Params struct {
	SamplerName string
	CfgScale    float64
	Steps       int
	N           int
	Width       int
	Height      int
	// Extra holds caller parameters with no typed field. They are written
	// last and win over the typed values on the wire.
	Extra map[string]any
}

func (p Params) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"sampler_name": p.SamplerName,
		"cfg_scale":    p.CfgScale,
		"steps":        p.Steps,
		"n":            p.N,
	}
	if p.Width > 0 {
		out["width"] = p.Width
	}
	if p.Height > 0 {
		out["height"] = p.Height
	}
	for k, v := range p.Extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// JobConfiguration is the body of POST /generate/async.
type JobConfiguration struct {
	Prompt     string   `json:"prompt"`
	Params     Params   `json:"params"`
	NSFW       bool     `json:"nsfw"`
	CensorNSFW bool     `json:"censor_nsfw"`
	Models     []string `json:"models,omitempty"`
}

type SubmitResponse struct {
	Id       string  `json:"id"`
	Kudos    float64 `json:"kudos"`
	Message  string  `json:"message,omitempty"`
	Warnings []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"warnings,omitempty"`
}

type Generation struct {
	Img        string `json:"img"`
	Seed       string `json:"seed"`
	Id         string `json:"id"`
	Censored   bool   `json:"censored"`
	WorkerId   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	Model      string `json:"model"`
	State      string `json:"state"`
}

// StatusResponse is the body of GET /generate/status/{id}. IsPossible is a
// pointer so an absent field is distinguishable from false.
type StatusResponse struct {
	Done          bool         `json:"done"`
	Faulted       bool         `json:"faulted"`
	IsPossible    *bool        `json:"is_possible"`
	Finished      int          `json:"finished"`
	Processing    int          `json:"processing"`
	Waiting       int          `json:"waiting"`
	QueuePosition int          `json:"queue_position"`
	WaitTime      int          `json:"wait_time"`
	Kudos         float64      `json:"kudos"`
	Generations   []Generation `json:"generations"`
}

// WorkerModel is one entry of GET /status/models.
type WorkerModel struct {
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	Performance float64 `json:"performance"`
	Queued      float64 `json:"queued"`
	Jobs        float64 `json:"jobs"`
	Eta         int     `json:"eta"`
	Type        string  `json:"type"`
}
