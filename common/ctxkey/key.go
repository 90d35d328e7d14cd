package ctxkey

const (
	Credential   = "credential"
	Channel      = "channel"
	RequestModel = "request_model"
)
