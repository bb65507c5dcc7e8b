package transport

import "encoding/json"

// Envelope wraps every API payload, success or error, under a stable
// top-level shape.
type Envelope struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  any    `json:"error,omitempty"`
	Meta   any    `json:"meta,omitempty"`
}

// NewSuccess wraps data in a success envelope.
func NewSuccess(data any, meta any) Envelope {
	return Envelope{Status: "success", Data: data, Meta: meta}
}

// NewError wraps a classified error in an error envelope.
func NewError(code string, err any, meta any) Envelope {
	return Envelope{Status: "error", Code: code, Error: err, Meta: meta}
}

// String renders the envelope as JSON, best effort.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
