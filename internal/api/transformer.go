package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped when the wire envelope shape changes.
const envelopeVersion = 1

// ResponseEnvelope is the wire format wrapping every huma response body.
// Raw (non-huma) handlers produce the same shape via the response package.
type ResponseEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// EnvelopeTransformer wraps response bodies in a consistent envelope so
// clients can parse success and error payloads uniformly.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if _, ok := v.(*ResponseEnvelope); ok {
		return v, nil
	}

	if err, ok := v.(error); ok {
		return &ResponseEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   err,
		}, nil
	}

	return &ResponseEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
