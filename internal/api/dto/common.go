// Package dto provides shared request and response types for the booq API.
// These types are used by huma to generate OpenAPI documentation and perform validation.
package dto

// IDParam is a path parameter for resource IDs.
type IDParam struct {
	ID string `path:"id" doc:"Resource identifier"`
}

// MessageResponse is a simple success message response.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps a message response for huma.
type MessageOutput struct {
	Body MessageResponse
}
