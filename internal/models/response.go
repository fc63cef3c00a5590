package models

// ErrorResponse is the uniform error body returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a state-changing request.
type MessageResponse struct {
	Message string `json:"message"`
}
