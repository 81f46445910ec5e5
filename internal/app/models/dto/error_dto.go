package dto

import "time"

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	Path        string            `json:"path"`
	Timestamp   time.Time         `json:"timestamp"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// NewErrorResponse builds the standard failure envelope.
func NewErrorResponse(status int, errorName, message, path string) ErrorResponse {
	return ErrorResponse{
		Status:    status,
		Error:     errorName,
		Message:   message,
		Path:      path,
		Timestamp: time.Now().UTC(),
	}
}

// WithFieldErrors attaches per-field validation messages.
func (e ErrorResponse) WithFieldErrors(fields map[string]string) ErrorResponse {
	e.FieldErrors = fields
	return e
}
