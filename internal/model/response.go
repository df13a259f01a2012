package model

// FieldError is a single itemized validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response is the common envelope for API responses. Debug carries internal
// error detail and is only meant for operators; Message is safe to show.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Debug   string       `json:"debug,omitempty"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// NewErrorResponse builds an error envelope with optional debug detail.
func NewErrorResponse(message, debug string) Response {
	return Response{Success: false, Message: message, Debug: debug}
}

// NewValidationResponse builds an error envelope with per-field detail.
func NewValidationResponse(message string, fields []FieldError) Response {
	return Response{Success: false, Message: message, Errors: fields}
}
