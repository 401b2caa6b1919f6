// Package apierror provides the standardized error envelope for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Extra carries structured detail the operator needs to act on the error
// (e.g. the reconciliation breakdown when a caja close is rejected).
type APIError struct {
	Detail string                 `json:"detail"`
	Extra  map[string]interface{} `json:"extra,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func WithExtra(msg string, extra map[string]interface{}) *APIError {
	return &APIError{Detail: msg, Extra: extra}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
