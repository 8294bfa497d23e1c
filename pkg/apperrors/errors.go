package apperrors

import "net/http"

// AppError is an error carrying an HTTP status and a machine-readable code.
// The HTTP boundary maps it into the error envelope; everything it does not
// recognize becomes a generic 500.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// New creates a new AppError
func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// NotFound creates a 404 AppError
func NotFound(code, message string) *AppError {
	return New(http.StatusNotFound, code, message)
}

// BadRequest creates a 400 AppError
func BadRequest(code, message string) *AppError {
	return New(http.StatusBadRequest, code, message)
}

// Unauthorized creates a 401 AppError
func Unauthorized(code, message string) *AppError {
	return New(http.StatusUnauthorized, code, message)
}

// Forbidden creates a 403 AppError
func Forbidden(code, message string) *AppError {
	return New(http.StatusForbidden, code, message)
}

// Conflict creates a 409 AppError
func Conflict(code, message string) *AppError {
	return New(http.StatusConflict, code, message)
}
