package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError carries an HTTP status alongside a user-facing message
type AppError struct {
	Code    int                    // HTTP status code
	Message string                 // User-facing message
	Err     error                  // Underlying error
	Context map[string]interface{} // Additional context for logs
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: make(map[string]interface{}),
	}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	e.Context[key] = value
	return e
}

// BadRequestError is the ValidationError of the API: missing or malformed fields
func BadRequestError(message string, err error) *AppError {
	return NewAppError(fiber.StatusBadRequest, message, err)
}

// UnauthorizedError is the AuthError of the API: bad credentials or missing token
func UnauthorizedError(message string, err error) *AppError {
	return NewAppError(fiber.StatusUnauthorized, message, err)
}

func NotFoundError(message string, err error) *AppError {
	return NewAppError(fiber.StatusNotFound, message, err)
}

func TooManyRequestsError(message string, err error) *AppError {
	return NewAppError(fiber.StatusTooManyRequests, message, err)
}

func InternalServerError(message string, err error) *AppError {
	return NewAppError(fiber.StatusInternalServerError, message, err)
}

// StatusOf resolves the HTTP status and client message for any error
// returned by a handler.
func StatusOf(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}
	return fiber.StatusInternalServerError, "Internal server error"
}
