package cli

import (
	stderrors "errors"
	"fmt"

	"todo-api/internal/client"
	"todo-api/internal/errors"
	"todo-api/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for API, validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, msg)
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("%s", msg)
	}
	return err
}

func (eh *ErrorHandler) userMessage(err error) (string, bool) {
	// The service's own message is the most precise description of a rejected call
	var apiErr *client.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Message, true
	}

	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage(), true
	}

	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err), true
	}
	return "", false
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error, locally or from the service
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsNotFound(err) || client.IsNotFound(err)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	var apiErr *client.APIError
	if stderrors.As(err, &apiErr) && apiErr.Code != "" {
		return apiErr.Code
	}
	return errors.GetErrorCode(err)
}
