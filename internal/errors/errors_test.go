package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("field is required")
	err := NewValidationError("Name is required", cause)

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "Name is required", err.Message)
	assert.Equal(t, "VALIDATION_FAILED", err.Code)
	assert.Equal(t, cause, err.Cause)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("item", "123")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "item not found: 123", err.Message)
	assert.Equal(t, "NOT_FOUND", err.Code)

	resource, ok := err.GetContext("resource")
	assert.True(t, ok)
	assert.Equal(t, "item", resource)

	identifier, ok := err.GetContext("identifier")
	assert.True(t, ok)
	assert.Equal(t, "123", identifier)
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("insert item", cause)

	assert.Equal(t, ErrorTypeDatabase, err.Type)
	assert.Equal(t, "database operation failed: insert item", err.Message)
	assert.Equal(t, "DATABASE_ERROR", err.Code)
	assert.Equal(t, cause, err.Cause)
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("id", "abc", "must be a positive integer")

	assert.Equal(t, ErrorTypeInvalidInput, err.Type)
	assert.Equal(t, "invalid input for id: must be a positive integer", err.Message)
	assert.Equal(t, "INVALID_INPUT", err.Code)

	field, _ := err.GetContext("field")
	assert.Equal(t, "id", field)
}

func TestNewTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewTransportError(http.MethodGet, "http://localhost:8080/items", cause)

	assert.Equal(t, ErrorTypeTransport, err.Type)
	assert.Equal(t, "TRANSPORT_ERROR", err.Code)
	assert.Equal(t, "request failed: GET http://localhost:8080/items", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeDatabase, "wrapped message")

	assert.Equal(t, ErrorTypeDatabase, err.Type)
	assert.Equal(t, "wrapped message", err.Message)
	assert.Equal(t, "database", err.Code)
	assert.Equal(t, cause, err.Cause)
}

func TestFromContext(t *testing.T) {
	timeout := FromContext("list items", fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrorTypeTimeout, timeout.Type)

	other := FromContext("list items", errors.New("disk I/O error"))
	assert.Equal(t, ErrorTypeDatabase, other.Type)
}

func TestAsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}

	result, ok := AsAppError(fmt.Errorf("wrapped: %w", appError))
	require.True(t, ok)
	assert.Same(t, appError, result)

	result, ok = AsAppError(errors.New("regular error"))
	assert.False(t, ok)
	assert.Nil(t, result)

	assert.False(t, IsAppError(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("item", "1")))
	assert.False(t, IsNotFound(NewValidationError("bad", nil)))
	assert.False(t, IsNotFound(errors.New("not found")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("Name is required", nil)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("item", "9")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewDatabaseError("query", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Validation error", NewValidationError("Name is required", nil), "Name is required"},
		{"Not found error", NewNotFoundError("item", "123"), "item not found: 123"},
		{"Database error", NewDatabaseError("query", errors.New("locked")), "A database error occurred. Please try again."},
		{"Timeout error", NewTimeoutError("query", "5s"), "The operation timed out. Please try again."},
		{"Transport error", NewTransportError("GET", "/items", nil), "The server could not be reached."},
		{"Regular error", errors.New("sql: leaked detail"), "An unexpected error occurred. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "VALIDATION_FAILED", GetErrorCode(&AppError{Code: "VALIDATION_FAILED"}))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("regular error")))
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Not found error", NewNotFoundError("item", "123"), false},
		{"Invalid input error", NewInvalidInputError("id", "x", "format"), false},
		{"Database error", NewDatabaseError("query", errors.New("locked")), true},
		{"Timeout error", NewTimeoutError("query", "5s"), true},
		{"Transport error", NewTransportError("GET", "/items", nil), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldLogError(tt.err))
		})
	}
}
