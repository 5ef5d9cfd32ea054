package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Database", ErrorTypeDatabase, "database"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Timeout", ErrorTypeTimeout, "timeout"},
		{"Transport", ErrorTypeTransport, "transport"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestErrorType_HTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeInvalidInput, http.StatusBadRequest},
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeDatabase, http.StatusInternalServerError},
		{ErrorTypeTimeout, http.StatusGatewayTimeout},
		{ErrorTypeTransport, http.StatusBadGateway},
		{ErrorType(42), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.errorType.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.HTTPStatus())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withoutCause := &AppError{Type: ErrorTypeValidation, Message: "invalid input"}
	assert.Equal(t, "validation: invalid input", withoutCause.Error())

	withCause := &AppError{Type: ErrorTypeDatabase, Message: "connection failed", Cause: errors.New("timeout")}
	assert.Equal(t, "database: connection failed (caused by: timeout)", withCause.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appError := &AppError{Type: ErrorTypeDatabase, Message: "wrapped error", Cause: cause}

	assert.Equal(t, cause, appError.Unwrap())
	assert.True(t, errors.Is(appError, cause))
}

func TestAppError_Is(t *testing.T) {
	validation := &AppError{Type: ErrorTypeValidation, Code: "VALIDATION_FAILED"}
	sameKind := &AppError{Type: ErrorTypeValidation, Code: "VALIDATION_FAILED"}
	database := &AppError{Type: ErrorTypeDatabase, Code: "DATABASE_ERROR"}

	assert.True(t, validation.Is(sameKind))
	assert.False(t, validation.Is(database))
	assert.False(t, validation.Is(errors.New("regular error")))
}

func TestAppError_Context(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation, Message: "test error"}

	result := appError.WithContext("field", "name")
	assert.Same(t, appError, result)

	value, ok := appError.GetContext("field")
	assert.True(t, ok)
	assert.Equal(t, "name", value)

	_, ok = appError.GetContext("nonexistent")
	assert.False(t, ok)

	appError.Context = nil
	_, ok = appError.GetContext("field")
	assert.False(t, ok)
}
