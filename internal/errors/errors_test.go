package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeParsing,
				Message: "invalid JSON syntax",
				Err:     nil,
			},
			expected: "parsing: invalid JSON syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	result := appErr.Unwrap()
	assert.Equal(t, wrappedErr, result)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name: "same type",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeInput,
				Message: "different message",
				Err:     errors.New("some error"),
			},
			expected: true,
		},
		{
			name: "different type",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeParsing,
				Message: "test message",
				Err:     nil,
			},
			expected: false,
		},
		{
			name: "not an AppError",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Is(tt.target)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "parsing error",
			err:      NewParsingError("invalid JSON syntax", nil),
			expected: "JSON parsing error: invalid JSON syntax",
		},
		{
			name:     "inspection error",
			err:      NewInspectionError("nested array under '/x'", ErrNestedArray),
			expected: "Inspection error: nested array under '/x'",
		},
		{
			name:     "config error",
			err:      NewConfigError("bad config", nil),
			expected: "Configuration error: bad config",
		},
		{
			name:     "render error",
			err:      NewRenderError("failed to encode schema", nil),
			expected: "Render error: failed to encode schema",
		},
		{
			name:     "generate error",
			err:      NewGenerateError("failed to generate code", nil),
			expected: "Code generation error: failed to generate code",
		},
		{
			name:     "format error",
			err:      NewFormatError("failed to format code", nil),
			expected: "Code formatting error: failed to format code",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide valid JSON data.",
		},
		{
			name:     "standard error - invalid JSON",
			err:      ErrInvalidJSON,
			expected: "Error: The input contains invalid JSON. Please check your JSON syntax.",
		},
		{
			name:     "standard error - invalid root",
			err:      ErrInvalidRoot,
			expected: "Error: The JSON document must be an object or an array at the top level.",
		},
		{
			name:     "standard error - nested array",
			err:      ErrNestedArray,
			expected: "Error: Arrays of arrays cannot be described by a schema path. Please wrap inner arrays in objects.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UserFriendlyError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsInspectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "invalid input", err: NewInputError("empty", ErrEmptyInput), expected: true},
		{name: "decode failure", err: NewParsingError("bad json", ErrInvalidJSON), expected: true},
		{name: "unsupported shape", err: NewInspectionError("nested", ErrNestedArray), expected: true},
		{name: "wrapped shape error", err: fmt.Errorf("inspect: %w", NewInspectionError("nested", ErrNestedArray)), expected: true},
		{name: "render error", err: NewRenderError("encode", nil), expected: false},
		{name: "plain error", err: errors.New("boom"), expected: false},
		{name: "nil", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsInspectionError(tt.err))
		})
	}
}

func TestAppError_SentinelsSurviveWrapping(t *testing.T) {
	err := NewInspectionError("nested array under '/x'", ErrNestedArray)

	assert.True(t, errors.Is(err, ErrNestedArray))
	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeInspection}))
	assert.False(t, errors.Is(err, ErrEmptyInput))
}
