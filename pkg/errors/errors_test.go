package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPage, "test message: %s", "value")

	if err.Code != ErrCodeInvalidPage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidPage)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_PAGE: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeMalformedBlock, cause, "failed to decode")

	if err.Code != ErrCodeMalformedBlock {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformedBlock)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeMalformedBlock, "test"),
			code:     ErrCodeMalformedBlock,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMalformedBlock, "test"),
			code:     ErrCodeCycle,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeUnresolvedParent, New(ErrCodeMalformedBlock, "inner"), "outer"),
			code:     ErrCodeUnresolvedParent,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeMalformedBlock,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeMalformedBlock,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDuplicateID, "test"),
			expected: ErrCodeDuplicateID,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type strips code",
			err:      New(ErrCodeInvalidFormat, "unknown format: gif"),
			expected: "unknown format: gif",
		},
		{
			name:     "plain error",
			err:      errors.New("plain message"),
			expected: "plain message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// stageError mimics an external error type that carries its own code via a
// Code method instead of embedding *Error.
type stageError struct {
	code Code
}

func (e *stageError) Error() string { return "stage failed" }
func (e *stageError) Code() Code    { return e.code }

func TestCodeMethodErrors(t *testing.T) {
	err := &stageError{code: ErrCodeMalformedBlock}

	if !Is(err, ErrCodeMalformedBlock) {
		t.Error("Is() should match an error exposing a Code method")
	}
	if got := GetCode(err); got != ErrCodeMalformedBlock {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeMalformedBlock)
	}

	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeMalformedBlock) {
		t.Error("Is() should match a wrapped error exposing a Code method")
	}
	if got := GetCode(wrapped); got != ErrCodeMalformedBlock {
		t.Errorf("GetCode() wrapped = %v, want %v", got, ErrCodeMalformedBlock)
	}
}
