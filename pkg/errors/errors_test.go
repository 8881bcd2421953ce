package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "test message: %s", "value")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_CONFIG: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidFormat, cause, "failed to decode")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

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
			err:      New(ErrCodeUnsupportedSections, "test"),
			code:     ErrCodeUnsupportedSections,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeInvalidConfig, "test"),
			code:     ErrCodeUnsupportedSections,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("outer: %w", New(ErrCodeInvalidIndex, "inner")),
			code:     ErrCodeInvalidIndex,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInvalidConfig,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidConfig,
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

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("load: %w", New(ErrCodeInvalidConfig, "min scale must be within [0, 1]"))
	if got := GetCode(err); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidConfig)
	}
	if got := UserMessage(err); got != "min scale must be within [0, 1]" {
		t.Errorf("UserMessage() = %q", got)
	}
	plain := errors.New("boom")
	if GetCode(plain) != "" {
		t.Error("GetCode(plain) should be empty")
	}
	if UserMessage(plain) != "boom" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"positive ok", ValidatePositive("w", 1), false},
		{"positive zero", ValidatePositive("w", 0), true},
		{"non-negative zero", ValidateNonNegative("s", 0), false},
		{"non-negative negative", ValidateNonNegative("s", -1), true},
		{"range inside", ValidateRange("scale", 0.5, 0, 1), false},
		{"range outside", ValidateRange("scale", 1.5, 0, 1), true},
		{"index ok", ValidateIndex(2, 3), false},
		{"index high", ValidateIndex(3, 3), true},
		{"index negative", ValidateIndex(-1, 3), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", tt.err, tt.wantErr)
			}
		})
	}
}
