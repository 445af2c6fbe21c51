package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("EA-TEST-1000", "test message"),
			expected: "[EA-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("EA-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[EA-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("EA-TEST-1000", "message 1")
	err2 := NewDomainError("EA-TEST-1000", "message 2") // Same code, different message
	err3 := NewDomainError("EA-TEST-1001", "message 1") // Different code

	// Same code should match
	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}

	// Different code should not match
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}

	// Should not match non-DomainError
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("EA-TEST-1000", "wrapper").WithCause(cause)

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause
	errNoCause := NewDomainError("EA-TEST-1000", "no cause")
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	original := NewDomainError("EA-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	// Check original is unchanged
	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}

	// Check new error has details
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}

	// Check code and message are preserved
	if withDetails.Code != original.Code {
		t.Errorf("Code = %q, want %q", withDetails.Code, original.Code)
	}
	if withDetails.Message != original.Message {
		t.Errorf("Message = %q, want %q", withDetails.Message, original.Message)
	}
}

func TestDomainError_WithCause(t *testing.T) {
	original := NewDomainError("EA-TEST-1000", "original message")
	cause := fmt.Errorf("root cause")
	withCause := original.WithCause(cause)

	// Check original is unchanged
	if original.Cause != nil {
		t.Error("WithCause should not modify original error")
	}

	// Check new error has cause
	if withCause.Cause != cause {
		t.Errorf("Cause = %v, want %v", withCause.Cause, cause)
	}

	// Check code and message are preserved
	if withCause.Code != original.Code {
		t.Errorf("Code = %q, want %q", withCause.Code, original.Code)
	}
}

func TestDomainError_Wrap(t *testing.T) {
	original := NewDomainError("EA-TEST-1000", "original")
	cause := fmt.Errorf("cause")
	wrapped := original.Wrap(cause)

	if wrapped.Cause != cause {
		t.Errorf("Wrap() should set cause, got %v", wrapped.Cause)
	}
}

func TestIsDomainError(t *testing.T) {
	err := ErrUnsupportedVersion

	if !IsDomainError(err, "EA-TOKN-4001") {
		t.Error("IsDomainError should return true for matching code")
	}

	if IsDomainError(err, "EA-TOKN-9999") {
		t.Error("IsDomainError should return false for non-matching code")
	}

	if IsDomainError(fmt.Errorf("regular error"), "EA-TOKN-4001") {
		t.Error("IsDomainError should return false for non-DomainError")
	}

	if !IsDomainError(err, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}

	wrapped := fmt.Errorf("wrapped: %w", ErrUnsupportedVersion)
	if !IsDomainError(wrapped, "EA-TOKN-4001") {
		t.Error("IsDomainError should work with wrapped errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "domain error",
			err:      ErrTokenTooLarge,
			expected: "EA-TOKN-4130",
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("wrapped: %w", ErrMalformedEnvelope),
			expected: "EA-ENV-4000",
		},
		{
			name:     "regular error",
			err:      fmt.Errorf("regular error"),
			expected: "",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrMalformedEnvelope, "EA-ENV-4000"},
		{ErrUnsupportedVersion, "EA-TOKN-4001"},
		{ErrDecryptionFailure, "EA-TOKN-4010"},
		{ErrEncryptionFailure, "EA-TOKN-5001"},
		{ErrTokenTooLarge, "EA-TOKN-4130"},
		{ErrTokenValidation, "EA-AUTH-4010"},
		{ErrTokenRejected, "EA-AUTH-4011"},
		{ErrTokenGeneration, "EA-AUTH-5000"},
		{ErrInvalidArgument, "EA-ARG-1001"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Message should not be empty")
			}
		})
	}
}

func TestErrorChain(t *testing.T) {
	root := errors.New("crypto/aes: invalid padding")
	err := ErrTokenValidation.WithCause(
		ErrDecryptionFailure.WithCause(fmt.Errorf("decrypt: %w", root)),
	)

	got := ErrorChain(err)
	want := []string{
		"[EA-AUTH-4010] failed token validation",
		"[EA-TOKN-4010] failed to decrypt secret in authentication token",
		"decrypt: crypto/aes: invalid padding",
	}

	if len(got) != len(want) {
		t.Fatalf("ErrorChain() len = %d, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ErrorChain()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestErrorChain_Edges(t *testing.T) {
	if got := ErrorChain(nil); len(got) != 0 {
		t.Errorf("ErrorChain(nil) = %q, want empty", got)
	}

	got := ErrorChain(errors.New("plain"))
	if len(got) != 1 || got[0] != "plain" {
		t.Errorf("ErrorChain(plain) = %q, want [plain]", got)
	}

	got = ErrorChain(ErrTokenTooLarge)
	if len(got) != 1 {
		t.Errorf("ErrorChain(leaf) = %q, want one element", got)
	}
}
