package domain

import (
	"errors"
	"fmt"
)

// DomainError represents an authentication error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "EA-TOKN-4001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap is an alias for WithCause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ErrorChain returns the messages of err and its causes, outermost first.
//
// A DomainError contributes its own text and the walk continues into its
// Cause. Any other error contributes its full Error() text, which already
// embeds whatever it wraps, and ends the walk.
func ErrorChain(err error) []string {
	var chain []string
	for err != nil {
		de, ok := err.(*DomainError)
		if !ok {
			chain = append(chain, err.Error())
			break
		}
		chain = append(chain, de.Error())
		err = de.Cause
	}
	return chain
}

// ============================================================================
// Envelope Errors (ENV)
// ============================================================================

var (
	// ErrMalformedEnvelope indicates the envelope framing or the token
	// message could not be decoded.
	ErrMalformedEnvelope = NewDomainError("EA-ENV-4000", "malformed token envelope")
)

// ============================================================================
// Token Errors (TOKN)
// ============================================================================

var (
	// ErrUnsupportedVersion indicates the token version is not recognized.
	ErrUnsupportedVersion = NewDomainError("EA-TOKN-4001", "unsupported token version")

	// ErrDecryptionFailure indicates the encrypted secret could not be
	// decrypted or decoded.
	ErrDecryptionFailure = NewDomainError("EA-TOKN-4010", "failed to decrypt secret in authentication token")

	// ErrEncryptionFailure indicates the secret could not be encrypted.
	ErrEncryptionFailure = NewDomainError("EA-TOKN-5001", "failed to encrypt secret for authentication token")

	// ErrTokenTooLarge indicates the generated envelope exceeds MaxEnvelopeSize.
	ErrTokenTooLarge = NewDomainError("EA-TOKN-4130", "endpoint authentication token is longer than 1024 bytes")
)

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrTokenValidation wraps every hard failure of token validation.
	ErrTokenValidation = NewDomainError("EA-AUTH-4010", "failed token validation")

	// ErrTokenRejected indicates the token was classified INVALID.
	ErrTokenRejected = NewDomainError("EA-AUTH-4011", "invalid token from endpoint")

	// ErrTokenGeneration wraps every failure of token generation.
	ErrTokenGeneration = NewDomainError("EA-AUTH-5000", "failed token generation")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("EA-ARG-1001", "invalid argument")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternal indicates an unexpected server failure.
	ErrInternal = NewDomainError("EA-SYS-5000", "internal server error")
)
