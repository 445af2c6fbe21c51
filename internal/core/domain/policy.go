package domain

import (
	"fmt"
	"strings"
)

// TokenPolicy decides how strictly incoming tokens are checked.
type TokenPolicy int

const (
	// PolicyOptional validates tokens when present and tolerates their absence.
	PolicyOptional TokenPolicy = iota

	// PolicyNone decodes tokens for their identity but never validates them.
	PolicyNone

	// PolicyRequired rejects calls without a valid token.
	PolicyRequired
)

// DefaultTokenPolicy is used when configuration names no policy.
const DefaultTokenPolicy = PolicyOptional

// String returns the upper-case policy name.
func (p TokenPolicy) String() string {
	switch p {
	case PolicyNone:
		return "NONE"
	case PolicyOptional:
		return "OPTIONAL"
	case PolicyRequired:
		return "REQUIRED"
	default:
		return fmt.Sprintf("TokenPolicy(%d)", int(p))
	}
}

// Valid reports whether p is one of the defined policies.
func (p TokenPolicy) Valid() bool {
	return p == PolicyNone || p == PolicyOptional || p == PolicyRequired
}

// ParseTokenPolicy parses a case-insensitive policy name. An empty string
// yields DefaultTokenPolicy.
func ParseTokenPolicy(s string) (TokenPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultTokenPolicy, nil
	case "none":
		return PolicyNone, nil
	case "optional":
		return PolicyOptional, nil
	case "required":
		return PolicyRequired, nil
	default:
		return DefaultTokenPolicy, ErrInvalidArgument.WithDetails(
			fmt.Sprintf("unknown token policy %q (want none, optional or required)", s))
	}
}

// ValidationResult classifies a presented token.
type ValidationResult int

const (
	// NotValidated means no validation took place.
	NotValidated ValidationResult = iota

	// Valid means the token decrypted and fell within the clock tolerance.
	Valid

	// Invalid means the token was missing under REQUIRED, forged, or stale.
	Invalid
)

// String returns the upper-case result name.
func (r ValidationResult) String() string {
	switch r {
	case NotValidated:
		return "NOT_VALIDATED"
	case Valid:
		return "VALID"
	case Invalid:
		return "INVALID"
	default:
		return fmt.Sprintf("ValidationResult(%d)", int(r))
	}
}
