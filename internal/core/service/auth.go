package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/core/keyring"
	"github.com/yndnr/endpointauth-go/pkg/clock"
	"github.com/yndnr/endpointauth-go/pkg/delimited"
)

// Recorder observes authentication outcomes. Implementations must be
// safe for concurrent use.
type Recorder interface {
	ObserveValidation(result domain.ValidationResult, err error)
	ObserveGeneration(err error)
}

// AuthServiceConfig holds configuration for AuthService.
type AuthServiceConfig struct {
	// Policy decides how presented tokens are checked (default: OPTIONAL).
	Policy domain.TokenPolicy

	// Tolerance is the accepted clock skew for version 1 tokens.
	Tolerance time.Duration

	// Clock supplies the current time (default: wall clock).
	Clock clock.Clock

	// Keyring caches derived keys (default: a private keyring).
	Keyring *keyring.Keyring

	// Recorder receives outcomes (optional).
	Recorder Recorder
}

// DefaultAuthServiceConfig returns default configuration.
func DefaultAuthServiceConfig() *AuthServiceConfig {
	return &AuthServiceConfig{
		Policy:    domain.DefaultTokenPolicy,
		Tolerance: 30 * time.Second,
	}
}

// ValidationOutcome is the result of validating an envelope.
type ValidationOutcome struct {
	// Identity is the decoded caller, nil when no envelope was presented.
	Identity *domain.EndpointIdentity

	Result domain.ValidationResult

	// IssuedAt is set only for Valid.
	IssuedAt time.Time

	// Cause records why the outcome is Invalid, if known.
	Cause error
}

// AuthService applies a TokenPolicy to framed token envelopes.
type AuthService struct {
	policy    domain.TokenPolicy
	providers *Providers
	recorder  Recorder
}

// NewAuthService creates an AuthService backed by a version 1 provider.
func NewAuthService(config *AuthServiceConfig) (*AuthService, error) {
	if config == nil {
		config = DefaultAuthServiceConfig()
	}

	v1, err := NewProviderV1(config.Keyring, config.Clock, config.Tolerance)
	if err != nil {
		return nil, err
	}

	return NewAuthServiceWithProviders(config.Policy, NewProviders(v1), config.Recorder)
}

// NewAuthServiceWithProviders creates an AuthService over an explicit
// provider registry.
func NewAuthServiceWithProviders(policy domain.TokenPolicy, providers *Providers, recorder Recorder) (*AuthService, error) {
	if !policy.Valid() {
		return nil, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown token policy %v", policy))
	}
	if providers == nil || providers.Current() == nil {
		return nil, domain.ErrInvalidArgument.WithDetails("no token provider configured")
	}

	return &AuthService{
		policy:    policy,
		providers: providers,
		recorder:  recorder,
	}, nil
}

// Policy returns the configured policy.
func (s *AuthService) Policy() domain.TokenPolicy {
	return s.policy
}

// ValidateToken classifies envelope under the service policy.
//
// An absent envelope is NotValidated, or Invalid under REQUIRED. A
// present envelope that cannot be decoded, or that names an unknown
// version, is a hard error wrapped in ErrTokenValidation.
func (s *AuthService) ValidateToken(envelope []byte) (*ValidationOutcome, error) {
	outcome, err := s.validate(envelope)
	if s.recorder != nil {
		result := domain.Invalid
		if outcome != nil {
			result = outcome.Result
		}
		s.recorder.ObserveValidation(result, err)
	}
	return outcome, err
}

func (s *AuthService) validate(envelope []byte) (*ValidationOutcome, error) {
	if len(envelope) == 0 {
		if s.policy == domain.PolicyRequired {
			return &ValidationOutcome{
				Result: domain.Invalid,
				Cause:  domain.ErrTokenRejected.WithDetails("no authentication token presented"),
			}, nil
		}
		return &ValidationOutcome{Result: domain.NotValidated}, nil
	}

	token, err := DecodeEnvelope(envelope)
	if err != nil {
		return nil, domain.ErrTokenValidation.WithCause(err)
	}
	identity := token.EndpointIdentity

	if s.policy == domain.PolicyNone {
		return &ValidationOutcome{Identity: &identity, Result: domain.NotValidated}, nil
	}

	provider, err := s.providers.Lookup(token.Version)
	if err != nil {
		return nil, domain.ErrTokenValidation.WithCause(err)
	}

	verdict, err := provider.ValidateToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedVersion) {
			return nil, domain.ErrTokenValidation.WithCause(err)
		}
		return &ValidationOutcome{Identity: &identity, Result: domain.Invalid, Cause: err}, nil
	}

	return &ValidationOutcome{
		Identity: &identity,
		Result:   verdict.Result,
		IssuedAt: verdict.IssuedAt,
		Cause:    verdict.Cause,
	}, nil
}

// GenerateToken issues a framed envelope for identity. Envelopes larger
// than domain.MaxEnvelopeSize fail with ErrTokenTooLarge.
func (s *AuthService) GenerateToken(identity domain.EndpointIdentity) ([]byte, error) {
	envelope, err := s.generate(identity)
	if s.recorder != nil {
		s.recorder.ObserveGeneration(err)
	}
	return envelope, err
}

func (s *AuthService) generate(identity domain.EndpointIdentity) ([]byte, error) {
	token, err := s.providers.Current().GenerateToken(identity)
	if err != nil {
		return nil, domain.ErrTokenGeneration.WithCause(err)
	}

	envelope, err := EncodeEnvelope(token)
	if err != nil {
		return nil, domain.ErrTokenGeneration.WithCause(err)
	}
	return envelope, nil
}

// EncodeEnvelope serializes and frames token.
func EncodeEnvelope(token *domain.AuthenticationToken) ([]byte, error) {
	msg := domain.MarshalToken(token)
	if size := delimited.HeaderSize + len(msg); size > domain.MaxEnvelopeSize {
		return nil, domain.ErrTokenTooLarge.WithDetails(fmt.Sprintf("%d bytes", size))
	}
	return delimited.Encode(msg)
}

// DecodeEnvelope unframes and deserializes a token. Bytes after the
// frame are ignored. The size limit is not enforced here.
func DecodeEnvelope(envelope []byte) (*domain.AuthenticationToken, error) {
	payload, _, err := delimited.Decode(envelope)
	if err != nil {
		return nil, domain.ErrMalformedEnvelope.WithCause(err)
	}
	return domain.UnmarshalToken(payload)
}
