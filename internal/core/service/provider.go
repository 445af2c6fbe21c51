package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/core/keyring"
	"github.com/yndnr/endpointauth-go/pkg/clock"
)

// TokenProvider generates and validates tokens of a single version.
type TokenProvider interface {
	// Version returns the token version this provider handles.
	Version() int32

	// GenerateToken issues a token for identity at the current time.
	GenerateToken(identity domain.EndpointIdentity) (*domain.AuthenticationToken, error)

	// ValidateToken classifies token. Only failures that make
	// classification impossible are returned as errors.
	ValidateToken(token *domain.AuthenticationToken) (Verdict, error)
}

// Verdict is a provider's classification of a token.
type Verdict struct {
	Result domain.ValidationResult

	// IssuedAt is the recovered issue time, set only for Valid.
	IssuedAt time.Time

	// Cause records why the token was classified Invalid, if known.
	Cause error
}

// ProviderV1 implements version 1 tokens: the secret is the decimal
// Unix issue time encrypted under the identity key.
type ProviderV1 struct {
	keys      *keyring.Keyring
	clock     clock.Clock
	tolerance time.Duration
}

// NewProviderV1 creates a version 1 provider. A nil keyring gets a
// private one; a nil clock uses the wall clock. Negative tolerance is
// rejected.
func NewProviderV1(keys *keyring.Keyring, clk clock.Clock, tolerance time.Duration) (*ProviderV1, error) {
	if tolerance < 0 {
		return nil, domain.ErrInvalidArgument.WithDetails(
			fmt.Sprintf("tolerance must not be negative, got %s", tolerance))
	}
	if keys == nil {
		keys = keyring.New()
	}
	if clk == nil {
		clk = clock.Real()
	}

	return &ProviderV1{
		keys:      keys,
		clock:     clk,
		tolerance: tolerance,
	}, nil
}

// Version returns domain.Version1.
func (p *ProviderV1) Version() int32 {
	return domain.Version1
}

// Tolerance returns the accepted clock skew.
func (p *ProviderV1) Tolerance() time.Duration {
	return p.tolerance
}

// Keyring returns the provider's key cache.
func (p *ProviderV1) Keyring() *keyring.Keyring {
	return p.keys
}

// GenerateToken encrypts the current Unix second for identity.
func (p *ProviderV1) GenerateToken(identity domain.EndpointIdentity) (*domain.AuthenticationToken, error) {
	secret := strconv.AppendInt(nil, p.clock.Now().Unix(), 10)

	encrypted, err := p.keys.Encrypt(identity, secret)
	if err != nil {
		return nil, err
	}

	return &domain.AuthenticationToken{
		Version:          domain.Version1,
		EndpointIdentity: domain.NewEndpointIdentity(identity.Domain, identity.Identifier),
		EncryptedSecret:  encrypted,
	}, nil
}

// ValidateToken decrypts the issue time and compares it with the clock.
// A token whose issue time differs from now by at most the tolerance,
// in either direction, is Valid.
func (p *ProviderV1) ValidateToken(token *domain.AuthenticationToken) (Verdict, error) {
	if token.Version != domain.Version1 {
		return Verdict{}, domain.ErrUnsupportedVersion.WithDetails(
			fmt.Sprintf("version %d", token.Version))
	}

	secret, err := p.keys.Decrypt(token.EndpointIdentity, token.EncryptedSecret)
	if err != nil {
		return Verdict{Result: domain.Invalid, Cause: err}, nil
	}

	seconds, err := strconv.ParseInt(string(secret), 10, 64)
	if err != nil {
		return Verdict{Result: domain.Invalid, Cause: domain.ErrDecryptionFailure.WithCause(err)}, nil
	}
	issuedAt := time.Unix(seconds, 0)

	// Tokens carry whole seconds; compare at that resolution.
	delta := time.Duration(p.clock.Now().Unix()-seconds) * time.Second
	if delta < 0 {
		delta = -delta
	}
	if delta > p.tolerance {
		return Verdict{
			Result: domain.Invalid,
			Cause:  fmt.Errorf("token age %s exceeds tolerance %s", delta, p.tolerance),
		}, nil
	}

	return Verdict{Result: domain.Valid, IssuedAt: issuedAt}, nil
}

// Providers dispatches on token version. Exactly one provider is used
// for generation.
type Providers struct {
	current   TokenProvider
	byVersion map[int32]TokenProvider
}

// NewProviders registers current for generation and every provider for
// validation of its own version.
func NewProviders(current TokenProvider, others ...TokenProvider) *Providers {
	p := &Providers{
		current:   current,
		byVersion: make(map[int32]TokenProvider, 1+len(others)),
	}
	for _, o := range others {
		p.byVersion[o.Version()] = o
	}
	p.byVersion[current.Version()] = current
	return p
}

// Current returns the provider used to generate tokens.
func (p *Providers) Current() TokenProvider {
	return p.current
}

// Lookup returns the provider for version.
func (p *Providers) Lookup(version int32) (TokenProvider, error) {
	tp, ok := p.byVersion[version]
	if !ok {
		return nil, domain.ErrUnsupportedVersion.WithDetails(fmt.Sprintf("version %d", version))
	}
	return tp, nil
}
