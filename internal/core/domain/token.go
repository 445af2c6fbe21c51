package domain

import (
	"bytes"
)

// Token format versions.
const (
	// Version1 tokens carry an AES-128-CBC encrypted decimal issue time
	// under a PBKDF2-HMAC-SHA1 key derived from the identity.
	Version1 int32 = 1
)

// MaxEnvelopeSize is the largest framed token accepted from generation.
const MaxEnvelopeSize = 1024

// AuthenticationToken binds an endpoint identity to an encrypted,
// version-specific proof of possession.
type AuthenticationToken struct {
	Version          int32
	EndpointIdentity EndpointIdentity
	EncryptedSecret  []byte
}

// NewAuthenticationToken returns a token holding copies of the given slices.
func NewAuthenticationToken(version int32, identity EndpointIdentity, secret []byte) *AuthenticationToken {
	return &AuthenticationToken{
		Version:          version,
		EndpointIdentity: NewEndpointIdentity(identity.Domain, identity.Identifier),
		EncryptedSecret:  bytes.Clone(secret),
	}
}

// Equal reports structural equality.
func (t *AuthenticationToken) Equal(other *AuthenticationToken) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Version == other.Version &&
		t.EndpointIdentity.Equal(other.EndpointIdentity) &&
		bytes.Equal(t.EncryptedSecret, other.EncryptedSecret)
}
