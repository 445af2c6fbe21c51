package domain

import (
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"
)

// identityDisplayLimit bounds how many identifier bytes String renders.
const identityDisplayLimit = 40

// EndpointIdentity names a calling endpoint by a domain and a raw
// identifier. The pair doubles as the pre-shared credential from which
// token keys are derived.
type EndpointIdentity struct {
	Domain     string
	Identifier []byte
}

// NewEndpointIdentity returns an identity holding its own copy of identifier.
func NewEndpointIdentity(domainName string, identifier []byte) EndpointIdentity {
	return EndpointIdentity{
		Domain:     domainName,
		Identifier: bytes.Clone(identifier),
	}
}

// Equal reports whether both identities carry the same domain and the
// same identifier bytes. A nil identifier equals an empty one.
func (id EndpointIdentity) Equal(other EndpointIdentity) bool {
	return id.Domain == other.Domain && bytes.Equal(id.Identifier, other.Identifier)
}

// Key returns a string that is unique per identity, usable as a map key.
// The domain is length-prefixed so no (domain, identifier) split can
// collide with another.
func (id EndpointIdentity) Key() string {
	var sb strings.Builder
	sb.Grow(8 + len(id.Domain) + len(id.Identifier))
	sb.WriteString(strconv.Itoa(len(id.Domain)))
	sb.WriteByte(':')
	sb.WriteString(id.Domain)
	sb.Write(id.Identifier)
	return sb.String()
}

// String renders "domain: HEX" with the identifier upper-cased and
// truncated after 40 bytes.
func (id EndpointIdentity) String() string {
	ident := id.Identifier
	suffix := ""
	if len(ident) > identityDisplayLimit {
		ident = ident[:identityDisplayLimit]
		suffix = "..."
	}
	return id.Domain + ": " + strings.ToUpper(hex.EncodeToString(ident)) + suffix
}
