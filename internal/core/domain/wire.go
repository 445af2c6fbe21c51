package domain

import (
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the AuthenticationToken message.
const (
	fieldVersion          protowire.Number = 1
	fieldEndpointIdentity protowire.Number = 2
	fieldEncryptedSecret  protowire.Number = 3
)

// Field numbers of the nested EndpointIdentity message.
const (
	fieldDomain     protowire.Number = 1
	fieldIdentifier protowire.Number = 2
)

// MarshalToken encodes t as a protobuf AuthenticationToken message.
// Every field is emitted in field-number order, including empty ones.
func MarshalToken(t *AuthenticationToken) []byte {
	identity := marshalIdentity(t.EndpointIdentity)

	b := make([]byte, 0, 8+len(identity)+len(t.EncryptedSecret))
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(int64(t.Version)))
	b = protowire.AppendTag(b, fieldEndpointIdentity, protowire.BytesType)
	b = protowire.AppendBytes(b, identity)
	b = protowire.AppendTag(b, fieldEncryptedSecret, protowire.BytesType)
	b = protowire.AppendBytes(b, t.EncryptedSecret)
	return b
}

func marshalIdentity(id EndpointIdentity) []byte {
	b := make([]byte, 0, 4+len(id.Domain)+len(id.Identifier))
	b = protowire.AppendTag(b, fieldDomain, protowire.BytesType)
	b = protowire.AppendString(b, id.Domain)
	b = protowire.AppendTag(b, fieldIdentifier, protowire.BytesType)
	b = protowire.AppendBytes(b, id.Identifier)
	return b
}

// UnmarshalToken decodes a protobuf AuthenticationToken message.
//
// All fields are required. Unknown fields are skipped. Failures are
// returned as ErrMalformedEnvelope.
func UnmarshalToken(b []byte) (*AuthenticationToken, error) {
	var t AuthenticationToken
	var hasVersion, hasIdentity, hasSecret bool

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed("token tag", protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case fieldVersion:
			if typ != protowire.VarintType {
				return nil, wireTypeMismatch("version", typ)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, malformed("version", protowire.ParseError(n))
			}
			// int32 semantics: high bits of an oversized varint are dropped.
			t.Version = int32(v)
			hasVersion = true
			b = b[n:]

		case fieldEndpointIdentity:
			if typ != protowire.BytesType {
				return nil, wireTypeMismatch("endpointIdentity", typ)
			}
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, malformed("endpointIdentity", protowire.ParseError(n))
			}
			id, err := unmarshalIdentity(v)
			if err != nil {
				return nil, err
			}
			t.EndpointIdentity = id
			hasIdentity = true
			b = b[n:]

		case fieldEncryptedSecret:
			if typ != protowire.BytesType {
				return nil, wireTypeMismatch("encryptedSecret", typ)
			}
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, malformed("encryptedSecret", protowire.ParseError(n))
			}
			t.EncryptedSecret = append([]byte{}, v...)
			hasSecret = true
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, malformed(fmt.Sprintf("unknown field %d", num), protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	switch {
	case !hasVersion:
		return nil, missingField("version")
	case !hasIdentity:
		return nil, missingField("endpointIdentity")
	case !hasSecret:
		return nil, missingField("encryptedSecret")
	}
	return &t, nil
}

func unmarshalIdentity(b []byte) (EndpointIdentity, error) {
	var id EndpointIdentity
	var hasDomain, hasIdent bool

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return id, malformed("endpointIdentity tag", protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case fieldDomain:
			if typ != protowire.BytesType {
				return id, wireTypeMismatch("domain", typ)
			}
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return id, malformed("domain", protowire.ParseError(n))
			}
			if !utf8.Valid(v) {
				return id, ErrMalformedEnvelope.WithDetails("domain is not valid UTF-8")
			}
			id.Domain = string(v)
			hasDomain = true
			b = b[n:]

		case fieldIdentifier:
			if typ != protowire.BytesType {
				return id, wireTypeMismatch("identifier", typ)
			}
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return id, malformed("identifier", protowire.ParseError(n))
			}
			id.Identifier = append([]byte{}, v...)
			hasIdent = true
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return id, malformed(fmt.Sprintf("unknown identity field %d", num), protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	switch {
	case !hasDomain:
		return id, missingField("endpointIdentity.domain")
	case !hasIdent:
		return id, missingField("endpointIdentity.identifier")
	}
	return id, nil
}

func malformed(what string, cause error) *DomainError {
	return ErrMalformedEnvelope.WithDetails("bad " + what).WithCause(cause)
}

func wireTypeMismatch(field string, got protowire.Type) *DomainError {
	return ErrMalformedEnvelope.WithDetails(fmt.Sprintf("field %s has wire type %d", field, got))
}

func missingField(field string) *DomainError {
	return ErrMalformedEnvelope.WithDetails("missing required field " + field)
}
