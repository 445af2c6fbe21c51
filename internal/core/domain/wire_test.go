package domain

import (
	"bytes"
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

var goldenSecret = []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6}

func goldenToken() *AuthenticationToken {
	return NewAuthenticationToken(Version1,
		NewEndpointIdentity("GLOBAL", []byte{1, 2, 3, 4, 5}), goldenSecret)
}

func TestMarshalToken_Golden(t *testing.T) {
	want := append([]byte{
		0x08, 0x01,
		0x12, 0x0F,
		0x0A, 0x06, 0x47, 0x4C, 0x4F, 0x42, 0x41, 0x4C,
		0x12, 0x05, 0x01, 0x02, 0x03, 0x04, 0x05,
		0x1A, 0x10,
	}, goldenSecret...)

	got := MarshalToken(goldenToken())
	if !bytes.Equal(got, want) {
		t.Errorf("MarshalToken() = %x\nwant             %x", got, want)
	}
	if len(got) != 0x25 {
		t.Errorf("len = %d, want 37", len(got))
	}
}

func TestMarshalToken_EmitsEmptyFields(t *testing.T) {
	got := MarshalToken(&AuthenticationToken{})
	want := []byte{0x08, 0x00, 0x12, 0x04, 0x0A, 0x00, 0x12, 0x00, 0x1A, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("MarshalToken(empty) = %x, want %x", got, want)
	}

	back, err := UnmarshalToken(got)
	if err != nil {
		t.Fatalf("UnmarshalToken() error = %v", err)
	}
	if back.Version != 0 || back.EndpointIdentity.Domain != "" || len(back.EncryptedSecret) != 0 {
		t.Errorf("UnmarshalToken() = %+v, want zero token", back)
	}
}

func TestUnmarshalToken_RoundTrip(t *testing.T) {
	tokens := []*AuthenticationToken{
		goldenToken(),
		NewAuthenticationToken(7, NewEndpointIdentity("日本", bytes.Repeat([]byte{0xFE}, 300)), nil),
		NewAuthenticationToken(-1, NewEndpointIdentity("", nil), []byte{0}),
	}

	for _, tok := range tokens {
		got, err := UnmarshalToken(MarshalToken(tok))
		if err != nil {
			t.Fatalf("UnmarshalToken() error = %v", err)
		}
		if !got.Equal(tok) {
			t.Errorf("round trip = %+v, want %+v", got, tok)
		}
	}
}

func TestUnmarshalToken_VersionTruncatesToInt32(t *testing.T) {
	b := protowire.AppendTag(nil, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, 0x1_0000_0001)
	b = append(b, MarshalToken(goldenToken())[2:]...)

	got, err := UnmarshalToken(b)
	if err != nil {
		t.Fatalf("UnmarshalToken() error = %v", err)
	}
	if got.Version != Version1 {
		t.Errorf("Version = %d, want %d", got.Version, Version1)
	}
}

func TestUnmarshalToken_SkipsUnknownFields(t *testing.T) {
	b := MarshalToken(goldenToken())
	b = protowire.AppendTag(b, 15, protowire.BytesType)
	b = protowire.AppendString(b, "future")
	b = protowire.AppendTag(b, 16, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 42)

	got, err := UnmarshalToken(b)
	if err != nil {
		t.Fatalf("UnmarshalToken() error = %v", err)
	}
	if !got.Equal(goldenToken()) {
		t.Errorf("UnmarshalToken() = %+v, want golden", got)
	}
}

func TestUnmarshalToken_Malformed(t *testing.T) {
	identity := marshalIdentity(NewEndpointIdentity("GLOBAL", []byte{1}))

	build := func(fn func(b []byte) []byte) []byte { return fn(nil) }

	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"garbage tag", []byte{0xFF}},
		{"missing version", build(func(b []byte) []byte {
			b = protowire.AppendTag(b, fieldEndpointIdentity, protowire.BytesType)
			b = protowire.AppendBytes(b, identity)
			b = protowire.AppendTag(b, fieldEncryptedSecret, protowire.BytesType)
			return protowire.AppendBytes(b, []byte{1})
		})},
		{"missing identity", build(func(b []byte) []byte {
			b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
			b = protowire.AppendVarint(b, 1)
			b = protowire.AppendTag(b, fieldEncryptedSecret, protowire.BytesType)
			return protowire.AppendBytes(b, []byte{1})
		})},
		{"missing secret", build(func(b []byte) []byte {
			b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
			b = protowire.AppendVarint(b, 1)
			b = protowire.AppendTag(b, fieldEndpointIdentity, protowire.BytesType)
			return protowire.AppendBytes(b, identity)
		})},
		{"version wire type", build(func(b []byte) []byte {
			b = protowire.AppendTag(b, fieldVersion, protowire.BytesType)
			return protowire.AppendBytes(b, []byte{1})
		})},
		{"secret wire type", build(func(b []byte) []byte {
			b = protowire.AppendTag(b, fieldEncryptedSecret, protowire.VarintType)
			return protowire.AppendVarint(b, 1)
		})},
		{"truncated secret", MarshalToken(goldenToken())[:30]},
		{"missing domain", build(func(b []byte) []byte {
			var inner []byte
			inner = protowire.AppendTag(inner, fieldIdentifier, protowire.BytesType)
			inner = protowire.AppendBytes(inner, []byte{1})
			b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
			b = protowire.AppendVarint(b, 1)
			b = protowire.AppendTag(b, fieldEndpointIdentity, protowire.BytesType)
			b = protowire.AppendBytes(b, inner)
			b = protowire.AppendTag(b, fieldEncryptedSecret, protowire.BytesType)
			return protowire.AppendBytes(b, []byte{1})
		})},
		{"invalid utf8 domain", build(func(b []byte) []byte {
			var inner []byte
			inner = protowire.AppendTag(inner, fieldDomain, protowire.BytesType)
			inner = protowire.AppendBytes(inner, []byte{0xC3, 0x28})
			inner = protowire.AppendTag(inner, fieldIdentifier, protowire.BytesType)
			inner = protowire.AppendBytes(inner, []byte{1})
			b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
			b = protowire.AppendVarint(b, 1)
			b = protowire.AppendTag(b, fieldEndpointIdentity, protowire.BytesType)
			b = protowire.AppendBytes(b, inner)
			b = protowire.AppendTag(b, fieldEncryptedSecret, protowire.BytesType)
			return protowire.AppendBytes(b, []byte{1})
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalToken(tt.buf)
			if !errors.Is(err, ErrMalformedEnvelope) {
				t.Errorf("UnmarshalToken() error = %v, want ErrMalformedEnvelope", err)
			}
		})
	}
}
