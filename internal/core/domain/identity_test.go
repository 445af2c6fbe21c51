package domain

import (
	"bytes"
	"strings"
	"testing"
)

func TestEndpointIdentity_Equal(t *testing.T) {
	base := NewEndpointIdentity("GLOBAL", []byte{1, 2, 3})

	tests := []struct {
		name  string
		other EndpointIdentity
		want  bool
	}{
		{"same content", NewEndpointIdentity("GLOBAL", []byte{1, 2, 3}), true},
		{"different domain", NewEndpointIdentity("LOCAL", []byte{1, 2, 3}), false},
		{"different identifier", NewEndpointIdentity("GLOBAL", []byte{1, 2, 4}), false},
		{"shorter identifier", NewEndpointIdentity("GLOBAL", []byte{1, 2}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}

	if !(EndpointIdentity{Domain: "x"}).Equal(EndpointIdentity{Domain: "x", Identifier: []byte{}}) {
		t.Error("nil and empty identifiers should be equal")
	}
}

func TestNewEndpointIdentity_Copies(t *testing.T) {
	ident := []byte{1, 2, 3}
	id := NewEndpointIdentity("GLOBAL", ident)

	ident[0] = 9
	if id.Identifier[0] != 1 {
		t.Error("NewEndpointIdentity should copy the identifier")
	}
}

func TestEndpointIdentity_Key(t *testing.T) {
	a := NewEndpointIdentity("ab", []byte("c"))
	b := NewEndpointIdentity("a", []byte("bc"))

	if a.Key() == b.Key() {
		t.Errorf("Key() collision: %q", a.Key())
	}
	if a.Key() != NewEndpointIdentity("ab", []byte("c")).Key() {
		t.Error("Key() should be stable for equal identities")
	}
}

func TestEndpointIdentity_String(t *testing.T) {
	tests := []struct {
		name string
		id   EndpointIdentity
		want string
	}{
		{
			name: "short identifier",
			id:   NewEndpointIdentity("GLOBAL", []byte{0x01, 0xab, 0xff}),
			want: "GLOBAL: 01ABFF",
		},
		{
			name: "empty identifier",
			id:   NewEndpointIdentity("GLOBAL", nil),
			want: "GLOBAL: ",
		},
		{
			name: "exactly limit",
			id:   NewEndpointIdentity("d", bytes.Repeat([]byte{0xaa}, 40)),
			want: "d: " + strings.Repeat("AA", 40),
		},
		{
			name: "truncated",
			id:   NewEndpointIdentity("d", bytes.Repeat([]byte{0xaa}, 41)),
			want: "d: " + strings.Repeat("AA", 40) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthenticationToken_Equal(t *testing.T) {
	id := NewEndpointIdentity("GLOBAL", []byte{1, 2, 3, 4, 5})
	a := NewAuthenticationToken(Version1, id, []byte{9, 9})

	if !a.Equal(NewAuthenticationToken(Version1, id, []byte{9, 9})) {
		t.Error("identical tokens should be equal")
	}
	if a.Equal(NewAuthenticationToken(2, id, []byte{9, 9})) {
		t.Error("tokens with different versions should differ")
	}
	if a.Equal(NewAuthenticationToken(Version1, id, []byte{9, 8})) {
		t.Error("tokens with different secrets should differ")
	}
	if a.Equal(nil) {
		t.Error("token should not equal nil")
	}
	var nilToken *AuthenticationToken
	if !nilToken.Equal(nil) {
		t.Error("nil should equal nil")
	}
}
