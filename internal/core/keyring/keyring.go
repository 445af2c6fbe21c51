package keyring

import (
	"bytes"
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/pkg/cmap"
	"github.com/yndnr/endpointauth-go/pkg/crypto/cbc"
)

// Key derivation parameters for version 1 tokens.
const (
	Iterations = 1000
	KeySize    = 16
)

// entry is an immutable cache value.
type entry struct {
	key    []byte
	cipher cbc.Cipher
}

// Keyring derives identity keys and encrypts token secrets with them.
// It is safe for concurrent use.
type Keyring struct {
	cache *cmap.Map[string, *entry]
}

// New creates an empty Keyring.
func New() *Keyring {
	return &Keyring{cache: cmap.New[string, *entry]()}
}

// DeriveKey returns the AES key for identity. The returned slice is a
// copy the caller may modify.
func (k *Keyring) DeriveKey(identity domain.EndpointIdentity) ([]byte, error) {
	e, err := k.lookup(identity)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(e.key), nil
}

// Encrypt encrypts plaintext under the identity key.
func (k *Keyring) Encrypt(identity domain.EndpointIdentity, plaintext []byte) ([]byte, error) {
	e, err := k.lookup(identity)
	if err != nil {
		return nil, domain.ErrEncryptionFailure.WithCause(err)
	}

	ciphertext, err := e.cipher.Encrypt(plaintext)
	if err != nil {
		return nil, domain.ErrEncryptionFailure.WithCause(err)
	}
	return ciphertext, nil
}

// Decrypt decrypts ciphertext under the identity key. Empty input,
// partial blocks and bad padding all fail with ErrDecryptionFailure.
func (k *Keyring) Decrypt(identity domain.EndpointIdentity, ciphertext []byte) ([]byte, error) {
	e, err := k.lookup(identity)
	if err != nil {
		return nil, domain.ErrDecryptionFailure.WithCause(err)
	}

	plaintext, err := e.cipher.Decrypt(ciphertext)
	if err != nil {
		return nil, domain.ErrDecryptionFailure.WithCause(err)
	}
	return plaintext, nil
}

// CacheSize returns the number of cached identities.
func (k *Keyring) CacheSize() int {
	return k.cache.Count()
}

// Forget drops the cached key for identity.
func (k *Keyring) Forget(identity domain.EndpointIdentity) {
	k.cache.Delete(identity.Key())
}

// lookup returns the cached entry for identity, deriving it on first use.
// Derivation runs outside any lock; concurrent first callers race to
// insert and all observe the winner.
func (k *Keyring) lookup(identity domain.EndpointIdentity) (*entry, error) {
	id := identity.Key()
	if e, ok := k.cache.Get(id); ok {
		return e, nil
	}

	key := Derive(identity)
	c, err := cbc.NewAESCBC(key)
	if err != nil {
		return nil, err
	}

	e, _ := k.cache.GetOrSet(id, &entry{key: key, cipher: c})
	return e, nil
}

// Derive computes the identity key without caching.
func Derive(identity domain.EndpointIdentity) []byte {
	return pbkdf2.Key([]byte(identity.Domain), identity.Identifier, Iterations, KeySize, sha1.New)
}
