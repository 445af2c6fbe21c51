package cbc

import (
	"errors"
)

// CipherType identifies the cipher construction.
type CipherType string

const (
	// CipherAESCBCZeroIV is AES-CBC with a zero IV and PKCS#7 padding.
	CipherAESCBCZeroIV CipherType = "aes-cbc-zero-iv"
)

var (
	// ErrInvalidKeySize is returned for keys that are not 16, 24 or 32 bytes.
	ErrInvalidKeySize = errors.New("cbc: invalid key size, must be 16, 24, or 32 bytes")

	// ErrInvalidCiphertext is returned when the ciphertext is empty or not
	// a whole number of blocks.
	ErrInvalidCiphertext = errors.New("cbc: ciphertext is not a positive multiple of the block size")

	// ErrInvalidPadding is returned when the decrypted padding is malformed.
	ErrInvalidPadding = errors.New("cbc: invalid padding")
)

// Cipher encrypts and decrypts whole messages.
type Cipher interface {
	// Type returns the cipher type.
	Type() CipherType

	// Encrypt pads and encrypts plaintext.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt decrypts ciphertext and strips its padding.
	Decrypt(ciphertext []byte) ([]byte, error)

	// BlockSize returns the cipher block size in bytes.
	BlockSize() int
}

// pad appends PKCS#7 padding. A full block is added when plaintext is
// already aligned.
func pad(plaintext []byte, blockSize int) []byte {
	n := blockSize - len(plaintext)%blockSize
	padded := make([]byte, len(plaintext)+n)
	copy(padded, plaintext)
	for i := len(plaintext); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// unpad removes PKCS#7 padding.
func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}

	return data[:len(data)-n], nil
}
