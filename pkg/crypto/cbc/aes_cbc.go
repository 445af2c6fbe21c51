package cbc

import (
	"crypto/aes"
	"crypto/cipher"
)

// AESCBC implements AES-CBC with a zero IV.
type AESCBC struct {
	block cipher.Block
}

// NewAESCBC creates a new AES-CBC cipher.
//
// Key must be 16, 24, or 32 bytes for AES-128, AES-192, or AES-256.
func NewAESCBC(key []byte) (*AESCBC, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return &AESCBC{block: block}, nil
}

// Type returns the cipher type.
func (c *AESCBC) Type() CipherType {
	return CipherAESCBCZeroIV
}

// BlockSize returns the AES block size.
func (c *AESCBC) BlockSize() int {
	return aes.BlockSize
}

// Encrypt pads plaintext and encrypts it under a zero IV.
func (c *AESCBC) Encrypt(plaintext []byte) ([]byte, error) {
	padded := pad(plaintext, aes.BlockSize)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, zeroIV()).CryptBlocks(ciphertext, padded)

	return ciphertext, nil
}

// Decrypt decrypts ciphertext under a zero IV and removes the padding.
func (c *AESCBC) Decrypt(ciphertext []byte) ([]byte, error) {
	// CryptBlocks panics on partial blocks.
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidCiphertext
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, zeroIV()).CryptBlocks(plaintext, ciphertext)

	return unpad(plaintext, aes.BlockSize)
}

func zeroIV() []byte {
	return make([]byte, aes.BlockSize)
}
