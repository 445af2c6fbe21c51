// Package cbc provides the deterministic AES-CBC cipher used by version 1
// endpoint tokens.
//
// The construction is fixed by the token wire format:
//
//   - AES-128/192/256 selected by key length
//   - CBC mode with an all-zero initialization vector
//   - PKCS#7 padding
//
// Limitations:
//
// A zero IV combined with one key per identity means equal plaintexts
// encrypt to equal ciphertexts, and there is no integrity tag. The cipher
// exists for compatibility with deployed peers; new protocols should use
// an AEAD instead.
package cbc
