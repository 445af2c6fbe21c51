// Package keyring derives and caches per-identity token keys.
//
// Keys are PBKDF2-HMAC-SHA1 over the identity: the domain is the
// password and the identifier is the salt. The derivation is
// deterministic, so the cache is never a source of truth; it only saves
// the 1000-iteration cost on repeated calls.
//
// Version 1 tokens encrypt with AES-128-CBC under a zero IV. The
// construction is kept for wire compatibility with existing peers; a
// fixed IV leaks equality of identical plaintexts under one key.
package keyring
