// Package service implements the key lifecycle and the authenticated envelope used to
// keep the record store encrypted at rest.
package service

import (
	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
)

// KeyProvider obtains the 32-byte symmetric key used for every seal and open.
type KeyProvider interface {
	// Key returns the key material. Callers own the returned slice.
	Key() ([]byte, error)
}

// StreamCipher turns data into same-length ciphertext using a keyed keystream.
// Encrypt and Decrypt are the same operation; applying either twice with the same
// key and nonce returns the input.
type StreamCipher interface {
	Encrypt(key, nonce, plaintext []byte) ([]byte, error)
	Decrypt(key, nonce, ciphertext []byte) ([]byte, error)
}

// Container seals plaintext into a tamper-evident blob and opens it again.
type Container interface {
	// Seal encrypts plaintext under a fresh random nonce and appends an integrity tag.
	Seal(key, plaintext []byte) ([]byte, error)

	// Open verifies and decrypts a sealed blob. Content without the envelope magic is
	// returned untouched as a LegacyPlaintext payload.
	Open(key, blob []byte) (cryptoDomain.Payload, error)
}
