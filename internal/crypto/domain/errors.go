// Package domain defines the key material constants, payload variants, and errors
// used by the record store encryption layer.
package domain

import (
	"github.com/allisson/demands/internal/errors"
)

// Key material errors. All of them are configuration errors: the store cannot run
// until the operator fixes the key override or the key file.
var (
	// ErrInvalidKeyBase64 indicates the key override is not valid base64.
	ErrInvalidKeyBase64 = errors.Wrap(errors.ErrConfig, "key override is not valid base64")

	// ErrKeyOverrideTooShort indicates the decoded key override has fewer than KeySize bytes.
	ErrKeyOverrideTooShort = errors.Wrap(errors.ErrConfig, "key override must decode to at least 32 bytes")

	// ErrKeyFileTooShort indicates the key file holds fewer than KeySize bytes.
	ErrKeyFileTooShort = errors.Wrap(errors.ErrConfig, "key file must hold at least 32 bytes")

	// ErrInvalidKeySize indicates a key of the wrong length was passed to a cipher.
	ErrInvalidKeySize = errors.Wrap(errors.ErrConfig, "key must be exactly 32 bytes")
)

// Envelope errors. Both are integrity errors: plaintext is never returned with them.
var (
	// ErrMalformedEnvelope indicates the envelope body is not decodable or is shorter
	// than a nonce plus a tag.
	ErrMalformedEnvelope = errors.Wrap(errors.ErrIntegrity, "malformed envelope")

	// ErrTagMismatch indicates the integrity tag does not match: the data was modified
	// or was sealed with another key.
	ErrTagMismatch = errors.Wrap(errors.ErrIntegrity, "authentication tag mismatch")
)
