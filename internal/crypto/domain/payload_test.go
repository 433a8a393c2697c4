package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/demands/internal/errors"
)

func TestPayload_IsLegacy(t *testing.T) {
	assert.False(t, Payload{Kind: Encrypted}.IsLegacy())
	assert.True(t, Payload{Kind: LegacyPlaintext}.IsLegacy())
}

func TestPayloadKind_String(t *testing.T) {
	assert.Equal(t, "encrypted", Encrypted.String())
	assert.Equal(t, "legacy_plaintext", LegacyPlaintext.String())
	assert.Equal(t, "unknown", PayloadKind(42).String())
}

func TestErrorKinds(t *testing.T) {
	for _, err := range []error{ErrInvalidKeyBase64, ErrKeyOverrideTooShort, ErrKeyFileTooShort, ErrInvalidKeySize} {
		assert.ErrorIs(t, err, apperrors.ErrConfig)
	}
	for _, err := range []error{ErrMalformedEnvelope, ErrTagMismatch} {
		assert.ErrorIs(t, err, apperrors.ErrIntegrity)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidInput)
	}
}
