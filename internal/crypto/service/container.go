package service

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
)

// envelopeFamily is the prefix shared by every envelope version. A first line that
// starts with it but is not the current magic is an unknown or damaged envelope and
// must never be passed through as legacy plaintext.
const envelopeFamily = "MYDEMANDS_ENC_"

// bodyEncoding encodes nonce || ciphertext || tag. Decoding is strict so that
// flipped padding bits are rejected instead of silently ignored.
var bodyEncoding = base64.URLEncoding

// EnvelopeContainer implements Container with the on-disk envelope format:
//
//	MYDEMANDS_ENC_V1\n
//	base64url(nonce[16] || ciphertext || tag[32])
//
// where tag = HMAC-SHA256(key, magic || nonce || ciphertext).
type EnvelopeContainer struct {
	cipher StreamCipher
	random io.Reader
}

// NewContainer creates an envelope container on top of the given stream cipher.
func NewContainer(cipher StreamCipher) *EnvelopeContainer {
	return &EnvelopeContainer{
		cipher: cipher,
		random: rand.Reader,
	}
}

// Seal encrypts plaintext under a fresh random nonce and returns the envelope bytes.
func (c *EnvelopeContainer) Seal(key, plaintext []byte) ([]byte, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext, err := c.cipher.Encrypt(key, nonce, plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}

	packed := make([]byte, 0, len(nonce)+len(ciphertext)+cryptoDomain.TagSize)
	packed = append(packed, nonce...)
	packed = append(packed, ciphertext...)
	packed = append(packed, computeTag(key, nonce, ciphertext)...)

	var out bytes.Buffer
	out.Grow(len(cryptoDomain.EnvelopeMagic) + 1 + bodyEncoding.EncodedLen(len(packed)))
	out.WriteString(cryptoDomain.EnvelopeMagic)
	out.WriteByte('\n')
	out.WriteString(bodyEncoding.EncodeToString(packed))

	return out.Bytes(), nil
}

// Open verifies the integrity tag in constant time and only then decrypts.
//
// Content that does not start with the magic line is returned unchanged as a
// LegacyPlaintext payload so files written before encryption existed stay readable.
func (c *EnvelopeContainer) Open(key, blob []byte) (cryptoDomain.Payload, error) {
	header := []byte(cryptoDomain.EnvelopeMagic + "\n")
	if !bytes.HasPrefix(blob, header) {
		if bytes.HasPrefix(blob, []byte(envelopeFamily)) {
			return cryptoDomain.Payload{}, fmt.Errorf("%w: unknown envelope header", cryptoDomain.ErrMalformedEnvelope)
		}
		return cryptoDomain.Payload{Kind: cryptoDomain.LegacyPlaintext, Data: blob}, nil
	}

	if len(key) != cryptoDomain.KeySize {
		return cryptoDomain.Payload{}, cryptoDomain.ErrInvalidKeySize
	}

	body := bytes.TrimSpace(blob[len(header):])
	raw := make([]byte, bodyEncoding.DecodedLen(len(body)))
	n, err := bodyEncoding.Strict().Decode(raw, body)
	if err != nil {
		return cryptoDomain.Payload{}, fmt.Errorf("%w: %v", cryptoDomain.ErrMalformedEnvelope, err)
	}
	raw = raw[:n]

	if len(raw) < cryptoDomain.NonceSize+cryptoDomain.TagSize {
		return cryptoDomain.Payload{}, fmt.Errorf("%w: body too short", cryptoDomain.ErrMalformedEnvelope)
	}

	nonce := raw[:cryptoDomain.NonceSize]
	ciphertext := raw[cryptoDomain.NonceSize : len(raw)-cryptoDomain.TagSize]
	tag := raw[len(raw)-cryptoDomain.TagSize:]

	if !hmac.Equal(tag, computeTag(key, nonce, ciphertext)) {
		return cryptoDomain.Payload{}, cryptoDomain.ErrTagMismatch
	}

	plaintext, err := c.cipher.Decrypt(key, nonce, ciphertext)
	if err != nil {
		return cryptoDomain.Payload{}, fmt.Errorf("failed to decrypt: %w", err)
	}

	return cryptoDomain.Payload{Kind: cryptoDomain.Encrypted, Data: plaintext}, nil
}

func computeTag(key, nonce, ciphertext []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(cryptoDomain.EnvelopeMagic))
	mac.Write(nonce)
	mac.Write(ciphertext)
	return mac.Sum(nil)
}
