package service

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
)

func TestSHA256StreamCipher(t *testing.T) {
	c := NewStreamCipher()
	key := bytes.Repeat([]byte{0xAB}, cryptoDomain.KeySize)
	nonce := bytes.Repeat([]byte{0x01}, cryptoDomain.NonceSize)

	sizes := []int{0, 1, 31, 32, 33, 64, 1000}
	for _, size := range sizes {
		t.Run(fmt.Sprintf("round trip %d bytes", size), func(t *testing.T) {
			plaintext := bytes.Repeat([]byte{'x'}, size)

			ciphertext, err := c.Encrypt(key, nonce, plaintext)
			require.NoError(t, err)
			assert.Len(t, ciphertext, size)

			decrypted, err := c.Decrypt(key, nonce, ciphertext)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
		})
	}

	t.Run("first block matches sha256 of key nonce counter", func(t *testing.T) {
		seed := append(append(append([]byte{}, key...), nonce...), 0, 0, 0, 0, 0, 0, 0, 0)
		expected := sha256.Sum256(seed)

		stream, err := c.Encrypt(key, nonce, make([]byte, cryptoDomain.BlockSize))
		require.NoError(t, err)
		assert.Equal(t, expected[:], stream)
	})

	t.Run("second block uses counter one", func(t *testing.T) {
		seed := append(append(append([]byte{}, key...), nonce...), 0, 0, 0, 0, 0, 0, 0, 1)
		expected := sha256.Sum256(seed)

		stream, err := c.Encrypt(key, nonce, make([]byte, 2*cryptoDomain.BlockSize))
		require.NoError(t, err)
		assert.Equal(t, expected[:], stream[cryptoDomain.BlockSize:])
	})

	t.Run("different nonce gives different ciphertext", func(t *testing.T) {
		plaintext := []byte("same plaintext")
		a, err := c.Encrypt(key, nonce, plaintext)
		require.NoError(t, err)
		b, err := c.Encrypt(key, bytes.Repeat([]byte{0x02}, cryptoDomain.NonceSize), plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("invalid key size", func(t *testing.T) {
		_, err := c.Encrypt([]byte("short"), nonce, []byte("data"))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}
