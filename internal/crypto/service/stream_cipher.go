package service

import (
	"crypto/sha256"
	"encoding/binary"

	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
)

// SHA256StreamCipher is a counter-mode keystream built from SHA-256.
//
// Block i of the keystream is SHA256(key || nonce || be64(i)). The keystream is XORed
// against the input in 32-byte blocks, truncated on the final partial block, so the
// output always has the input's length.
//
// A nonce must never be reused with the same key for different plaintexts: the
// keystream would repeat and XORing two ciphertexts would cancel it out. The
// envelope container draws a fresh random nonce for every seal.
type SHA256StreamCipher struct{}

// NewStreamCipher creates the SHA-256 keystream cipher.
func NewStreamCipher() *SHA256StreamCipher {
	return &SHA256StreamCipher{}
}

// Encrypt XORs plaintext with the keystream derived from key and nonce.
func (c *SHA256StreamCipher) Encrypt(key, nonce, plaintext []byte) ([]byte, error) {
	return c.xorKeyStream(key, nonce, plaintext)
}

// Decrypt XORs ciphertext with the keystream derived from key and nonce.
func (c *SHA256StreamCipher) Decrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	return c.xorKeyStream(key, nonce, ciphertext)
}

func (c *SHA256StreamCipher) xorKeyStream(key, nonce, in []byte) ([]byte, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	out := make([]byte, len(in))

	// key || nonce || counter, the counter is rewritten in place for every block
	seed := make([]byte, 0, len(key)+len(nonce)+8)
	seed = append(seed, key...)
	seed = append(seed, nonce...)
	seed = append(seed, make([]byte, 8)...)
	counter := seed[len(seed)-8:]
	defer cryptoDomain.Zero(seed)

	for offset, block := 0, uint64(0); offset < len(in); offset, block = offset+cryptoDomain.BlockSize, block+1 {
		binary.BigEndian.PutUint64(counter, block)
		stream := sha256.Sum256(seed)

		end := min(offset+cryptoDomain.BlockSize, len(in))
		for i := offset; i < end; i++ {
			out[i] = in[i] ^ stream[i-offset]
		}
	}

	return out, nil
}
