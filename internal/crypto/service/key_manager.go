package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
)

// KeyManager resolves the store key from, in order:
//
//  1. an override value (normally the DEMANDS_APP_KEY environment variable),
//     base64-encoded and decoding to at least 32 bytes;
//  2. the key file, holding at least 32 raw bytes;
//  3. a freshly generated key, persisted to the key file with mode 0600.
//
// Only the first 32 bytes of an override or key file are used.
type KeyManager struct {
	keyPath  string
	override string
	random   io.Reader
}

// NewKeyManager creates a KeyManager for the given key file path. An empty override
// means no override is configured.
func NewKeyManager(keyPath, override string) *KeyManager {
	return &KeyManager{
		keyPath:  keyPath,
		override: override,
		random:   rand.Reader,
	}
}

// Key returns the resolved 32-byte key, creating the key file on first use.
func (k *KeyManager) Key() ([]byte, error) {
	if override := strings.TrimSpace(k.override); override != "" {
		return decodeKeyOverride(override)
	}

	data, err := os.ReadFile(k.keyPath)
	switch {
	case err == nil:
		defer cryptoDomain.Zero(data)
		if len(data) < cryptoDomain.KeySize {
			return nil, fmt.Errorf("%w: %s has %d bytes", cryptoDomain.ErrKeyFileTooShort, k.keyPath, len(data))
		}
		return cloneKey(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return k.generate()
	default:
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
}

func (k *KeyManager) generate() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(k.random, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	if dir := filepath.Dir(k.keyPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create key directory: %w", err)
		}
	}

	// O_EXCL: never clobber a key file another process created in the meantime
	f, err := os.OpenFile(k.keyPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create key file: %w", err)
	}
	if _, err := f.Write(key); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to sync key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close key file: %w", err)
	}

	// umask may have narrowed the mode on create but never widened it; make it exact
	if err := os.Chmod(k.keyPath, 0o600); err != nil {
		return nil, fmt.Errorf("failed to restrict key file permissions: %w", err)
	}

	return key, nil
}

func decodeKeyOverride(value string) ([]byte, error) {
	var decoded []byte
	var err error
	for _, enc := range []*base64.Encoding{
		base64.URLEncoding,
		base64.RawURLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	} {
		decoded, err = enc.DecodeString(value)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKeyBase64, err)
	}
	defer cryptoDomain.Zero(decoded)

	if len(decoded) < cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", cryptoDomain.ErrKeyOverrideTooShort, len(decoded))
	}

	return cloneKey(decoded), nil
}

func cloneKey(material []byte) []byte {
	key := make([]byte, cryptoDomain.KeySize)
	copy(key, material[:cryptoDomain.KeySize])
	return key
}

// GenerateEncodedKey returns a new random key encoded as URL-safe base64, suitable
// for the DEMANDS_APP_KEY environment variable.
func GenerateEncodedKey() (string, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	return base64.URLEncoding.EncodeToString(key), nil
}
