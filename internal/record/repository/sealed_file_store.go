// Package repository implements file persistence for the record store: sealed files for
// the data file and backups, and plain files for bulk export and import.
package repository

import (
	"context"
	"os"
	"sync"

	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
	cryptoService "github.com/allisson/demands/internal/crypto/service"
	apperrors "github.com/allisson/demands/internal/errors"
	"github.com/allisson/demands/internal/fileutil"
)

// SealedFileStore reads and writes files wrapped in the authenticated envelope. The
// key is obtained from the KeyProvider on first use and kept until Close.
type SealedFileStore struct {
	keys      cryptoService.KeyProvider
	container cryptoService.Container
	writer    *fileutil.AtomicWriter

	mu  sync.Mutex
	key []byte
}

// NewSealedFileStore creates a SealedFileStore.
func NewSealedFileStore(
	keys cryptoService.KeyProvider,
	container cryptoService.Container,
	writer *fileutil.AtomicWriter,
) *SealedFileStore {
	return &SealedFileStore{
		keys:      keys,
		container: container,
		writer:    writer,
	}
}

// Read opens the sealed file at path. Files without the envelope are returned as
// LegacyPlaintext payloads.
func (s *SealedFileStore) Read(ctx context.Context, path string) (cryptoDomain.Payload, error) {
	key, err := s.resolveKey()
	if err != nil {
		return cryptoDomain.Payload{}, err
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return cryptoDomain.Payload{}, apperrors.Wrap(err, "failed to read sealed file")
	}

	payload, err := s.container.Open(key, blob)
	if err != nil {
		return cryptoDomain.Payload{}, apperrors.Wrapf(err, "failed to open %s", path)
	}
	return payload, nil
}

// Write seals plaintext and atomically replaces the file at path.
func (s *SealedFileStore) Write(ctx context.Context, path string, plaintext []byte) error {
	key, err := s.resolveKey()
	if err != nil {
		return err
	}

	blob, err := s.container.Seal(key, plaintext)
	if err != nil {
		return apperrors.Wrap(err, "failed to seal file")
	}

	if err := s.writer.Replace(path, blob); err != nil {
		return apperrors.Wrap(err, "failed to write sealed file")
	}
	return nil
}

// Close zeroes the cached key. The next Read or Write resolves it again.
func (s *SealedFileStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cryptoDomain.Zero(s.key)
	s.key = nil
}

func (s *SealedFileStore) resolveKey() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return s.key, nil
	}

	key, err := s.keys.Key()
	if err != nil {
		return nil, err
	}
	s.key = key
	return key, nil
}
