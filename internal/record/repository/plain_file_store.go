package repository

import (
	"context"
	"os"

	apperrors "github.com/allisson/demands/internal/errors"
	"github.com/allisson/demands/internal/fileutil"
)

// PlainFileStore reads and writes unencrypted files such as bulk exports.
type PlainFileStore struct {
	writer *fileutil.AtomicWriter
}

// NewPlainFileStore creates a PlainFileStore.
func NewPlainFileStore(writer *fileutil.AtomicWriter) *PlainFileStore {
	return &PlainFileStore{writer: writer}
}

// Read returns the content of the file at path.
func (s *PlainFileStore) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read file")
	}
	return data, nil
}

// Write atomically replaces the file at path with data.
func (s *PlainFileStore) Write(ctx context.Context, path string, data []byte) error {
	if err := s.writer.Replace(path, data); err != nil {
		return apperrors.Wrap(err, "failed to write file")
	}
	return nil
}
