package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"

	cryptoDomain "github.com/allisson/demands/internal/crypto/domain"
	recordDomain "github.com/allisson/demands/internal/record/domain"
	recordService "github.com/allisson/demands/internal/record/service"
)

// FileRepository persists the whole record table as one sealed data file. Every Save
// rewrites the file in full.
type FileRepository struct {
	path  string
	files *SealedFileStore
	codec *recordService.TableCodec
}

// NewFileRepository creates a FileRepository for the data file at path.
func NewFileRepository(
	path string,
	files *SealedFileStore,
	codec *recordService.TableCodec,
) *FileRepository {
	return &FileRepository{
		path:  path,
		files: files,
		codec: codec,
	}
}

// Path returns the data file path.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads every row of the data file, creating a header-only file first when none
// exists. The returned kind tells whether the file was encrypted or legacy plaintext.
func (r *FileRepository) Load(ctx context.Context) ([]recordDomain.Row, cryptoDomain.PayloadKind, error) {
	if _, err := os.Stat(r.path); errors.Is(err, fs.ErrNotExist) {
		if err := r.Save(ctx, nil); err != nil {
			return nil, cryptoDomain.Encrypted, err
		}
	}

	payload, err := r.files.Read(ctx, r.path)
	if err != nil {
		return nil, cryptoDomain.Encrypted, err
	}

	rows, err := r.codec.Decode(payload.Data)
	if err != nil {
		return nil, payload.Kind, err
	}
	return rows, payload.Kind, nil
}

// Save encodes and seals records, then atomically replaces the data file.
func (r *FileRepository) Save(ctx context.Context, records []recordDomain.Record) error {
	plaintext, err := r.codec.Encode(records)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(plaintext)

	return r.files.Write(ctx, r.path, plaintext)
}
