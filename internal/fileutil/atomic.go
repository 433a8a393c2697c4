// Package fileutil provides durable whole-file replacement.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempSuffix is appended to the target path to build the sibling temporary file.
const TempSuffix = ".tmp"

// AtomicWriter replaces file contents so that readers only ever observe the old
// complete file or the new complete file, never a partial write.
type AtomicWriter struct {
	perm   os.FileMode
	rename func(oldpath, newpath string) error
}

// NewAtomicWriter creates an AtomicWriter that leaves replaced files with perm.
func NewAtomicWriter(perm os.FileMode) *AtomicWriter {
	return &AtomicWriter{
		perm:   perm,
		rename: os.Rename,
	}
}

// Replace writes data to path+".tmp", flushes it to durable storage and renames it
// over path. On failure the previous content of path is left untouched.
func (w *AtomicWriter) Replace(path string, data []byte) error {
	tmpPath := path + TempSuffix

	// O_TRUNC discards a stale temp file left behind by an interrupted earlier write
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, w.perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, w.perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := w.rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	syncDir(filepath.Dir(path))

	return nil
}

// syncDir makes the rename itself durable. Not every platform allows opening or
// syncing a directory, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
