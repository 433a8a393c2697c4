package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriter_Replace(t *testing.T) {
	t.Run("creates new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		w := NewAtomicWriter(0o600)

		require.NoError(t, w.Replace(path, []byte("first")))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first", string(content))
		assert.NoFileExists(t, path+TempSuffix)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("replaces existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o600))
		w := NewAtomicWriter(0o600)

		require.NoError(t, w.Replace(path, []byte("new")))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("overwrites stale temp file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path+TempSuffix, []byte("garbage from a crash"), 0o600))
		w := NewAtomicWriter(0o600)

		require.NoError(t, w.Replace(path, []byte("fresh")))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "fresh", string(content))
		assert.NoFileExists(t, path+TempSuffix)
	})

	t.Run("crash before rename keeps original intact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		original := []byte("original\x00bytes\n")
		require.NoError(t, os.WriteFile(path, original, 0o600))

		var renamed bool
		w := NewAtomicWriter(0o600)
		w.rename = func(oldpath, newpath string) error {
			// the temp file is complete at this point
			content, err := os.ReadFile(oldpath)
			require.NoError(t, err)
			assert.Equal(t, "replacement", string(content))
			renamed = true
			return errors.New("simulated crash")
		}

		err := w.Replace(path, []byte("replacement"))
		assert.ErrorContains(t, err, "failed to rename temp file")
		assert.True(t, renamed)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, original, content)
		assert.NoFileExists(t, path+TempSuffix)
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "data.csv")
		w := NewAtomicWriter(0o600)

		err := w.Replace(path, []byte("x"))
		assert.ErrorContains(t, err, "failed to create temp file")
	})
}
