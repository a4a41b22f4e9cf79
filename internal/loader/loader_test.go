package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

//nolint:funlen // test functions can be long
func TestLoad(t *testing.T) {
	ctx := context.Background()
	logger := log.NewTestLogger(t)
	content := []byte{0x52, 0x53, 0x43, 0x37, 0x01, 0x02}

	t.Run("read into memory", func(t *testing.T) {
		path := createTempFile(t, content)

		file, err := New(logger).Load(ctx, path, false)
		assert.NoError(t, err)
		assert.False(t, file.Mapped)
		assert.Equal(t, content, file.Data)
		assert.NoError(t, file.Close())
	})

	t.Run("map file", func(t *testing.T) {
		path := createTempFile(t, content)

		file, err := New(logger).Load(ctx, path, true)
		assert.NoError(t, err)
		assert.True(t, file.Mapped)
		assert.Equal(t, content, file.Data)
		assert.NoError(t, file.Close())
		assert.True(t, file.Data == nil)
		assert.NoError(t, file.Close())
	})

	t.Run("map empty file", func(t *testing.T) {
		path := createTempFile(t, nil)

		file, err := New(logger).Load(ctx, path, true)
		assert.NoError(t, err)
		assert.False(t, file.Mapped)
		assert.Equal(t, 0, len(file.Data))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New(logger).Load(ctx, "/nonexistent/file.ydr", false)
		assert.Error(t, err)
		assert.ErrorContains(t, err, "opening file")
	})

	t.Run("error on directory", func(t *testing.T) {
		_, err := New(logger).Load(ctx, t.TempDir(), false)
		assert.ErrorContains(t, err, "is a directory")
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.ytd")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
