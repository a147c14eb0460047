package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSaveAndDelete(t *testing.T) {
	t.Parallel()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	url, err := fs.SavePlaceImage("image/png", strings.NewReader("fake png bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, PublicPrefix))
	assert.True(t, strings.HasSuffix(url, ".png"))

	onDisk := filepath.Join(fs.Dir(), strings.TrimPrefix(url, PublicPrefix))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))

	fs.DeleteByPublicURL(url)
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreRejectsUnknownContentType(t *testing.T) {
	t.Parallel()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.SavePlaceImage("application/pdf", strings.NewReader("%PDF"))
	require.Error(t, err)

	entries, err := os.ReadDir(fs.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStoreUniqueNames(t *testing.T) {
	t.Parallel()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first, err := fs.SavePlaceImage("image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := fs.SavePlaceImage("image/jpeg", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestFileStoreDeleteIgnoresForeignURLs(t *testing.T) {
	t.Parallel()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	// nothing to remove, must not panic or touch the dir
	fs.DeleteByPublicURL("https://example.com/elsewhere.png")
	fs.DeleteByPublicURL("")
}
