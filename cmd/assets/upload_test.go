package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryKey(t *testing.T) {
	key := GalleryKey("/tmp/Loft Kitchen.JPG")
	assert.True(t, strings.HasPrefix(key, "gallery/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, GalleryKey("/tmp/Loft Kitchen.JPG"))
}

func TestDetectContentType(t *testing.T) {
	dir := t.TempDir()

	// PNG signature without a telling extension.
	path := filepath.Join(dir, "upload")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n0000"), 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	ct, err := detectContentType(f, path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	pos, err := f.Seek(0, 1)
	require.NoError(t, err)
	assert.Zero(t, pos)
}
