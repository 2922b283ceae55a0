package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/media")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "small.gif", "image/gif", strings.NewReader("gifbytes"), 8)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/"))
	assert.True(t, strings.HasSuffix(url, ".gif"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/media/")))
	require.NoError(t, err)
	assert.Equal(t, "gifbytes", string(data))
}

func TestDiskStoreUniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/media")
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "a.png", "image/png", strings.NewReader("x"), 1)
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "a.png", "image/png", strings.NewReader("y"), 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestObjectNameKeepsExtension(t *testing.T) {
	assert.True(t, strings.HasSuffix(objectName("photo.jpeg"), ".jpeg"))
	assert.False(t, strings.Contains(objectName("noext"), "."))
}
