package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/resourcehub/internal/bookmarks"
	"github.com/dmitrijs2005/resourcehub/internal/config"
	"github.com/dmitrijs2005/resourcehub/internal/dispatch"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
	"github.com/dmitrijs2005/resourcehub/internal/objectstore"
)

func TestOpenSessionStores_Memory(t *testing.T) {
	b, h, closeFn, err := openSessionStores(context.Background(), &config.Config{}, logging.Discard())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &bookmarks.MemoryStore{}, b)
	assert.IsType(t, &dispatch.MemoryHandoffStore{}, h)
}

func TestOpenSessionStores_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{RedisAddr: mr.Addr()}

	b, h, closeFn, err := openSessionStores(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &bookmarks.RedisStore{}, b)
	assert.IsType(t, &dispatch.RedisHandoffStore{}, h)

	require.NoError(t, b.Add(context.Background(), "u1", "resource", "A"))
	assert.True(t, mr.Exists(bookmarks.Key("u1", "resource")))
}

func TestOpenObjectStore_LocalWithoutEndpoint(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	s, err := openObjectStore(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &objectstore.LocalStore{}, s)

	info, err := os.Stat(filepath.Join(dir, localUploadDir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
