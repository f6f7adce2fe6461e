package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "map.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{"a":1}`), 0644))

	rec := &Recorder{}
	cachePath := filepath.Join(dir, HashCacheFile)
	c := &Cached{Next: rec, Cache: LoadHashCache(cachePath)}

	require.NoError(t, c.Convert(context.Background(), doc))
	assert.Len(t, rec.Calls, 1)

	// no binary yet, so the converter runs again
	require.NoError(t, c.Convert(context.Background(), doc))
	assert.Len(t, rec.Calls, 2)

	require.NoError(t, os.WriteFile(BinPath(doc), []byte("bin"), 0644))
	require.NoError(t, c.Convert(context.Background(), doc))
	assert.Len(t, rec.Calls, 2, "unchanged document with a binary is skipped")

	// the cache survives a reload
	c = &Cached{Next: rec, Cache: LoadHashCache(cachePath)}
	require.NoError(t, c.Convert(context.Background(), doc))
	assert.Len(t, rec.Calls, 2)

	require.NoError(t, os.WriteFile(doc, []byte(`{"a":2}`), 0644))
	require.NoError(t, c.Convert(context.Background(), doc))
	assert.Len(t, rec.Calls, 3)
}

func TestCachedDoesNotRecordFailures(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "map.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{}`), 0644))
	require.NoError(t, os.WriteFile(BinPath(doc), []byte("old"), 0644))

	rec := &Recorder{Err: errors.New("boom")}
	c := &Cached{Next: rec, Cache: LoadHashCache(filepath.Join(dir, HashCacheFile))}

	assert.Error(t, c.Convert(context.Background(), doc))
	rec.Err = nil
	require.NoError(t, c.Convert(context.Background(), doc))
	assert.Len(t, rec.Calls, 2)
}

func TestLoadHashCacheInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), HashCacheFile)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	c := LoadHashCache(path)
	assert.Empty(t, c.Hashes)
	c.Record("x.json", "abc")
	require.NoError(t, c.Save())
	assert.Len(t, LoadHashCache(path).Hashes, 1)
}

func TestIsHashCache(t *testing.T) {
	assert.True(t, IsHashCache(filepath.Join("maps", HashCacheFile)))
	assert.True(t, IsHashCache(HashCacheFile))
	assert.False(t, IsHashCache(filepath.Join("maps", "map.json")))
}
