package formatter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bloodmagesoftware/summit/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compact = `{"__name":"Map","__children":[{"__name":"levels","__children":[{"__name":"level","name":"a","x":0,"y":0,"width":20,"height":20,"__children":[{"__name":"solids","innerText":"9"}]}]}]}`

func TestFormatThenCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(path, []byte(compact), 0644))

	assert.Error(t, Check([]string{path}, view.TileSize))

	require.NoError(t, Format([]string{path}, view.TileSize))
	assert.NoError(t, Check([]string{path}, view.TileSize))

	// formatting is stable
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, Format([]string{path}, view.TileSize))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestFormatRejectsInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"__name":"Map"}`), 0644))

	assert.Error(t, Format([]string{path}, view.TileSize))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"__name":"Map"}`, string(raw), "invalid files are left alone")
}
