package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("name: celeste-mod\n"), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "celeste-mod", cfg.Name)
	assert.Equal(t, Default().TileSize, cfg.TileSize)
	assert.Equal(t, Default().Zoom, cfg.Zoom)
	assert.Equal(t, "E", cfg.Keys.ZoomIn)
	assert.Equal(t, 256, cfg.MaxUndo)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	src := `
tile_size: 8
zoom: {min: 0.5, max: 4, step: 1.2}
converter:
  command: cairn
  args: [json2bin, "{in}", "{out}"]
keys:
  undo: U
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(src), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.TileSize)
	assert.Equal(t, ZoomConfig{Min: 0.5, Max: 4, Step: 1.2}, cfg.Zoom)
	assert.Equal(t, "U", cfg.Keys.Undo)
	assert.Equal(t, "Q", cfg.Keys.ZoomOut)

	conv := cfg.Converter()
	assert.Equal(t, "cairn", conv.Command)
	assert.Equal(t, []string{"json2bin", "{in}", "{out}"}, conv.SaveArgs)

	v := cfg.View()
	assert.Equal(t, 8.0, v.TileSize)
	assert.Equal(t, 4.0, v.MaxZoom)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"zero tile size", "tile_size: 0\n"},
		{"inverted zoom", "zoom: {min: 2, max: 1}\n"},
		{"zoom step", "zoom: {step: 1}\n"},
		{"not yaml", "tile_size: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(tt.src), 0644))
			_, err := LoadConfig(dir)
			assert.Error(t, err)
		})
	}
}

func TestFindFrom(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "maps", "chapter1")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, configFileName), nil, 0644))

	got, err := findFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindFromNotFound(t *testing.T) {
	_, err := findFrom(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
