package linter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloodmagesoftware/summit/converter"
	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/bloodmagesoftware/summit/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *mapdoc.Document {
	t.Helper()
	doc, err := mapdoc.Decode(strings.NewReader(src), view.TileSize)
	require.NoError(t, err)
	return doc
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		messages []string
	}{
		{
			name: "clean",
			src: `{"__name":"Map","__children":[{"__name":"levels","__children":[
				{"__name":"level","name":"a","x":0,"y":0,"width":20,"height":20,"__children":[{"__name":"solids","innerText":"9"}]},
				{"__name":"level","name":"b","x":20,"y":0,"width":20,"height":20,"__children":[{"__name":"solids","innerText":"0"}]}]}]}`,
		},
		{
			name: "duplicate names",
			src: `{"__name":"Map","__children":[{"__name":"levels","__children":[
				{"__name":"level","name":"a","x":0,"y":0,"width":20,"height":20,"__children":[{"__name":"solids","innerText":"9"}]},
				{"__name":"level","name":"a","x":40,"y":0,"width":20,"height":20,"__children":[{"__name":"solids","innerText":"0"}]}]}]}`,
			messages: []string{"reuses the name"},
		},
		{
			name: "overlap",
			src: `{"__name":"Map","__children":[{"__name":"levels","__children":[
				{"__name":"level","name":"a","x":0,"y":0,"width":40,"height":40,"__children":[{"__name":"solids","innerText":"00\n00"}]},
				{"__name":"level","name":"b","x":20,"y":20,"width":40,"height":40,"__children":[{"__name":"solids","innerText":"00\n00"}]}]}]}`,
			messages: []string{"overlaps room"},
		},
		{
			name: "unknown tiles",
			src: `{"__name":"Map","__children":[{"__name":"levels","__children":[
				{"__name":"level","name":"a","x":0,"y":0,"width":40,"height":20,"__children":[{"__name":"solids","innerText":"#?"}]}]}]}`,
			messages: []string{`unknown tile characters "#?"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Check(parse(t, tt.src))
			require.Len(t, findings, len(tt.messages))
			for i, msg := range tt.messages {
				assert.Contains(t, findings[i].Message, msg)
				assert.Equal(t, Warning, findings[i].Severity)
			}
		})
	}
}

func TestLintDirectory(t *testing.T) {
	dir := t.TempDir()
	good := `{"__name":"Map","__children":[{"__name":"levels","__children":[]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), []byte(good), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	require.NoError(t, Lint([]string{dir}, Options{TileSize: view.TileSize}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"__name":"Map"}`), 0644))
	err := Lint([]string{dir}, Options{TileSize: view.TileSize})
	assert.Error(t, err)
}

func TestLintStrict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.json")
	src := `{"__name":"Map","__children":[{"__name":"levels","__children":[
		{"__name":"level","name":"a","x":0,"y":0,"width":20,"height":20,"__children":[{"__name":"solids","innerText":"9"}]},
		{"__name":"level","name":"a","x":40,"y":0,"width":20,"height":20,"__children":[{"__name":"solids","innerText":"0"}]}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	assert.NoError(t, Lint([]string{path}, Options{TileSize: view.TileSize}))
	assert.Error(t, Lint([]string{path}, Options{TileSize: view.TileSize, Strict: true}))
}

func TestLintSkipsHashCache(t *testing.T) {
	dir := t.TempDir()
	good := `{"__name":"Map","__children":[{"__name":"levels","__children":[]}]}`
	mapPath := filepath.Join(dir, "map.json")
	require.NoError(t, os.WriteFile(mapPath, []byte(good), 0644))

	cache := converter.LoadHashCache(filepath.Join(dir, converter.HashCacheFile))
	cache.Record(mapPath, "abc")
	require.NoError(t, cache.Save())

	files, err := collect(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{mapPath}, files)
	assert.NoError(t, Lint([]string{dir}, Options{TileSize: view.TileSize}))
}
