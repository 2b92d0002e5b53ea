package locator

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/datapack/model"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		location string
		kind     model.SourceKind
		root     string
		name     string
	}{
		{"https://example.com/data/ds", model.Remote, "https://example.com/data", "ds"},
		{"HTTP://example.com/ds/", model.Remote, "HTTP://example.com", "ds"},
		{"https://example.com", model.Remote, "https://example.com", ""},
		{filepath.Join("data", "ds"), model.Local, "data", "ds"},
		{"ds", model.Local, ".", "ds"},
		{"httpdata/ds", model.Local, "httpdata", "ds"},
	}

	for _, tc := range testCases {
		t.Run(tc.location, func(t *testing.T) {
			l := Parse(tc.location)
			assert.Equal(t, tc.kind, l.Kind())
			assert.Equal(t, tc.root, l.Root())
			assert.Equal(t, tc.name, l.Name())
		})
	}
}

func TestNames(t *testing.T) {
	l := Parse("https://example.com/data/ds")

	assert.Equal(t, "ds/0.jsonl", l.ChunkName(0, "jsonl"))
	assert.Equal(t, "ds/12", l.ChunkName(12, ""))
	assert.Equal(t, "ds.jsonl", l.SingleName("jsonl"))
	assert.Equal(t, "ds", l.SingleName(""))
	assert.Equal(t, "ds/manifest.json", l.ManifestName())

	assert.Equal(t, "https://example.com/data/ds/3.bin", l.ChunkAddress(3, "bin"))
	assert.Equal(t, "https://example.com/data/ds.bin", l.SingleAddress("bin"))
}

func TestLocalAddresses(t *testing.T) {
	dir := t.TempDir()
	l := Parse(filepath.Join(dir, "ds"))

	assert.Equal(t, filepath.Join(dir, "ds", "0.txt"), l.ChunkAddress(0, "txt"))
	assert.Equal(t, filepath.Join(dir, "ds.txt"), l.SingleAddress("txt"))
}

func TestParseChunkIndex(t *testing.T) {
	l := Parse("data/ds")

	n, ok := l.ParseChunkIndex("ds/7.jsonl", "jsonl")
	require.True(t, ok)
	assert.Equal(t, 7, n)

	for _, name := range []string{
		"ds/manifest.json",
		"ds/07.jsonl",
		"ds/-1.jsonl",
		"ds/7.txt",
		"other/7.jsonl",
		"ds/sub/7.jsonl",
	} {
		_, ok := l.ParseChunkIndex(name, "jsonl")
		assert.False(t, ok, name)
	}

	n, ok = l.ParseChunkIndex("ds/3", "")
	require.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestInStore(t *testing.T) {
	l := InStore("/datasets/corpus/")
	assert.Equal(t, model.Local, l.Kind())
	assert.Equal(t, "", l.Root())
	assert.Equal(t, "datasets/corpus", l.Name())
	assert.Equal(t, "datasets/corpus/0.jsonl", l.ChunkName(0, "jsonl"))
	assert.Equal(t, "datasets/corpus.jsonl", l.SingleName("jsonl"))
	assert.Equal(t, "datasets/corpus/manifest.json", l.ManifestName())

	n, ok := l.ParseChunkIndex("datasets/corpus/7.jsonl", "jsonl")
	assert.True(t, ok)
	assert.Equal(t, 7, n)
}
