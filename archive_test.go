package datapack

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/datapack/model"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(p string, e os.DirEntry, err error) error {
		require.NoError(t, err)
		if e.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestZipUnzip_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()

	files := map[string]string{
		"README.md":          "# model",
		"weights/layer0.bin": string(bytes.Repeat([]byte{0, 1, 2, 3}, 512)),
		"weights/layer1.bin": "tiny",
		"config/params.json": `{"lr":0.001}`,
	}
	src := filepath.Join(tmp, "src")
	writeTree(t, src, files)

	ds, err := Zip(src)
	require.NoError(t, err)
	assert.Equal(t, model.Binary, ds.ContentKind())
	assert.Equal(t, "zip", ds.Extension())

	location := filepath.Join(tmp, "archive")
	m, err := ds.Save(ctx, location, WithMaxSize(512), WithDescription("model snapshot"))
	require.NoError(t, err)
	assert.True(t, m.IsBinary)
	assert.Greater(t, m.Count, 1)

	loaded, err := Load(ctx, location)
	require.NoError(t, err)

	dst := filepath.Join(tmp, "dst")
	writeTree(t, dst, map[string]string{"stale.txt": "remove me"})

	require.NoError(t, loaded.Unzip(ctx, dst))
	assert.Equal(t, files, readTree(t, dst))
}

func TestZip_Extension(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "a"})

	ds, err := Zip(src, WithExtension("pkg"))
	require.NoError(t, err)
	assert.Equal(t, "pkg", ds.Extension())
}

func TestZip_MissingDir(t *testing.T) {
	_, err := Zip(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnzip_RejectsEscapingEntries(t *testing.T) {
	for _, name := range []string{"../evil.txt", "/abs.txt", "a/../../evil.txt"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			w, err := zw.Create(name)
			require.NoError(t, err)
			_, err = w.Write([]byte("x"))
			require.NoError(t, err)
			require.NoError(t, zw.Close())

			tmp := t.TempDir()
			dst := filepath.Join(tmp, "dst")
			writeTree(t, dst, map[string]string{"keep.txt": "kept"})

			err = FromBytes(buf.Bytes(), "zip").Unzip(context.Background(), dst)
			require.ErrorIs(t, err, ErrPathInvalid)

			// Nothing was touched.
			assert.Equal(t, map[string]string{"keep.txt": "kept"}, readTree(t, dst))
			assert.NoFileExists(t, filepath.Join(tmp, "evil.txt"))
		})
	}
}

func TestUnzip_NotAnArchive(t *testing.T) {
	err := FromBytes(pngHeader, "zip").Unzip(context.Background(), t.TempDir())
	assert.Error(t, err)
}
