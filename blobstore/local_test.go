package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ifs "github.com/hupe1980/datapack/internal/fs"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	// Create makes the package directory on demand.
	w, err := store.Create(ctx, "ds/0.txt")
	require.NoError(t, err)
	_, err = io.WriteString(w, "hello world")
	require.NoError(t, err)

	// Not visible until Close.
	_, err = store.Open(ctx, "ds/0.txt")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())
	_, err = os.Stat(filepath.Join(tmpDir, "ds", "0.txt"))
	require.NoError(t, err)

	data, err := ReadAll(ctx, store, "ds/0.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	require.NoError(t, store.Put(ctx, "ds/1.txt", []byte("second")))
	require.NoError(t, store.Put(ctx, "ds/manifest.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "other.txt", []byte("x")))

	names, err := store.List(ctx, "ds/")
	require.NoError(t, err)
	assert.Equal(t, []string{"ds/0.txt", "ds/1.txt", "ds/manifest.json"}, names)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"ds/0.txt", "ds/1.txt", "ds/manifest.json", "other.txt"}, names)

	require.NoError(t, store.Delete(ctx, "ds/1.txt"))
	require.NoError(t, store.Delete(ctx, "ds/1.txt"))
	_, err = store.Open(ctx, "ds/1.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_DirectoryIsNotABlob(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "ds"), 0o755))

	_, err := NewLocalStore(tmpDir).Open(context.Background(), "ds")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_ListMissingDir(t *testing.T) {
	names, err := NewLocalStore(t.TempDir()).List(context.Background(), "nope/")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBlobStore_FailedWriteLeavesNoBlob(t *testing.T) {
	tmpDir := t.TempDir()
	ffs := ifs.NewFaultyFS(nil)
	ffs.AddRule("0.bin", ifs.Fault{FailAfterBytes: 4})

	store := NewLocalStoreFS(tmpDir, ffs)
	ctx := context.Background()

	err := store.Put(ctx, "ds/0.bin", []byte("0123456789"))
	require.ErrorIs(t, err, ifs.ErrInjected)

	_, err = store.Open(ctx, "ds/0.bin")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err := store.List(ctx, "ds/")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBlobStore_CloseFailure(t *testing.T) {
	tmpDir := t.TempDir()
	closeErr := errors.New("close failed")
	ffs := ifs.NewFaultyFS(nil)
	ffs.AddRule("0.bin", ifs.Fault{FailAfterBytes: -1, FailOnClose: true, Err: closeErr})

	store := NewLocalStoreFS(tmpDir, ffs)
	ctx := context.Background()

	w, err := store.Create(ctx, "ds/0.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("abc"))
	require.NoError(t, err)
	require.ErrorIs(t, w.Close(), closeErr)

	_, err = store.Open(ctx, "ds/0.bin")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, w.Close(), io.ErrClosedPipe)
}

func TestLocalBlobStore_FileAsDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "ds", []byte("single")))
	_, err := store.Open(ctx, "ds/manifest.json")
	assert.ErrorIs(t, err, ErrNotFound)
}
