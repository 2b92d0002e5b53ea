package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "ds")
	assert.NoError(t, lfs.MkdirAll(dir, 0o755))
	// Idempotent.
	assert.NoError(t, lfs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "0.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, f.Sync())

	info, err := f.Stat()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.NoError(t, f.Close())

	entries, err := lfs.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	newPath := filepath.Join(dir, "1.txt")
	assert.NoError(t, lfs.Rename(fpath, newPath))
	assert.NoError(t, lfs.Remove(newPath))
	_, err = lfs.Stat(newPath)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, lfs.RemoveAll(dir))
	_, err = lfs.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("limited", Fault{FailAfterBytes: 5})

	f, err := ffs.OpenFile(filepath.Join(tmp, "limited.txt"), os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)

	n, err := f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = f.Write([]byte("!"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 0, n)
	assert.NoError(t, f.Close())

	assert.Equal(t, int64(5), ffs.Written())
	assert.Equal(t, 1, ffs.Opened())
}

func TestFaultyFS_OpenAndClose(t *testing.T) {
	tmp := t.TempDir()
	custom := errors.New("disk on fire")

	ffs := NewFaultyFS(nil)
	ffs.AddRule("/2.", Fault{FailOnOpen: true, Err: custom})
	ffs.AddRule("close", Fault{FailAfterBytes: -1, FailOnClose: true})

	_, err := ffs.OpenFile(filepath.Join(tmp, "2.txt"), os.O_CREATE|os.O_WRONLY, 0o644)
	assert.ErrorIs(t, err, custom)

	f, err := ffs.OpenFile(filepath.Join(tmp, "close.txt"), os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Close(), ErrInjected)

	f, err = ffs.OpenFile(filepath.Join(tmp, "fine.txt"), os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("ok"))
	assert.NoError(t, err)
	assert.NoError(t, f.Close())
}

func TestFaultyFS_Delegation(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(LocalFS{})

	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, ffs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "test.txt")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.NoError(t, ffs.Rename(fpath, fpath+".renamed"))
	_, err = ffs.Stat(fpath + ".renamed")
	assert.NoError(t, err)

	_, err = ffs.ReadDir(dir)
	assert.NoError(t, err)
	assert.NoError(t, ffs.Remove(fpath+".renamed"))
	assert.NoError(t, ffs.RemoveAll(dir))
}
