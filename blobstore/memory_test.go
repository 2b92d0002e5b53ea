package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("payload")
	require.NoError(t, store.Put(ctx, "ds/0.bin", data))
	data[0] = 'X' // Put copies.

	got, err := ReadAll(ctx, store, "ds/0.bin")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	w, err := store.Create(ctx, "ds/1.bin")
	require.NoError(t, err)
	_, err = io.WriteString(w, "streamed")
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	w, err = store.Create(ctx, "ds/2.bin")
	require.NoError(t, err)
	_, err = io.WriteString(w, "discarded")
	require.NoError(t, err)
	require.NoError(t, Abort(w))

	names, err := store.List(ctx, "ds/")
	require.NoError(t, err)
	assert.Equal(t, []string{"ds/0.bin", "ds/1.bin"}, names)
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.Delete(ctx, "ds/0.bin"))
	_, err = store.Open(ctx, "ds/0.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}
