package manifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/datapack/blobstore"
	"github.com/hupe1980/datapack/codec"
	"github.com/hupe1980/datapack/model"
)

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewLocalStore(t.TempDir())
	store := NewStore(blobs, "ds/manifest.json", nil)

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	m := New("training split", 3, "jsonl", model.Text)
	require.NoError(t, store.Save(ctx, m))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
	assert.Equal(t, model.Text, loaded.ContentKind())

	// Save overwrites.
	require.NoError(t, store.Save(ctx, New("", 1, "bin", model.Binary)))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Count)
	assert.Equal(t, model.Binary, loaded.ContentKind())
}

func TestWireFormat(t *testing.T) {
	data, err := Encode(codec.JSON{}, New("d", 2, "txt", model.Text))
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"d","count":2,"type":"txt","is_binary":false}`, string(data))
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name      string
		data      string
		malformed bool
		want      *Manifest
	}{
		{
			name: "complete",
			data: `{"description":"d","count":2,"type":"txt","is_binary":true}`,
			want: &Manifest{Description: "d", Count: 2, Type: "txt", IsBinary: true},
		},
		{
			name: "description optional",
			data: `{"count":0,"type":"","is_binary":false}`,
			want: &Manifest{},
		},
		{name: "not json", data: `count=3`, malformed: true},
		{name: "missing count", data: `{"type":"txt","is_binary":false}`, malformed: true},
		{name: "missing type", data: `{"count":1,"is_binary":false}`, malformed: true},
		{name: "missing is_binary", data: `{"count":1,"type":"txt"}`, malformed: true},
		{name: "negative count", data: `{"count":-1,"type":"txt","is_binary":false}`, malformed: true},
		{name: "wrong type", data: `{"count":"3","type":"txt","is_binary":false}`, malformed: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Decode(nil, []byte(tc.data))
			if tc.malformed {
				require.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, m)
		})
	}
}
