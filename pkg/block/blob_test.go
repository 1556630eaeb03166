package block

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/sntool/internal/errors"
	"github.com/akeil/sntool/internal/testutil"
)

func TestBlobResolve(t *testing.T) {
	b := testutil.NewBuilder("x")
	addr := b.Text("bitmap bytes")
	r, err := NewReader(b.Bytes(0), DefaultConfig())
	require.NoError(t, err)

	blob := NewBlob(addr)
	assert.False(t, blob.IsResolved())
	assert.False(t, blob.Absent())
	_, ok := blob.Bytes()
	assert.False(t, ok)

	data, err := blob.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "bitmap bytes", string(data))
	assert.True(t, blob.IsResolved())

	cached, ok := blob.Bytes()
	assert.True(t, ok)
	assert.Equal(t, data, cached)
}

func TestBlobAbsent(t *testing.T) {
	r, err := NewReader([]byte{}, DefaultConfig())
	require.NoError(t, err)

	blob := NewBlob(0)
	assert.True(t, blob.Absent())
	data, err := blob.Resolve(r)
	require.NoError(t, err)
	assert.Nil(t, data)

	var none *Blob
	assert.True(t, none.Absent())
	assert.False(t, none.IsResolved())
	data, err = none.Resolve(r)
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestBlobOutOfBounds(t *testing.T) {
	r, err := NewReader([]byte{1, 2, 3}, DefaultConfig())
	require.NoError(t, err)

	blob := NewBlob(200)
	_, err = blob.Resolve(r)
	require.Error(t, err)
	assert.True(t, errors.IsOutOfBounds(err))
	assert.False(t, blob.IsResolved())
}

func TestBlobJSON(t *testing.T) {
	data, err := json.Marshal(NewBlob(77))
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":77,"resolved":false}`, string(data))
}
