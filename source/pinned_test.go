package source

import (
	"context"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/record"
	"github.com/hupe1980/tickscan/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closeCounter records Close calls on a wrapped blob. It hides Bytes, so it
// is never Mappable.
type closeCounter struct {
	blobstore.Blob
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return c.Blob.Close()
}

// mappedCounter is a closeCounter that forwards Bytes.
type mappedCounter struct {
	closeCounter
	data []byte
}

func (m *mappedCounter) Bytes() ([]byte, error) { return m.data, nil }

func TestPinBlob_LocalStoreAliases(t *testing.T) {
	ctx := context.Background()
	orders := testutil.NewRNG(21).Orders(256, 8)
	dir := t.TempDir()
	testutil.WriteOrders(t, dir, "orders.dat", orders)

	store := blobstore.NewLocalStore(dir)
	blob, err := store.Open(ctx, "orders.dat")
	require.NoError(t, err)

	data, err := blob.(blobstore.Mappable).Bytes()
	require.NoError(t, err)

	src, ok, err := PinBlob[record.Order]("orders.dat", blob)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, unsafe.Pointer(&data[0]), src.View().Base())
	assert.Equal(t, orders, collect(src))
	assert.Equal(t, int64(len(data)), src.Size())
	assert.Equal(t, Fingerprint[record.Order](src), Fingerprint[record.Order](mustBuffered(t, filepath.Join(dir, "orders.dat"))))

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
	assert.Equal(t, 0, src.View().Len())
	assert.Nil(t, src.Bytes())

	_, err = blob.(blobstore.Mappable).Bytes()
	assert.Error(t, err, "closing the source releases the mapping")
}

func TestPinBlob_MemoryStore(t *testing.T) {
	ctx := context.Background()
	orders := testutil.NewRNG(22).Orders(100, 4)

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "orders.dat", testutil.OrderBytes(orders)))

	blob, err := store.Open(ctx, "orders.dat")
	require.NoError(t, err)
	counted := &mappedCounter{closeCounter: closeCounter{Blob: blob}}
	counted.data, err = blob.(blobstore.Mappable).Bytes()
	require.NoError(t, err)

	src, ok, err := PinBlob[record.Order]("orders.dat", counted)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, unsafe.Pointer(&counted.data[0]), src.View().Base())
	assert.Equal(t, orders, collect(src))

	assert.Equal(t, 0, counted.closes)
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
	assert.Equal(t, 1, counted.closes)
}

func TestPinBlob_Fallback(t *testing.T) {
	ctx := context.Background()
	data := testutil.OrderBytes(testutil.NewRNG(23).Orders(4, 2))

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "orders.dat", data))

	t.Run("not mappable", func(t *testing.T) {
		blob, err := store.Open(ctx, "orders.dat")
		require.NoError(t, err)
		counted := &closeCounter{Blob: blob}

		src, ok, err := PinBlob[record.Order]("orders.dat", counted)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, src)
		assert.Equal(t, 0, counted.closes)
	})

	t.Run("misaligned", func(t *testing.T) {
		blob, err := store.Open(ctx, "orders.dat")
		require.NoError(t, err)
		shifted := make([]byte, len(data)+1)
		copy(shifted[1:], data)
		m := &mappedCounter{closeCounter: closeCounter{Blob: blob}, data: shifted[1:]}

		src, ok, err := PinBlob[record.Order]("orders.dat", m)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, src)
		assert.Equal(t, 0, m.closes)
	})
}

func TestPinBlob_Truncated(t *testing.T) {
	ctx := context.Background()
	data := testutil.OrderBytes(testutil.NewRNG(24).Orders(2, 1))

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "short.dat", data[:len(data)-3]))

	blob, err := store.Open(ctx, "short.dat")
	require.NoError(t, err)
	defer blob.Close()

	_, ok, err := PinBlob[record.Order]("short.dat", blob)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrTruncated)

	var le *LayoutError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "short.dat", le.Name)
}

func mustBuffered(t *testing.T, path string) *Buffered[record.Order] {
	t.Helper()
	src, err := OpenBuffered[record.Order](path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}
