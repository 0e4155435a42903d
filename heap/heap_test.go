package heap

import (
	"bytes"
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/flashlibc/alloc"
)

func newLinear(t *testing.T, pages, limit uint32) *Linear {
	t.Helper()

	ctx := context.Background()

	h, err := New(ctx, pages, limit)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, h.Close(ctx))
	})

	return h
}

func TestMemoryModule(t *testing.T) {
	require.Equal(t, []byte{
		0x00, 0x61, 0x73, 0x6d,
		0x01, 0x00, 0x00, 0x00,
		0x05, 0x03, 0x01, 0x00, 0x01,
	}, memoryModule(1))

	require.Equal(t, []byte{
		0x00, 0x61, 0x73, 0x6d,
		0x01, 0x00, 0x00, 0x00,
		0x05, 0x04, 0x01, 0x00, 0xc8, 0x01,
	}, memoryModule(200))
}

func TestNewInvalid(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, 0, 1)
	require.Error(t, err)
	require.True(t, Error.Has(err))

	_, err = New(ctx, 2, 1)
	require.Error(t, err)
	require.True(t, Error.Has(err))
}

func TestMalloc(t *testing.T) {
	h := newLinear(t, 1, 1)

	p := h.Malloc(10)
	require.Equal(t, alloc.Ptr(16), p)
	require.Equal(t, uint32(16), h.Size(p))

	q := h.Malloc(0)
	require.Equal(t, alloc.Ptr(40), q)
	require.Equal(t, uint32(8), h.Size(q))

	require.NoError(t, h.Write(p, []byte("hello")))

	data, err := h.Read(p, 5)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	stats := h.Stats()
	t.Logf("stats: %s", spew.Sdump(stats))

	require.Equal(t, Stats{
		Pages:      1,
		Break:      48,
		Live:       24,
		FreeBlocks: 0,
	}, stats)
}

func TestMallocExhausted(t *testing.T) {
	h := newLinear(t, 1, 1)

	require.NotEqual(t, alloc.Null, h.Malloc(60000))
	require.Equal(t, alloc.Null, h.Malloc(10000))
	require.Equal(t, uint32(1), h.Stats().Pages)
}

func TestMallocGrow(t *testing.T) {
	h := newLinear(t, 1, 2)

	require.NotEqual(t, alloc.Null, h.Malloc(60000))
	require.NotEqual(t, alloc.Null, h.Malloc(10000))
	require.Equal(t, uint32(2), h.Stats().Pages)
	require.Equal(t, alloc.Null, h.Malloc(65536))
}

func TestFreeReuse(t *testing.T) {
	h := newLinear(t, 1, 1)

	p := h.Malloc(100)
	h.Free(p)
	require.Equal(t, 1, h.Stats().FreeBlocks)
	require.Equal(t, uint32(0), h.Stats().Live)

	// Too large for the free block.
	q := h.Malloc(200)
	require.NotEqual(t, p, q)

	r := h.Malloc(50)
	require.Equal(t, p, r)
	require.Equal(t, 0, h.Stats().FreeBlocks)

	h.Free(alloc.Null)
	require.Equal(t, 0, h.Stats().FreeBlocks)
}

func TestZalloc(t *testing.T) {
	h := newLinear(t, 1, 1)

	p := h.Malloc(32)
	require.NoError(t, h.Write(p, bytes.Repeat([]byte{0xff}, 32)))
	h.Free(p)

	z := h.Zalloc(32)
	require.Equal(t, p, z)

	data, err := h.Read(z, 32)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 32), data)

	require.Equal(t, alloc.Null, h.Zalloc(70000))
}

func TestRealloc(t *testing.T) {
	h := newLinear(t, 1, 1)

	p := h.Realloc(alloc.Null, 8)
	require.NotEqual(t, alloc.Null, p)
	require.NoError(t, h.Write(p, []byte("abcdefgh")))

	// Fits in place.
	require.Equal(t, p, h.Realloc(p, 4))
	require.Equal(t, p, h.Realloc(p, 8))

	q := h.Realloc(p, 64)
	require.NotEqual(t, p, q)
	require.Equal(t, uint32(64), h.Size(q))

	data, err := h.Read(q, 8)
	require.NoError(t, err)
	require.Equal(t, []byte("abcdefgh"), data)
	require.Equal(t, 1, h.Stats().FreeBlocks)

	// Exhaustion leaves the block alone.
	require.Equal(t, alloc.Null, h.Realloc(q, 70000))
	data, err = h.Read(q, 8)
	require.NoError(t, err)
	require.Equal(t, []byte("abcdefgh"), data)

	require.Equal(t, alloc.Null, h.Realloc(q, 0))
	require.Equal(t, 2, h.Stats().FreeBlocks)
	require.Equal(t, uint32(0), h.Stats().Live)
}

func TestReadWriteBounds(t *testing.T) {
	h := newLinear(t, 1, 1)

	p := h.Malloc(8)

	require.Error(t, h.Write(alloc.Null, []byte("x")))
	require.Error(t, h.Write(p, make([]byte, 9)))

	_, err := h.Read(alloc.Null, 1)
	require.Error(t, err)

	_, err = h.Read(p, 9)
	require.Error(t, err)
	require.True(t, Error.Has(err))
}
