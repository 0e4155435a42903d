// Package heap provides a small first-fit heap inside a wasm linear memory.
//
// It stands in for the platform heap underneath the alloc policy: the memory
// grows a page at a time up to a fixed limit, after which allocations report
// exhaustion with alloc.Null.
//
// Layout
//
// Every block is preceded by an 8 byte header holding the block size. Sizes
// are rounded up to 8. Offsets 0 through 7 are never used, so 0 doubles as
// the null pointer.
//
//  | 0 .. 7   | 8 .. 15 | 16 ..          | ...
//  |----------|---------|---------------|--------
//  | reserved | size    | block data    | next header
//  |----------|---------|---------------|--------
//                        ^ pointer
//
// Released blocks go on a free list and are reused first fit without
// splitting or coalescing.
//
// A Linear is not safe for concurrent use.
package heap

import (
	"context"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/calebcase/flashlibc/alloc"
)

const (
	pageSize   = 65536
	headerSize = 8
	alignment  = 8
)

var _ alloc.Heap = (*Linear)(nil)

// Linear is a heap backed by a wazero linear memory.
type Linear struct {
	rt  wazero.Runtime
	mem api.Memory

	brk  uint32
	live uint32
	free []alloc.Ptr
}

// Stats describes the state of a Linear heap.
type Stats struct {
	Pages      uint32
	Break      uint32
	Live       uint32
	FreeBlocks int
}

// New returns a heap with pages of memory that may grow to limit pages.
func New(ctx context.Context, pages, limit uint32) (_ *Linear, err error) {
	defer Error.WrapP(&err)

	if pages == 0 {
		return nil, Error.New("invalid initial pages: %d", pages)
	}

	if limit < pages {
		return nil, Error.New("limit below initial pages: pages=%d limit=%d", pages, limit)
	}

	cfg := wazero.NewRuntimeConfigInterpreter().WithMemoryLimitPages(limit)
	rt := wazero.NewRuntimeWithConfig(ctx, cfg)

	mod, err := rt.Instantiate(ctx, memoryModule(pages))
	if err != nil {
		_ = rt.Close(ctx)

		return nil, err
	}

	mem := mod.Memory()
	if mem == nil {
		_ = rt.Close(ctx)

		return nil, Error.New("module has no memory")
	}

	return &Linear{
		rt:  rt,
		mem: mem,
		brk: headerSize,
	}, nil
}

// Close releases the wasm runtime. The heap must not be used afterwards.
func (h *Linear) Close(ctx context.Context) (err error) {
	defer Error.WrapP(&err)

	return h.rt.Close(ctx)
}

// blockSize rounds size up to the alignment. Zero sized requests still get a
// block. It returns 0 when the rounded size doesn't fit in 32 bits.
func blockSize(size uint32) uint32 {
	if size == 0 {
		return alignment
	}

	if size > math.MaxUint32-alignment {
		return 0
	}

	return (size + alignment - 1) &^ (alignment - 1)
}

func (h *Linear) sizeOf(p alloc.Ptr) uint32 {
	sz, ok := h.mem.ReadUint32Le(uint32(p) - headerSize)
	if !ok {
		return 0
	}

	return sz
}

// reuse takes the first free block of at least need bytes.
func (h *Linear) reuse(need uint32) alloc.Ptr {
	for i, p := range h.free {
		sz := h.sizeOf(p)
		if sz < need {
			continue
		}

		h.free = append(h.free[:i], h.free[i+1:]...)
		h.live += sz

		return p
	}

	return alloc.Null
}

// extend carves a new block at the break, growing the memory if needed.
func (h *Linear) extend(need uint32) alloc.Ptr {
	hdr := uint64(h.brk)
	end := hdr + headerSize + uint64(need)
	if end > math.MaxUint32 {
		return alloc.Null
	}

	size := uint64(h.mem.Size())
	if end > size {
		delta := (end - size + pageSize - 1) / pageSize

		prev, ok := h.mem.Grow(uint32(delta))
		if !ok {
			Logger().Debug("memory limit reached",
				zap.Uint32("need", need),
				zap.Uint64("delta", delta),
			)

			return alloc.Null
		}

		Logger().Debug("memory grown",
			zap.Uint32("from", prev),
			zap.Uint64("delta", delta),
		)
	}

	if !h.mem.WriteUint32Le(uint32(hdr), need) {
		return alloc.Null
	}

	h.brk = uint32(end)
	h.live += need

	return alloc.Ptr(hdr + headerSize)
}

// Malloc allocates size bytes. The contents are unspecified.
func (h *Linear) Malloc(size uint32) alloc.Ptr {
	need := blockSize(size)
	if need == 0 {
		return alloc.Null
	}

	if p := h.reuse(need); p != alloc.Null {
		return p
	}

	return h.extend(need)
}

// Zalloc allocates size zeroed bytes.
func (h *Linear) Zalloc(size uint32) alloc.Ptr {
	p := h.Malloc(size)
	if p == alloc.Null {
		return p
	}

	buf, ok := h.mem.Read(uint32(p), h.sizeOf(p))
	if !ok {
		return alloc.Null
	}
	clear(buf)

	return p
}

// Realloc resizes the block at p. A Null p allocates; a zero size releases p
// and returns Null. When the block must move its contents are copied and the
// old block is released. On exhaustion p is left as it was.
func (h *Linear) Realloc(p alloc.Ptr, size uint32) alloc.Ptr {
	if p == alloc.Null {
		return h.Malloc(size)
	}

	if size == 0 {
		h.Free(p)

		return alloc.Null
	}

	old := h.sizeOf(p)
	need := blockSize(size)
	if need != 0 && need <= old {
		return p
	}

	n := h.Malloc(size)
	if n == alloc.Null {
		return alloc.Null
	}

	src, ok := h.mem.Read(uint32(p), old)
	if !ok || !h.mem.Write(uint32(n), src) {
		h.Free(n)

		return alloc.Null
	}

	h.Free(p)

	return n
}

// Free releases the block at p. Freeing Null does nothing.
func (h *Linear) Free(p alloc.Ptr) {
	if p == alloc.Null {
		return
	}

	h.live -= h.sizeOf(p)
	h.free = append(h.free, p)
}

// Size returns the usable size of the block at p.
func (h *Linear) Size(p alloc.Ptr) uint32 {
	if p == alloc.Null {
		return 0
	}

	return h.sizeOf(p)
}

// Write copies data into the block at p.
func (h *Linear) Write(p alloc.Ptr, data []byte) (err error) {
	if p == alloc.Null {
		return Error.New("write to null")
	}

	if uint64(len(data)) > uint64(h.sizeOf(p)) {
		return Error.New("write exceeds block: ptr=%d size=%d len=%d", p, h.sizeOf(p), len(data))
	}

	if !h.mem.Write(uint32(p), data) {
		return Error.New("write out of range: ptr=%d len=%d", p, len(data))
	}

	return nil
}

// Read returns a copy of the first n bytes of the block at p.
func (h *Linear) Read(p alloc.Ptr, n uint32) (data []byte, err error) {
	if p == alloc.Null {
		return nil, Error.New("read from null")
	}

	if n > h.sizeOf(p) {
		return nil, Error.New("read exceeds block: ptr=%d size=%d n=%d", p, h.sizeOf(p), n)
	}

	view, ok := h.mem.Read(uint32(p), n)
	if !ok {
		return nil, Error.New("read out of range: ptr=%d n=%d", p, n)
	}

	return append([]byte(nil), view...), nil
}

// Stats returns the current heap statistics.
func (h *Linear) Stats() Stats {
	return Stats{
		Pages:      h.mem.Size() / pageSize,
		Break:      h.brk,
		Live:       h.live,
		FreeBlocks: len(h.free),
	}
}
