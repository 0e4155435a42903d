// Package alloc wraps a raw heap with a single collect-and-retry policy.
//
// Every allocation first goes to the heap. If the heap reports exhaustion the
// runtime that owns it gets exactly one reclamation pass and the heap is asked
// once more. Whatever the second attempt returns is final: there is no loop
// and no backoff.
//
// The reclamation pass must not allocate through the same Allocator. Nothing
// here detects that; the runtime has to avoid it.
package alloc

import (
	"math/bits"

	"go.uber.org/zap"
)

// Ptr is an address handed out by a Heap.
type Ptr uint32

// Null is the address reported when no memory is available.
const Null Ptr = 0

// Heap is a raw allocator. Each call signals exhaustion by returning Null.
type Heap interface {
	Malloc(size uint32) Ptr
	Zalloc(size uint32) Ptr
	Realloc(ptr Ptr, size uint32) Ptr
	Free(ptr Ptr)
}

// Collector runs one reclamation pass on the runtime that owns the heap.
type Collector interface {
	Collect()
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func()

// Collect calls f.
func (f CollectorFunc) Collect() {
	f()
}

// Request describes one allocation.
//
// With Resize set the block at Prior (which may be Null) is resized to Size.
// Otherwise a new block of Size bytes is allocated, zero filled if Zero is
// set.
type Request struct {
	Size   uint32
	Zero   bool
	Resize bool
	Prior  Ptr
}

// Allocator applies the collect-and-retry policy to a Heap. Ownership of
// every non-Null result passes to the caller.
type Allocator struct {
	heap Heap
}

// New returns an allocator over heap.
func New(heap Heap) *Allocator {
	return &Allocator{
		heap: heap,
	}
}

// Allocate performs req. On exhaustion rt gets one Collect call before the
// single retry. A nil rt skips the collection but still retries.
func (a *Allocator) Allocate(rt Collector, req Request) Ptr {
	p := a.attempt(req)
	if p != Null {
		return p
	}

	// Resizing to zero releases the block; Null is the expected answer and
	// retrying would resize a block that no longer exists.
	if req.Resize && req.Size == 0 {
		return Null
	}

	Logger().Debug("heap exhausted, collecting",
		zap.Uint32("size", req.Size),
		zap.Bool("zero", req.Zero),
		zap.Bool("resize", req.Resize),
	)

	if rt != nil {
		rt.Collect()
	}

	p = a.attempt(req)
	if p == Null {
		Logger().Debug("heap exhausted after collection",
			zap.Uint32("size", req.Size),
		)
	}

	return p
}

func (a *Allocator) attempt(req Request) Ptr {
	switch {
	case req.Resize:
		return a.heap.Realloc(req.Prior, req.Size)
	case req.Zero:
		return a.heap.Zalloc(req.Size)
	default:
		return a.heap.Malloc(req.Size)
	}
}

// Malloc allocates size bytes.
func (a *Allocator) Malloc(rt Collector, size uint32) Ptr {
	return a.Allocate(rt, Request{
		Size: size,
	})
}

// Calloc allocates count*size zeroed bytes. A product that overflows returns
// Null without touching the heap.
func (a *Allocator) Calloc(rt Collector, count, size uint32) Ptr {
	hi, total := bits.Mul32(count, size)
	if hi != 0 {
		Logger().Debug("calloc size overflows",
			zap.Uint32("count", count),
			zap.Uint32("size", size),
		)

		return Null
	}

	return a.Allocate(rt, Request{
		Size: total,
		Zero: true,
	})
}

// Realloc resizes the block at ptr to size bytes. On failure the original
// block is left untouched.
func (a *Allocator) Realloc(rt Collector, ptr Ptr, size uint32) Ptr {
	return a.Allocate(rt, Request{
		Size:   size,
		Resize: true,
		Prior:  ptr,
	})
}

// Free returns ptr to the heap.
func (a *Allocator) Free(ptr Ptr) {
	a.heap.Free(ptr)
}
