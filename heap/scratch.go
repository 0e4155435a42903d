package heap

import (
	"go.uber.org/zap"

	"github.com/calebcase/flashlibc/alloc"
)

var _ alloc.Collector = (*Scratch)(nil)

// Scratch tracks short lived blocks and releases all of them when a
// reclamation pass runs. Tracked blocks must not be used after Collect.
type Scratch struct {
	heap alloc.Heap
	ptrs []alloc.Ptr
}

// NewScratch returns a collector that frees tracked blocks back to heap.
func NewScratch(heap alloc.Heap) *Scratch {
	return &Scratch{
		heap: heap,
	}
}

// Track records p as reclaimable and returns it. Null is ignored.
func (s *Scratch) Track(p alloc.Ptr) alloc.Ptr {
	if p != alloc.Null {
		s.ptrs = append(s.ptrs, p)
	}

	return p
}

// Collect frees every tracked block.
func (s *Scratch) Collect() {
	for _, p := range s.ptrs {
		s.heap.Free(p)
	}

	Logger().Debug("scratch collected", zap.Int("blocks", len(s.ptrs)))

	s.ptrs = s.ptrs[:0]
}

// Len returns the number of tracked blocks.
func (s *Scratch) Len() int {
	return len(s.ptrs)
}
