package flashlibc

import (
	"github.com/calebcase/flashlibc/alloc"
	"github.com/calebcase/flashlibc/decimal"
	"github.com/calebcase/flashlibc/fault"
	"github.com/calebcase/flashlibc/printf"
)

// Libc binds the C library entry points to one heap, the runtime that
// reclaims it and a formatting core.
type Libc struct {
	alloc   *alloc.Allocator
	rt      alloc.Collector
	printer *printf.Printer
}

// New returns a Libc over heap. rt is asked for one reclamation pass when the
// heap is exhausted and may be nil. A nil core uses printf.DefaultCore.
func New(heap alloc.Heap, rt alloc.Collector, core printf.Core) *Libc {
	return &Libc{
		alloc:   alloc.New(heap),
		rt:      rt,
		printer: printf.New(core),
	}
}

// Malloc allocates size bytes or returns alloc.Null.
func (l *Libc) Malloc(size uint32) alloc.Ptr {
	return l.alloc.Malloc(l.rt, size)
}

// Calloc allocates count*size zeroed bytes or returns alloc.Null.
func (l *Libc) Calloc(count, size uint32) alloc.Ptr {
	return l.alloc.Calloc(l.rt, count, size)
}

// Realloc resizes ptr to size bytes or returns alloc.Null.
func (l *Libc) Realloc(ptr alloc.Ptr, size uint32) alloc.Ptr {
	return l.alloc.Realloc(l.rt, ptr, size)
}

// Free releases ptr.
func (l *Libc) Free(ptr alloc.Ptr) {
	l.alloc.Free(ptr)
}

// Strtod parses a number at the start of s. n is the offset of the first
// byte not consumed.
func (l *Libc) Strtod(s string) (v float64, n int) {
	return decimal.Parse(s)
}

// DoubleToStr writes v with precision prec into buf as NUL terminated text
// and returns the text length.
func (l *Libc) DoubleToStr(buf []byte, v float64, prec int) int {
	return decimal.FormatTo(buf, v, prec)
}

// Strerror returns the text for an error code.
func (l *Libc) Strerror(code int) string {
	return fault.ErrorText(code)
}

// Abort stops the process. It never returns.
func (l *Libc) Abort() {
	fault.Abort()
}

// Sprintf formats into buf.
func (l *Libc) Sprintf(buf []byte, format string, args ...any) int {
	return l.printer.Sprintf(buf, format, args...)
}

// Snprintf formats at most size-1 bytes into buf.
func (l *Libc) Snprintf(buf []byte, size int, format string, args ...any) int {
	return l.printer.Snprintf(buf, size, format, args...)
}

// Vsnprintf is Snprintf with an argument slice.
func (l *Libc) Vsnprintf(buf []byte, size int, format string, args []any) int {
	return l.printer.Vsnprintf(buf, size, format, args)
}
