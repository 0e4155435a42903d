package decimal

// Builder is an append-only text buffer that grows as needed.
//
// The zero value is ready to use.
type Builder struct {
	buf []byte
}

// Grow ensures room for n more bytes without another allocation.
func (b *Builder) Grow(n int) {
	if cap(b.buf)-len(b.buf) >= n {
		return
	}

	buf := make([]byte, len(b.buf), 2*cap(b.buf)+n)
	copy(buf, b.buf)
	b.buf = buf
}

// PushByte appends a single byte.
func (b *Builder) PushByte(c byte) {
	b.buf = append(b.buf, c)
}

// PushString appends s.
func (b *Builder) PushString(s string) {
	b.buf = append(b.buf, s...)
}

// Reverse reverses the bytes written since offset from.
func (b *Builder) Reverse(from int) {
	for i, j := from, len(b.buf)-1; i < j; i, j = i+1, j-1 {
		b.buf[i], b.buf[j] = b.buf[j], b.buf[i]
	}
}

// Len returns the number of bytes written.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Bytes returns the written bytes. The slice aliases the builder until the
// next write.
func (b *Builder) Bytes() []byte {
	return b.buf
}

func (b *Builder) String() string {
	return string(b.buf)
}

// Reset empties the builder and keeps its capacity.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}
