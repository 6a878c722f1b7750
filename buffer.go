// SPDX-License-Identifier: Apache-2.0

package memkit

// Buffer is a write-oriented byte buffer whose growth is served by an
// Allocator. It implements io.Writer. With a nil allocator it degrades
// to ordinary heap-backed appends.
type Buffer struct {
	alloc Allocator
	buf   []byte
}

// NewBuffer creates an empty Buffer backed by a. Nothing is allocated
// until the first write.
func NewBuffer(a Allocator) *Buffer {
	return &Buffer{alloc: a}
}

// Write implements io.Writer. It never fails; growth falls back to the
// heap when the allocator is exhausted.
func (b *Buffer) Write(p []byte) (int, error) {
	b.buf = SliceAppend(b.alloc, b.buf, p...)
	return len(p), nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	b.buf = SliceAppend(b.alloc, b.buf, []byte(s)...)
	return len(s), nil
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	b.buf = SliceAppend(b.alloc, b.buf, c)
	return nil
}

// Bytes returns the accumulated contents. The slice is only valid
// until the next write, truncate or reset.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// String returns the accumulated contents as a string.
func (b *Buffer) String() string {
	return string(b.buf)
}

// Len returns the number of accumulated bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the underlying slice.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Reset forgets the contents without returning memory to the
// allocator.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// Truncate keeps the first n bytes. It panics when n is negative or
// greater than the current length.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.buf) {
		panic("memkit: buffer truncation out of range")
	}
	b.buf = b.buf[:n]
}
