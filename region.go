// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"unsafe"
)

// defaultAlignment is used when Bump is called with alignment 0. All
// allocators in this package round reservations to 8 bytes by default
// so returned memory is naturally aligned for scalar and struct access.
const defaultAlignment = 8

// Region is a contiguous fixed-capacity byte buffer with a bump
// cursor. It is the substrate the allocation strategies build on: a
// Region hands out raw reservations and never reclaims them
// individually. Reset makes the whole buffer reusable at once.
type Region struct {
	buf  []byte
	used uintptr
}

// NewRegion returns a Region backed by a zero-initialized buffer of
// capacity bytes.
func NewRegion(capacity int) (*Region, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Region{buf: make([]byte, capacity)}, nil
}

// Bump reserves size bytes aligned to alignment and advances the
// cursor. It reports false when the reservation would exceed the
// remaining capacity, and for zero-size requests; the cursor is left
// untouched in that case. Exhaustion is an ordinary outcome, not an
// error.
//
// The cursor is rounded up before the space check, so every returned
// pointer satisfies the requested alignment. Memory handed out after a
// Reset is not re-zeroed: it may still hold bytes written through an
// earlier reservation.
func (r *Region) Bump(size, alignment uintptr) (unsafe.Pointer, bool) {
	if r.buf == nil || size == 0 {
		return nil, false
	}
	if alignment == 0 {
		alignment = defaultAlignment
	}
	base := unsafe.Pointer(unsafe.SliceData(r.buf))
	pad := uintptr(0)
	for (uintptr(base)+r.used+pad)%alignment != 0 {
		pad++
	}
	if r.used+pad+size > uintptr(len(r.buf)) {
		return nil, false
	}
	ptr := unsafe.Add(base, r.used+pad)
	r.used += pad + size
	return ptr, true
}

// Used returns the current cursor position.
func (r *Region) Used() int {
	return int(r.used)
}

// Capacity returns the total number of bytes in the Region.
func (r *Region) Capacity() int {
	return len(r.buf)
}

// Reset moves the cursor back to zero. Every pointer previously
// returned by Bump becomes logically invalid; contents are left in
// place.
func (r *Region) Reset() {
	r.used = 0
}

// release drops the backing buffer. The Region refuses further
// reservations afterwards.
func (r *Region) release() {
	r.buf = nil
	r.used = 0
}
