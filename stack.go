// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Marker is a saved cursor position inside a StackArena. Rewinding to
// a marker bulk-frees everything allocated after it was taken. Markers
// are plain positions, not owned objects; only values obtained from
// the same arena may be passed back to RewindTo.
type Marker uintptr

// StackArena is a bump allocator with a marker protocol layered on
// top, giving scoped temporary allocations the shape of a stack frame:
//
//	m := a.Mark()
//	// ... allocate scratch memory ...
//	a.RewindTo(m)
//
// Everything allocated between Mark and RewindTo is released in one
// step.
type StackArena struct {
	region *Region
	peak   int
}

var _ Allocator = (*StackArena)(nil)

// NewStackArena creates a StackArena backed by a fresh Region of
// capacity bytes.
func NewStackArena(capacity int) (*StackArena, error) {
	r, err := NewRegion(capacity)
	if err != nil {
		return nil, err
	}
	return &StackArena{region: r}, nil
}

// Alloc satisfies the Allocator interface. It returns nil when the
// arena is exhausted.
func (a *StackArena) Alloc(size, alignment uintptr) unsafe.Pointer {
	ptr, ok := a.region.Bump(size, alignment)
	if !ok {
		return nil
	}
	if used := a.region.Used(); used > a.peak {
		a.peak = used
	}
	return ptr
}

// Mark returns the current cursor position.
func (a *StackArena) Mark() Marker {
	return Marker(a.region.used)
}

// RewindTo moves the cursor back to m, invalidating every pointer
// returned since the marker was taken. A marker ahead of the cursor is
// rejected: honoring it would move the boundary forward instead of
// releasing memory.
func (a *StackArena) RewindTo(m Marker) error {
	if uintptr(m) > a.region.used {
		return errors.Wrapf(ErrInvalidMarker, "rewind to %d with %d in use", m, a.region.used)
	}
	a.region.used = uintptr(m)
	return nil
}

// Reset rewinds the arena to the bottom.
func (a *StackArena) Reset() {
	a.region.Reset()
}

// Release returns the backing Region to the runtime.
func (a *StackArena) Release() {
	a.region.release()
}

// Len returns the number of bytes currently allocated.
func (a *StackArena) Len() int {
	return a.region.Used()
}

// Cap returns the arena's total capacity.
func (a *StackArena) Cap() int {
	return a.region.Capacity()
}

// Peak returns the high-water mark of allocated bytes. Rewinding and
// Reset do not clear it.
func (a *StackArena) Peak() int {
	return a.peak
}
