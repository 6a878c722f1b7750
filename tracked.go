// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"unsafe"
)

// TrackedAllocator decorates an Allocator with a Tracker, stamping
// every successful allocation with the caller's source location. Reset
// and Release retire the outstanding records before touching the
// underlying allocator, so bulk reclamation does not show up as a pile
// of leaks.
type TrackedAllocator struct {
	inner       Allocator
	tracker     *Tracker
	outstanding []unsafe.Pointer
}

var _ Allocator = (*TrackedAllocator)(nil)

// NewTrackedAllocator wraps a with t. The tracker may be shared with
// other allocators or with direct TrackAlloc callers.
func NewTrackedAllocator(a Allocator, t *Tracker) *TrackedAllocator {
	return &TrackedAllocator{inner: a, tracker: t}
}

// Alloc satisfies the Allocator interface. Failed allocations are not
// recorded.
func (d *TrackedAllocator) Alloc(size, alignment uintptr) unsafe.Pointer {
	ptr := d.inner.Alloc(size, alignment)
	if ptr != nil {
		d.tracker.TrackAlloc(ptr, int(size), Callsite(1))
		d.outstanding = append(d.outstanding, ptr)
	}
	return ptr
}

// Reset bulk-frees the wrapped allocator and retires every record this
// decorator created since the last Reset.
func (d *TrackedAllocator) Reset() {
	d.retire()
	d.inner.Reset()
}

// Release retires the outstanding records and releases the underlying
// allocator.
func (d *TrackedAllocator) Release() {
	d.retire()
	d.inner.Release()
}

// Len returns the wrapped allocator's current allocation size.
func (d *TrackedAllocator) Len() int {
	return d.inner.Len()
}

// Cap returns the wrapped allocator's capacity.
func (d *TrackedAllocator) Cap() int {
	return d.inner.Cap()
}

// Peak returns the wrapped allocator's high-water mark.
func (d *TrackedAllocator) Peak() int {
	return d.inner.Peak()
}

// Tracker returns the tracker this decorator reports to.
func (d *TrackedAllocator) Tracker() *Tracker {
	return d.tracker
}

func (d *TrackedAllocator) retire() {
	site := Callsite(2)
	for _, ptr := range d.outstanding {
		// Errors here mean the caller already freed the address by
		// hand; the tracker has logged the warning.
		_ = d.tracker.TrackFree(ptr, site)
	}
	d.outstanding = d.outstanding[:0]
}
