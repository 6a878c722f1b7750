// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"unsafe"
)

// Pool bump-allocates out of a single Region. There is no individual
// free: the strategy trades per-object deallocation for allocation
// speed and is meant for short-lived workloads that are reclaimed in
// bulk through Reset, one pool per request or frame.
type Pool struct {
	region *Region
	peak   int
}

var _ Allocator = (*Pool)(nil)

// NewPool creates a Pool backed by a fresh Region of capacity bytes.
func NewPool(capacity int) (*Pool, error) {
	r, err := NewRegion(capacity)
	if err != nil {
		return nil, err
	}
	return &Pool{region: r}, nil
}

// Alloc satisfies the Allocator interface. It returns nil once the
// Region is exhausted; the caller may Reset and retry or fail the
// operation upward.
func (p *Pool) Alloc(size, alignment uintptr) unsafe.Pointer {
	ptr, ok := p.region.Bump(size, alignment)
	if !ok {
		return nil
	}
	if used := p.region.Used(); used > p.peak {
		p.peak = used
	}
	return ptr
}

// Reset invalidates everything allocated so far and makes the full
// capacity available again. O(1); memory is not zeroed, so new
// allocations may observe previously written bytes until overwritten.
func (p *Pool) Reset() {
	p.region.Reset()
}

// Release returns the backing Region to the runtime.
func (p *Pool) Release() {
	p.region.release()
}

// Len returns the number of bytes currently allocated.
func (p *Pool) Len() int {
	return p.region.Used()
}

// Cap returns the Pool's total capacity.
func (p *Pool) Cap() int {
	return p.region.Capacity()
}

// Peak returns the high-water mark of allocated bytes across resets.
func (p *Pool) Peak() int {
	return p.peak
}
