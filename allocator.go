// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"unsafe"
)

// Allocator is the common surface of the bump-style strategies in this
// package. Exhaustion is signalled by a nil pointer rather than an
// error; the caller decides whether to reset, retry elsewhere or fail
// upward.
type Allocator interface {
	// Alloc reserves size bytes aligned to alignment and returns a
	// pointer to the reservation, or nil when the allocator cannot
	// satisfy the request. An alignment of 0 selects the default of 8.
	Alloc(size, alignment uintptr) unsafe.Pointer

	// Reset invalidates every pointer previously returned by Alloc and
	// makes the full capacity available again. Memory is not zeroed.
	Reset()

	// Release returns the backing memory to the runtime. The allocator
	// must not be used for further allocations afterwards.
	Release()

	// Len returns the number of bytes currently allocated.
	Len() int

	// Cap returns the total number of bytes the allocator can hold.
	Cap() int

	// Peak returns the high-water mark of allocated bytes. Peak is not
	// cleared by Reset.
	Peak() int
}

// Allocate reserves memory for one value of type T from a. A nil or
// exhausted allocator falls back to the Go heap, so callers always get
// a usable pointer.
func Allocate[T any](a Allocator) *T {
	if a != nil {
		var x T
		if ptr := a.Alloc(unsafe.Sizeof(x), unsafe.Alignof(x)); ptr != nil {
			return (*T)(ptr)
		}
	}
	return new(T)
}

// AllocateSlice builds a []T with the given length and capacity out of
// a. A nil or exhausted allocator falls back to make.
func AllocateSlice[T any](a Allocator, length, capacity int) []T {
	if a != nil {
		var x T
		n := uintptr(capacity) * unsafe.Sizeof(x)
		if ptr := (*T)(a.Alloc(n, unsafe.Alignof(x))); ptr != nil {
			return unsafe.Slice(ptr, capacity)[:length]
		}
	}
	return make([]T, length, capacity)
}

// SliceAppend appends data to s, growing the slice out of a when the
// capacity runs out. With a nil allocator it behaves exactly like the
// built-in append.
func SliceAppend[T any](a Allocator, s []T, data ...T) []T {
	if a == nil {
		return append(s, data...)
	}
	if need := len(s) + len(data); need > cap(s) {
		grown := AllocateSlice[T](a, len(s), growCap(cap(s), need))
		copy(grown, s)
		s = grown
	}
	return append(s, data...)
}

// growThreshold is the capacity beyond which slice growth slows from
// doubling to 25% steps.
const growThreshold = 256

func growCap(oldCap, need int) int {
	if oldCap == 0 {
		return need
	}
	newCap := oldCap
	for newCap < need {
		if newCap < growThreshold {
			newCap *= 2
		} else {
			newCap += newCap / 4
		}
	}
	return newCap
}
