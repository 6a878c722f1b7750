// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"sync"
	"unsafe"
)

// LockedAllocator serializes every call to a wrapped Allocator with a
// mutex. The core strategies carry no internal locking; this is the
// opt-in wrapper for an allocator that has to be shared between
// goroutines.
type LockedAllocator struct {
	mtx   sync.Mutex
	inner Allocator
}

var _ Allocator = (*LockedAllocator)(nil)

// NewLockedAllocator wraps a in a mutex decorator.
func NewLockedAllocator(a Allocator) *LockedAllocator {
	return &LockedAllocator{inner: a}
}

// Alloc satisfies the Allocator interface. After Release it returns
// nil without touching the released allocator.
func (l *LockedAllocator) Alloc(size, alignment uintptr) unsafe.Pointer {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.inner == nil {
		return nil
	}
	return l.inner.Alloc(size, alignment)
}

// Reset satisfies the Allocator interface.
func (l *LockedAllocator) Reset() {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.inner == nil {
		return
	}
	l.inner.Reset()
}

// Release releases the wrapped allocator and drops the reference so a
// stray late call cannot touch freed state.
func (l *LockedAllocator) Release() {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.inner == nil {
		return
	}
	l.inner.Release()
	l.inner = nil
}

// Len satisfies the Allocator interface.
func (l *LockedAllocator) Len() int {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.inner == nil {
		return 0
	}
	return l.inner.Len()
}

// Cap satisfies the Allocator interface.
func (l *LockedAllocator) Cap() int {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.inner == nil {
		return 0
	}
	return l.inner.Cap()
}

// Peak satisfies the Allocator interface.
func (l *LockedAllocator) Peak() int {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.inner == nil {
		return 0
	}
	return l.inner.Peak()
}
