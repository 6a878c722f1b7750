// SPDX-License-Identifier: Apache-2.0

// Package memkit provides a family of allocation strategies layered on
// a common fixed-capacity Region substrate, plus a diagnostic tracking
// layer that records live allocations and surfaces leaks, double frees
// and record corruption.
//
// The strategies trade individual deallocation for speed in different
// ways. Pool bump-allocates and reclaims everything at once through
// Reset. StackArena adds a marker protocol for scoped bulk release.
// Slab hands out fixed-size blocks with true per-block free through an
// intrusive free list. The Tracker wraps any of them (or plain heap
// allocations) identically, since it only ever sees pointer, size and
// call-site triples.
//
// None of the core types lock internally. Wrap an allocator in
// NewLockedAllocator when it has to be shared between goroutines.
package memkit
