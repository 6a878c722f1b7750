// SPDX-License-Identifier: Apache-2.0

package memkit

import "github.com/pkg/errors"

var (
	// ErrInvalidCapacity is returned when a Region (or an allocator
	// built on one) is created with a non-positive capacity.
	ErrInvalidCapacity = errors.New("memkit: capacity must be positive")

	// ErrInvalidMarker is returned by StackArena.RewindTo when the
	// marker lies past the current allocation cursor.
	ErrInvalidMarker = errors.New("memkit: marker is past the allocation cursor")

	// ErrInvalidSlabConfig is returned when a Slab is created with a
	// non-positive block size, blocks per chunk or chunk budget.
	ErrInvalidSlabConfig = errors.New("memkit: slab geometry must be positive")

	// ErrForeignPointer is returned by Slab.Free for a pointer that is
	// not the start of a block in any of the slab's chunks.
	ErrForeignPointer = errors.New("memkit: pointer does not belong to this slab")

	// ErrUntrackedFree is returned by Tracker.TrackFree for an address
	// it has never seen.
	ErrUntrackedFree = errors.New("memkit: free of untracked pointer")

	// ErrDoubleFree is returned by Tracker.TrackFree for an address
	// whose record was already cleanly freed.
	ErrDoubleFree = errors.New("memkit: pointer already freed")

	// ErrCorruption is returned by Tracker.TrackFree when a record's
	// magic guard holds neither the live nor the freed value.
	ErrCorruption = errors.New("memkit: allocation record guard mismatch")
)
