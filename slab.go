// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"unsafe"

	"github.com/pkg/errors"
)

// freeNodeSize is the number of bytes an unused block lends to the
// free list: one machine word holding the link to the next free block.
const freeNodeSize = int(unsafe.Sizeof(uintptr(0)))

// Slab hands out fixed-size blocks backed by chunks that are allocated
// lazily up to a configured budget. Unused blocks double as free-list
// nodes: the link to the next free block lives in the first word of
// the block storage itself, so the slab carries no per-block metadata.
// Allocate and Free are O(1); growing by one chunk is the only
// amortized cost.
type Slab struct {
	blockSize      int
	blocksPerChunk int
	maxChunks      int
	freeHead       unsafe.Pointer
	chunks         [][]byte
	released       bool
}

// NewSlab creates a Slab serving blocks of blockSize bytes, growing
// blocksPerChunk blocks at a time up to maxChunks chunks. A block size
// below the free-list node size is raised to it. The slab starts with
// zero chunks and an empty free list.
func NewSlab(blockSize, blocksPerChunk, maxChunks int) (*Slab, error) {
	if blockSize <= 0 || blocksPerChunk <= 0 || maxChunks <= 0 {
		return nil, ErrInvalidSlabConfig
	}
	if blockSize < freeNodeSize {
		blockSize = freeNodeSize
	}
	// Round up to a word multiple so every block start can hold the
	// free-list link at its natural alignment.
	if rem := blockSize % freeNodeSize; rem != 0 {
		blockSize += freeNodeSize - rem
	}
	return &Slab{
		blockSize:      blockSize,
		blocksPerChunk: blocksPerChunk,
		maxChunks:      maxChunks,
		chunks:         make([][]byte, 0, maxChunks),
	}, nil
}

// Alloc pops a block off the free list, growing the slab by one chunk
// when the list is empty. It returns nil once the chunk budget is
// exhausted. Block contents are whatever the previous occupant left
// behind; the first word held the free-list link until this call.
func (s *Slab) Alloc() unsafe.Pointer {
	if s.released {
		return nil
	}
	if s.freeHead == nil && !s.grow() {
		return nil
	}
	ptr := s.freeHead
	s.freeHead = *(*unsafe.Pointer)(ptr)
	return ptr
}

// grow adds one chunk and threads every block in it onto the front of
// the free list. Callers get no ordering guarantee for the blocks a
// subsequent Alloc returns.
func (s *Slab) grow() bool {
	if len(s.chunks) >= s.maxChunks {
		return false
	}
	chunk := make([]byte, s.blockSize*s.blocksPerChunk)
	s.chunks = append(s.chunks, chunk)
	for i := 0; i < s.blocksPerChunk; i++ {
		block := unsafe.Pointer(&chunk[i*s.blockSize])
		*(*unsafe.Pointer)(block) = s.freeHead
		s.freeHead = block
	}
	return true
}

// Free pushes ptr back onto the head of the free list. A nil pointer
// is ignored. A pointer that is not the start of a block in one of the
// slab's chunks is rejected with ErrForeignPointer and leaves the free
// list untouched.
//
// Freeing a block that is already on the free list is not detected
// here; wrap the slab with a Tracker when that class of misuse has to
// be caught.
func (s *Slab) Free(ptr unsafe.Pointer) error {
	if ptr == nil {
		return nil
	}
	if !s.owns(ptr) {
		return errors.Wrapf(ErrForeignPointer, "free of %p", ptr)
	}
	*(*unsafe.Pointer)(ptr) = s.freeHead
	s.freeHead = ptr
	return nil
}

// owns reports whether ptr addresses the start of a block in one of
// the slab's chunks.
func (s *Slab) owns(ptr unsafe.Pointer) bool {
	addr := uintptr(ptr)
	for _, chunk := range s.chunks {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(chunk)))
		if addr < base || addr >= base+uintptr(len(chunk)) {
			continue
		}
		return (addr-base)%uintptr(s.blockSize) == 0
	}
	return false
}

// Release drops every chunk and retires the slab. The free list and
// all outstanding blocks become invalid; further Alloc calls return
// nil.
func (s *Slab) Release() {
	s.chunks = nil
	s.freeHead = nil
	s.released = true
}

// BlockSize returns the effective block size after the free-list
// minimum was applied.
func (s *Slab) BlockSize() int {
	return s.blockSize
}

// Chunks returns the number of chunks currently backing the slab.
func (s *Slab) Chunks() int {
	return len(s.chunks)
}

// Cap returns the total number of blocks the slab can serve before the
// chunk budget is exhausted.
func (s *Slab) Cap() int {
	return s.blocksPerChunk * s.maxChunks
}
