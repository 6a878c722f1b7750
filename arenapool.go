// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"sync"
	"weak"
)

const (
	// defaultArenaSize is used for the first arena a pool builds,
	// before any peak history exists.
	defaultArenaSize = 64 << 10
	// minArenaSize is the floor for peak-informed sizing, so a run of
	// tiny uses cannot shrink fresh arenas into uselessness.
	minArenaSize = 4 << 10
	// sizeWindow bounds the rolling average of observed peaks.
	sizeWindow = 50
)

// ArenaPool recycles StackArenas across uses. Idle arenas are held
// through weak pointers, so the garbage collector is free to claim
// them whenever it wants and the pool shrinks automatically under
// memory pressure. Fresh arenas are sized from a rolling average of
// the peak usage observed on released ones.
//
// Unlike the allocators themselves, an ArenaPool is safe for
// concurrent use; it exists to be shared.
type ArenaPool struct {
	mu    sync.Mutex
	idle  []weak.Pointer[StackArena]
	count int
	total int
}

// NewArenaPool creates an empty ArenaPool.
func NewArenaPool() *ArenaPool {
	return &ArenaPool{}
}

// Acquire returns an idle arena, or builds a fresh one sized from the
// recent peak history when the pool is empty or the collector got
// there first.
func (p *ArenaPool) Acquire() *StackArena {
	p.mu.Lock()
	defer p.mu.Unlock()

	for n := len(p.idle); n > 0; n = len(p.idle) {
		wp := p.idle[n-1]
		p.idle = p.idle[:n-1]
		if a := wp.Value(); a != nil {
			return a
		}
	}

	a, err := NewStackArena(p.nextSize())
	if err != nil {
		// nextSize never returns a non-positive capacity.
		panic(err)
	}
	return a
}

// Release resets a and parks it for reuse, folding its peak usage into
// the sizing history. The caller must not use the arena afterwards.
func (p *ArenaPool) Release(a *StackArena) {
	peak := a.Peak()
	a.Reset()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.count == sizeWindow {
		p.count = 1
		p.total /= sizeWindow
	}
	p.count++
	p.total += peak

	p.idle = append(p.idle, weak.Make(a))
}

func (p *ArenaPool) nextSize() int {
	if p.count == 0 {
		return defaultArenaSize
	}
	if avg := p.total / p.count; avg > minArenaSize {
		return avg
	}
	return minArenaSize
}
