// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaPoolAcquireBuildsDefaultSize(t *testing.T) {
	p := NewArenaPool()
	a := p.Acquire()
	require.NotNil(t, a)
	require.Equal(t, defaultArenaSize, a.Cap())
}

func TestArenaPoolRecyclesArenas(t *testing.T) {
	p := NewArenaPool()
	a := p.Acquire()
	require.NotNil(t, a.Alloc(128, 1))

	p.Release(a)

	// Holding a strong reference keeps the weak pointer alive, so the
	// same arena comes back, already reset.
	b := p.Acquire()
	require.Same(t, a, b)
	require.Equal(t, 0, b.Len())
}

func TestArenaPoolSizingFollowsPeaks(t *testing.T) {
	p := NewArenaPool()

	a := p.Acquire()
	require.NotNil(t, a.Alloc(32<<10, 1))
	p.Release(a)

	require.Equal(t, 32<<10, p.nextSize())
}

func TestArenaPoolSizingHasFloor(t *testing.T) {
	p := NewArenaPool()

	a := p.Acquire()
	require.NotNil(t, a.Alloc(16, 1))
	p.Release(a)

	require.Equal(t, minArenaSize, p.nextSize())
}

func TestArenaPoolSizeWindowRolls(t *testing.T) {
	p := NewArenaPool()

	for i := 0; i < sizeWindow+10; i++ {
		a := p.Acquire()
		require.NotNil(t, a.Alloc(8<<10, 1))
		p.Release(a)
	}

	require.LessOrEqual(t, p.count, sizeWindow)
	require.Equal(t, 8<<10, p.nextSize())
}
