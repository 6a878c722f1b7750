// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolExhaustionAndReset(t *testing.T) {
	p, err := NewPool(64)
	require.NoError(t, err)

	// 40 + 40 exceeds 64, so the second allocation fails.
	require.NotNil(t, p.Alloc(40, 1))
	require.Nil(t, p.Alloc(40, 1))

	// After a reset the same request fits again.
	p.Reset()
	require.NotNil(t, p.Alloc(40, 1))
}

func TestPoolAllocAlignment(t *testing.T) {
	p, err := NewPool(1024)
	require.NoError(t, err)

	require.NotNil(t, p.Alloc(3, 1))
	ptr := p.Alloc(16, 8)
	require.NotNil(t, ptr)
	require.Zero(t, uintptr(ptr)%8)
}

func TestPoolLenCap(t *testing.T) {
	p, err := NewPool(128)
	require.NoError(t, err)
	require.Equal(t, 0, p.Len())
	require.Equal(t, 128, p.Cap())

	require.NotNil(t, p.Alloc(32, 1))
	require.Equal(t, 32, p.Len())
	require.Equal(t, 128, p.Cap())
}

func TestPoolPeakSurvivesReset(t *testing.T) {
	p, err := NewPool(128)
	require.NoError(t, err)

	require.NotNil(t, p.Alloc(100, 1))
	require.Equal(t, 100, p.Peak())

	p.Reset()
	require.Equal(t, 0, p.Len())
	require.Equal(t, 100, p.Peak())

	require.NotNil(t, p.Alloc(10, 1))
	require.Equal(t, 100, p.Peak())
}

func TestPoolRejectsBadCapacity(t *testing.T) {
	_, err := NewPool(0)
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestPoolReleaseStopsAllocation(t *testing.T) {
	p, err := NewPool(64)
	require.NoError(t, err)
	p.Release()
	require.Nil(t, p.Alloc(8, 1))
}
