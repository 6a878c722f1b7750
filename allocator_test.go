// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestAllocateFromArena(t *testing.T) {
	a, err := NewStackArena(1024)
	require.NoError(t, err)

	type entity struct {
		id   int64
		name [20]byte
	}

	e := Allocate[entity](a)
	require.NotNil(t, e)
	e.id = 1000
	require.Equal(t, int(unsafe.Sizeof(entity{})), a.Len())
}

func TestAllocateNilFallsBackToHeap(t *testing.T) {
	v := Allocate[int64](nil)
	require.NotNil(t, v)
	require.Zero(t, *v)
}

func TestAllocateExhaustedFallsBackToHeap(t *testing.T) {
	p, err := NewPool(8)
	require.NoError(t, err)
	require.NotNil(t, p.Alloc(8, 1))

	// Exhausted pool, but the caller still gets usable memory.
	v := Allocate[[64]byte](p)
	require.NotNil(t, v)
	require.Equal(t, 8, p.Len())
}

func TestAllocateSlice(t *testing.T) {
	a, err := NewStackArena(4096)
	require.NoError(t, err)

	s := AllocateSlice[int32](a, 10, 20)
	require.Len(t, s, 10)
	require.Equal(t, 20, cap(s))
	require.Equal(t, 20*4, a.Len())

	for i := range s {
		s[i] = int32(i)
	}
	require.Equal(t, int32(9), s[9])
}

func TestSliceAppendGrowsFromArena(t *testing.T) {
	a, err := NewStackArena(64 << 10)
	require.NoError(t, err)

	var s []int
	for i := 0; i < 1000; i++ {
		s = SliceAppend(a, s, i)
	}
	require.Len(t, s, 1000)
	for i, v := range s {
		require.Equal(t, i, v)
	}
	require.NotZero(t, a.Len())
}

func TestSliceAppendNilAllocator(t *testing.T) {
	s := SliceAppend[int](nil, nil, 1, 2, 3)
	require.Equal(t, []int{1, 2, 3}, s)
}

func TestGrowCap(t *testing.T) {
	require.Equal(t, 5, growCap(0, 5))
	require.Equal(t, 8, growCap(4, 5))
	require.Equal(t, 16, growCap(4, 9))
	// Past the threshold growth slows to 25% steps.
	require.Equal(t, 320, growCap(256, 300))
}
