// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRegionRejectsBadCapacity(t *testing.T) {
	_, err := NewRegion(0)
	require.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = NewRegion(-5)
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestRegionBumpAdvancesCursor(t *testing.T) {
	r, err := NewRegion(1024)
	require.NoError(t, err)
	require.Equal(t, 0, r.Used())
	require.Equal(t, 1024, r.Capacity())

	ptr1, ok := r.Bump(100, 1)
	require.True(t, ok)
	require.NotNil(t, ptr1)
	require.Equal(t, 100, r.Used())

	ptr2, ok := r.Bump(200, 1)
	require.True(t, ok)
	require.NotNil(t, ptr2)
	require.Equal(t, 300, r.Used())
}

func TestRegionBumpAlignment(t *testing.T) {
	r, err := NewRegion(1024)
	require.NoError(t, err)

	// Misalign the cursor, then ask for aligned reservations.
	_, ok := r.Bump(1, 1)
	require.True(t, ok)

	for _, alignment := range []uintptr{2, 4, 8, 16} {
		ptr, ok := r.Bump(8, alignment)
		require.True(t, ok)
		require.Zero(t, uintptr(ptr)%alignment)
	}

	// Alignment 0 selects the default.
	ptr, ok := r.Bump(8, 0)
	require.True(t, ok)
	require.Zero(t, uintptr(ptr)%defaultAlignment)
}

func TestRegionReservationsDoNotOverlap(t *testing.T) {
	r, err := NewRegion(1024)
	require.NoError(t, err)

	type span struct{ start, end uintptr }
	var spans []span
	for i := 0; i < 8; i++ {
		size := uintptr(16 + i*8)
		ptr, ok := r.Bump(size, 8)
		require.True(t, ok)
		spans = append(spans, span{uintptr(ptr), uintptr(ptr) + size})
	}
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			disjoint := spans[i].end <= spans[j].start || spans[j].end <= spans[i].start
			require.True(t, disjoint, "reservations %d and %d overlap", i, j)
		}
	}
}

func TestRegionExhaustionLeavesCursor(t *testing.T) {
	r, err := NewRegion(64)
	require.NoError(t, err)

	_, ok := r.Bump(40, 1)
	require.True(t, ok)

	ptr, ok := r.Bump(40, 1)
	require.False(t, ok)
	require.Nil(t, ptr)
	require.Equal(t, 40, r.Used())
}

func TestRegionResetAllowsRefit(t *testing.T) {
	r, err := NewRegion(64)
	require.NoError(t, err)

	_, ok := r.Bump(64, 1)
	require.True(t, ok)
	_, ok = r.Bump(1, 1)
	require.False(t, ok)

	r.Reset()
	require.Equal(t, 0, r.Used())

	// The same total size always fits again after a reset.
	_, ok = r.Bump(64, 1)
	require.True(t, ok)
}

func TestRegionReleaseRefusesBump(t *testing.T) {
	r, err := NewRegion(64)
	require.NoError(t, err)
	r.release()

	_, ok := r.Bump(1, 1)
	require.False(t, ok)
	require.Equal(t, 0, r.Capacity())
}
