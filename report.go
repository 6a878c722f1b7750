// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/dustin/go-humanize"
)

// Leak describes one allocation that was still live at report time.
type Leak struct {
	Address unsafe.Pointer
	Size    int
	Site    Site
}

// LeakReport lists every allocation the tracker still considers live,
// newest first, together with the total number of leaked bytes.
type LeakReport struct {
	Leaks       []Leak
	LeakedBytes int
}

// Report walks the live list and returns the outstanding allocations.
// It is typically called at subsystem shutdown and printed by the
// caller.
func (t *Tracker) Report() LeakReport {
	var r LeakReport
	for rec := t.head; rec != nil; rec = rec.next {
		r.Leaks = append(r.Leaks, Leak{Address: rec.addr, Size: rec.size, Site: rec.site})
		r.LeakedBytes += rec.size
	}
	return r
}

// String renders the report one leak per line.
func (r LeakReport) String() string {
	if len(r.Leaks) == 0 {
		return "no leaks detected"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d leaked allocations, %s total\n", len(r.Leaks), humanize.IBytes(uint64(r.LeakedBytes)))
	for i, l := range r.Leaks {
		fmt.Fprintf(&b, "%d) %p: %d bytes allocated at %s\n", i+1, l.Address, l.Size, l.Site)
	}
	return b.String()
}
