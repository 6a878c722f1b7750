// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

const (
	// magicLive guards every live allocation record.
	magicLive uint32 = 0xDEADBEEF
	// magicFreed is written into a record when it is cleanly freed, so
	// a second free on the same address is distinguishable from a free
	// of a pointer the tracker never saw.
	magicFreed uint32 = 0
)

// Site identifies the code location a tracked call was made from.
type Site struct {
	File     string
	Line     int
	Function string
}

// Callsite captures the caller's source location, skip frames above
// the immediate caller. Pass 0 for the function that calls Callsite.
func Callsite(skip int) Site {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{File: "unknown"}
	}
	s := Site{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		s.Function = fn.Name()
	}
	return s
}

func (s Site) String() string {
	return fmt.Sprintf("%s:%d (%s)", s.File, s.Line, s.Function)
}

// record is one tracked allocation. Live records form a doubly-linked
// list headed at the tracker so the leak report can walk them in
// reverse allocation order; freed records stay behind in the address
// index as tombstones.
type record struct {
	addr  unsafe.Pointer
	size  int
	site  Site
	magic uint32
	prev  *record
	next  *record
}

// TrackerStats is a snapshot of the tracker's aggregate counters.
type TrackerStats struct {
	LiveCount  int
	LiveBytes  int
	PeakBytes  int
	AllocCalls int
	FreeCalls  int
}

// Tracker records every live allocation handed to it and surfaces
// leaks, double frees and record corruption. It is strategy-agnostic:
// all it ever sees is pointer, size and call-site triples, so it wraps
// a Pool, a Slab or plain heap allocations identically.
//
// Misuse is handled by warning and continuing. TrackFree logs the
// problem, returns a sentinel error and leaves the process running;
// retry and abort policy belongs to the caller.
type Tracker struct {
	byAddr map[unsafe.Pointer]*record
	head   *record
	logger log.Logger

	liveCount  int
	liveBytes  int
	peakBytes  int
	allocCalls int
	freeCalls  int

	untrackedFrees int
	doubleFrees    int
	corruptions    int
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger routes the tracker's misuse warnings to l. The default is
// a nop logger.
func WithLogger(l log.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = l
	}
}

// NewTracker creates an empty Tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		byAddr: make(map[unsafe.Pointer]*record),
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TrackAlloc registers a successful allocation of size bytes at ptr.
// Call it immediately after the underlying strategy hands the memory
// out. A nil pointer is ignored.
func (t *Tracker) TrackAlloc(ptr unsafe.Pointer, size int, site Site) {
	if ptr == nil {
		return
	}
	if old, ok := t.byAddr[ptr]; ok && old.magic != magicFreed {
		// The address came back without a free passing through the
		// tracker, e.g. the strategy was reset underneath us. Honor
		// the newest allocation. Anything not cleanly freed is still
		// on the live list and has to come off it.
		t.unlink(old)
		t.liveCount--
		t.liveBytes -= old.size
	}
	rec := &record{addr: ptr, size: size, site: site, magic: magicLive}
	t.byAddr[ptr] = rec
	t.link(rec)
	t.allocCalls++
	t.liveCount++
	t.liveBytes += size
	if t.liveBytes > t.peakBytes {
		t.peakBytes = t.liveBytes
	}
}

// TrackFree unregisters the allocation at ptr. It returns
// ErrUntrackedFree for an address the tracker never saw, ErrDoubleFree
// for one that was already cleanly freed and ErrCorruption when the
// record's guard was scribbled over. All three are warnings: the
// tracker stays consistent and the caller decides how hard to react.
func (t *Tracker) TrackFree(ptr unsafe.Pointer, site Site) error {
	t.freeCalls++
	rec, ok := t.byAddr[ptr]
	if !ok {
		t.untrackedFrees++
		level.Warn(t.logger).Log(
			"msg", "free of untracked pointer",
			"addr", fmt.Sprintf("%p", ptr),
			"site", site.String(),
		)
		return errors.Wrapf(ErrUntrackedFree, "%p freed at %s", ptr, site)
	}
	switch rec.magic {
	case magicLive:
	case magicFreed:
		t.doubleFrees++
		level.Warn(t.logger).Log(
			"msg", "double free",
			"addr", fmt.Sprintf("%p", ptr),
			"site", site.String(),
			"first_freed", rec.site.String(),
		)
		return errors.Wrapf(ErrDoubleFree, "%p freed again at %s, first freed at %s", ptr, site, rec.site)
	default:
		t.corruptions++
		level.Warn(t.logger).Log(
			"msg", "allocation record corrupted",
			"addr", fmt.Sprintf("%p", ptr),
			"site", site.String(),
			"guard", fmt.Sprintf("%#x", rec.magic),
		)
		return errors.Wrapf(ErrCorruption, "%p freed at %s", ptr, site)
	}
	t.unlink(rec)
	rec.magic = magicFreed
	// Remember where the free happened so a later double free can name
	// both sites.
	rec.site = site
	t.liveCount--
	t.liveBytes -= rec.size
	return nil
}

// Stats returns a snapshot of the aggregate counters.
func (t *Tracker) Stats() TrackerStats {
	return TrackerStats{
		LiveCount:  t.liveCount,
		LiveBytes:  t.liveBytes,
		PeakBytes:  t.peakBytes,
		AllocCalls: t.allocCalls,
		FreeCalls:  t.freeCalls,
	}
}

// Reset drops every record, tombstones included, and clears the
// counters.
func (t *Tracker) Reset() {
	t.byAddr = make(map[unsafe.Pointer]*record)
	t.head = nil
	t.liveCount = 0
	t.liveBytes = 0
	t.peakBytes = 0
	t.allocCalls = 0
	t.freeCalls = 0
	t.untrackedFrees = 0
	t.doubleFrees = 0
	t.corruptions = 0
}

func (t *Tracker) link(rec *record) {
	rec.next = t.head
	if t.head != nil {
		t.head.prev = rec
	}
	t.head = rec
}

func (t *Tracker) unlink(rec *record) {
	if rec.prev != nil {
		rec.prev.next = rec.next
	} else {
		t.head = rec.next
	}
	if rec.next != nil {
		rec.next.prev = rec.prev
	}
	rec.prev = nil
	rec.next = nil
}
