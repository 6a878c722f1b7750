// SPDX-License-Identifier: Apache-2.0

package memkit

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	liveAllocsDesc = prometheus.NewDesc(
		"memkit_tracker_live_allocations",
		"Number of tracked allocations currently live.",
		nil, nil,
	)
	liveBytesDesc = prometheus.NewDesc(
		"memkit_tracker_live_bytes",
		"Total bytes of tracked allocations currently live.",
		nil, nil,
	)
	peakBytesDesc = prometheus.NewDesc(
		"memkit_tracker_peak_live_bytes",
		"High-water mark of live tracked bytes.",
		nil, nil,
	)
	allocCallsDesc = prometheus.NewDesc(
		"memkit_tracker_alloc_calls_total",
		"Number of allocations registered with the tracker.",
		nil, nil,
	)
	freeCallsDesc = prometheus.NewDesc(
		"memkit_tracker_free_calls_total",
		"Number of frees presented to the tracker, misuses included.",
		nil, nil,
	)
	untrackedFreesDesc = prometheus.NewDesc(
		"memkit_tracker_untracked_frees_total",
		"Frees of addresses the tracker never saw.",
		nil, nil,
	)
	doubleFreesDesc = prometheus.NewDesc(
		"memkit_tracker_double_frees_total",
		"Frees of addresses that were already cleanly freed.",
		nil, nil,
	)
	corruptionsDesc = prometheus.NewDesc(
		"memkit_tracker_corruptions_total",
		"Frees that found a scribbled record guard.",
		nil, nil,
	)
)

var _ prometheus.Collector = (*Tracker)(nil)

// Describe implements prometheus.Collector.
func (t *Tracker) Describe(ch chan<- *prometheus.Desc) {
	ch <- liveAllocsDesc
	ch <- liveBytesDesc
	ch <- peakBytesDesc
	ch <- allocCallsDesc
	ch <- freeCallsDesc
	ch <- untrackedFreesDesc
	ch <- doubleFreesDesc
	ch <- corruptionsDesc
}

// Collect implements prometheus.Collector. The tracker is not locked
// internally; when it is shared between goroutines the caller must
// serialize Collect with the tracked calls, same as every other
// method.
func (t *Tracker) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(liveAllocsDesc, prometheus.GaugeValue, float64(t.liveCount))
	ch <- prometheus.MustNewConstMetric(liveBytesDesc, prometheus.GaugeValue, float64(t.liveBytes))
	ch <- prometheus.MustNewConstMetric(peakBytesDesc, prometheus.GaugeValue, float64(t.peakBytes))
	ch <- prometheus.MustNewConstMetric(allocCallsDesc, prometheus.CounterValue, float64(t.allocCalls))
	ch <- prometheus.MustNewConstMetric(freeCallsDesc, prometheus.CounterValue, float64(t.freeCalls))
	ch <- prometheus.MustNewConstMetric(untrackedFreesDesc, prometheus.CounterValue, float64(t.untrackedFrees))
	ch <- prometheus.MustNewConstMetric(doubleFreesDesc, prometheus.CounterValue, float64(t.doubleFrees))
	ch <- prometheus.MustNewConstMetric(corruptionsDesc, prometheus.CounterValue, float64(t.corruptions))
}
