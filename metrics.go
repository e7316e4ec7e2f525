package growvec

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting container metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    grows    prometheus.Counter
//	    released prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordGrow(from, to int, err error) {
//	    p.grows.Inc()
//	}
type MetricsCollector interface {
	// RecordGrow is called after each buffer reallocation attempt.
	// from and to are capacities in slots, err is nil if successful.
	RecordGrow(from, to int, err error)

	// RecordRelease is called with the number of deleter invocations
	// performed by a single operation.
	RecordRelease(count int)

	// RecordShift is called with the number of elements moved by an
	// insert or remove.
	RecordShift(count int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGrow(int, int, error) {}
func (NoopMetricsCollector) RecordRelease(int)          {}
func (NoopMetricsCollector) RecordShift(int)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GrowCount      atomic.Int64
	GrowErrors     atomic.Int64
	GrowSlots      atomic.Int64
	ReleaseCount   atomic.Int64
	ShiftCount     atomic.Int64
	ShiftedEntries atomic.Int64
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(from, to int, err error) {
	b.GrowCount.Add(1)
	if err != nil {
		b.GrowErrors.Add(1)
		return
	}
	if to > from {
		b.GrowSlots.Add(int64(to - from))
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(count int) {
	b.ReleaseCount.Add(int64(count))
}

// RecordShift implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShift(count int) {
	b.ShiftCount.Add(1)
	b.ShiftedEntries.Add(int64(count))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GrowCount:      b.GrowCount.Load(),
		GrowErrors:     b.GrowErrors.Load(),
		GrowSlots:      b.GrowSlots.Load(),
		ReleaseCount:   b.ReleaseCount.Load(),
		ShiftCount:     b.ShiftCount.Load(),
		ShiftedEntries: b.ShiftedEntries.Load(),
		AvgShift:       b.getAvgShift(),
	}
}

func (b *BasicMetricsCollector) getAvgShift() int64 {
	count := b.ShiftCount.Load()
	if count == 0 {
		return 0
	}
	return b.ShiftedEntries.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GrowCount      int64
	GrowErrors     int64
	GrowSlots      int64
	ReleaseCount   int64
	ShiftCount     int64
	ShiftedEntries int64
	AvgShift       int64
}
