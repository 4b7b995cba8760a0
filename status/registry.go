// Package status keeps lock-free runtime counters that are reported when the program exits
package status

import (
	"log/slog"
	"math"
	"sync/atomic"
)

// Registry groups named counters and gauges
// Callers cache the pointer returned by Get and update it without locking
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Attrs returns every metric as slog attributes in key order, ints first
func (r *Registry) Attrs() []any {
	attrs := make([]any, 0, r.Ints.Count()+r.Floats.Count())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		attrs = append(attrs, slog.Int64(key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		attrs = append(attrs, slog.Float64(key, v.Get()))
	})
	return attrs
}

// AtomicFloat is a float64 gauge stored as bits, zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores val
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}
