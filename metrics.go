package kmeanspp

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordCluster is called after each clustering run.
	// n and k describe the input, iterations the number of refinement passes,
	// err is nil if successful.
	RecordCluster(n, k, iterations int, duration time.Duration, err error)

	// RecordIteration is called after each refinement pass with the number
	// of reassigned points.
	RecordIteration(changed int)

	// RecordSave is called after a result snapshot is written.
	RecordSave(bytes int, duration time.Duration, err error)

	// RecordLoad is called after a result snapshot is read.
	RecordLoad(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCluster(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(int)                                {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error)               {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ClusterCount      atomic.Int64
	ClusterErrors     atomic.Int64
	ClusterTotalNanos atomic.Int64
	PointsClustered   atomic.Int64
	Iterations        atomic.Int64
	PointsChanged     atomic.Int64
	SaveCount         atomic.Int64
	SaveErrors        atomic.Int64
	SaveBytes         atomic.Int64
	LoadCount         atomic.Int64
	LoadErrors        atomic.Int64
	LoadBytes         atomic.Int64
}

// RecordCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCluster(n, k, iterations int, duration time.Duration, err error) {
	b.ClusterCount.Add(1)
	b.ClusterTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ClusterErrors.Add(1)
		return
	}
	b.PointsClustered.Add(int64(n))
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(changed int) {
	b.Iterations.Add(1)
	b.PointsChanged.Add(int64(changed))
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(bytes int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.SaveBytes.Add(int64(bytes))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ClusterCount:    b.ClusterCount.Load(),
		ClusterErrors:   b.ClusterErrors.Load(),
		ClusterAvgNanos: b.getAvgClusterNanos(),
		PointsClustered: b.PointsClustered.Load(),
		Iterations:      b.Iterations.Load(),
		PointsChanged:   b.PointsChanged.Load(),
		SaveCount:       b.SaveCount.Load(),
		SaveErrors:      b.SaveErrors.Load(),
		SaveBytes:       b.SaveBytes.Load(),
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadBytes:       b.LoadBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgClusterNanos() int64 {
	count := b.ClusterCount.Load()
	if count == 0 {
		return 0
	}
	return b.ClusterTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ClusterCount    int64
	ClusterErrors   int64
	ClusterAvgNanos int64
	PointsClustered int64
	Iterations      int64
	PointsChanged   int64
	SaveCount       int64
	SaveErrors      int64
	SaveBytes       int64
	LoadCount       int64
	LoadErrors      int64
	LoadBytes       int64
}
