package kmeanspp

import (
	"context"
	"math/rand"
	"time"

	"github.com/hupe1980/kmeanspp/geom"
	"github.com/hupe1980/kmeanspp/internal/kmeans"
)

// Clusterer runs k-means++ / Lloyd clustering with a fixed configuration.
// A Clusterer is safe for concurrent use unless it was configured with a
// Source that is not.
type Clusterer struct {
	opts options
}

// New creates a Clusterer.
func New(optFns ...Option) *Clusterer {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Clusterer{opts: opts}
}

// Cluster is a convenience wrapper around New(optFns...).Cluster.
func Cluster(ctx context.Context, points []geom.Point, k int, optFns ...Option) (*Result, error) {
	return New(optFns...).Cluster(ctx, points, k)
}

// Cluster partitions points into k clusters.
//
// Every point's Group is overwritten with the index of its center. On
// failure the points may hold a partial assignment.
func (c *Clusterer) Cluster(ctx context.Context, points []geom.Point, k int) (*Result, error) {
	start := time.Now()
	n := len(points)
	log := c.opts.logger

	res, err := c.run(ctx, points, k)

	iterations := 0
	converged := false
	if res != nil {
		iterations, converged = res.Iterations, res.Converged
	}
	duration := time.Since(start)
	log.LogCluster(ctx, n, k, iterations, converged, duration, err)
	c.opts.metricsCollector.RecordCluster(n, k, iterations, duration, err)

	return res, err
}

func (c *Clusterer) run(ctx context.Context, points []geom.Point, k int) (*Result, error) {
	n := len(points)
	if n == 0 || k < 1 || k > n {
		return nil, translateError(&kmeans.ConfigError{K: k, N: n})
	}
	if err := kmeans.CheckPoints(points); err != nil {
		return nil, translateError(err)
	}

	if rc := c.opts.resources; rc != nil {
		if err := rc.AcquireJob(ctx); err != nil {
			return nil, err
		}
		defer rc.ReleaseJob()

		mem := EstimateMemory(n, k)
		if err := rc.AcquireMemory(ctx, mem); err != nil {
			return nil, err
		}
		defer rc.ReleaseMemory(mem)
	}

	log := c.opts.logger
	mc := c.opts.metricsCollector
	seedStart := time.Now()
	kopts := kmeans.Options{
		Workers:       c.opts.workers,
		MaxIterations: c.opts.maxIterations,
		OnSeeded: func(centers []geom.Center) {
			log.LogSeed(ctx, n, len(centers), time.Since(seedStart))
		},
		OnIteration: func(s kmeans.IterationStats) {
			log.LogIteration(ctx, s.Iteration, s.Changed, s.Threshold)
			mc.RecordIteration(s.Changed)
		},
	}

	centers, stats, err := kmeans.Run(ctx, points, k, c.source(), kopts)
	if err != nil {
		return nil, translateError(err)
	}

	return NewResult(points, centers, stats.Iterations, stats.Changed, stats.Converged)
}

func (c *Clusterer) source() Source {
	switch {
	case c.opts.source != nil:
		return c.opts.source
	case c.opts.seeded:
		return rand.New(rand.NewSource(c.opts.seed))
	default:
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// EstimateMemory returns the approximate number of bytes a run over n points
// and k clusters allocates on top of the input.
func EstimateMemory(n, k int) int64 {
	const (
		distanceBytes    = 8  // cached seeding distance per point
		centerBytes      = 24 // geom.Center
		accumulatorBytes = 24
	)
	return int64(n)*distanceBytes + int64(k)*(centerBytes+accumulatorBytes)
}
