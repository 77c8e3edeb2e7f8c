package kmeanspp

import (
	"runtime"

	"github.com/hupe1980/kmeanspp/internal/kmeans"
	"github.com/hupe1980/kmeanspp/resource"
)

// Source supplies the random draws used for seeding.
// *math/rand.Rand satisfies Source. A Source is consumed by one run at a
// time; share it between concurrent runs only if it is safe for concurrent use.
type Source = kmeans.Source

type options struct {
	source           Source
	seed             int64
	seeded           bool
	maxIterations    int
	workers          int
	logger           *Logger
	metricsCollector MetricsCollector
	resources        *resource.Controller
}

func defaultOptions() options {
	return options{
		workers:          1,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a Clusterer.
type Option func(*options)

// WithSource sets the random source used for seeding. It takes precedence
// over WithSeed.
func WithSource(src Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithSeed makes every run start from a fresh math/rand source seeded with
// seed, so repeated runs over the same input give identical results.
//
// Without WithSeed or WithSource each run is seeded from the clock.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithMaxIterations caps the number of refinement passes. A run that hits
// the cap returns a Result with Converged set to false. 0 (the default)
// means unbounded.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.maxIterations = n
	}
}

// WithWorkers sets how many goroutines share the per-point distance work.
// Results do not depend on this value. n <= 0 selects runtime.GOMAXPROCS(0).
//
// Recommended values:
//   - 1: small inputs (the default)
//   - GOMAXPROCS: inputs with hundreds of thousands of points
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeanspp.BasicMetricsCollector{}
//	c := kmeanspp.New(kmeanspp.WithMetricsCollector(metrics))
//	// ... run clustering ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController bounds concurrent runs and their estimated memory.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}
