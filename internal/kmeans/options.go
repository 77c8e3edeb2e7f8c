package kmeans

import "github.com/hupe1980/kmeanspp/geom"

// IterationStats describes one completed refinement pass.
type IterationStats struct {
	Iteration int
	Changed   int
	Threshold int
}

// Options tunes Seed and Refine. The zero value runs single-threaded with
// no iteration cap.
type Options struct {
	// Workers bounds the goroutines used for point-level distance work.
	// Values <= 1 run inline.
	Workers int

	// MaxIterations caps the number of refinement passes. 0 means unbounded.
	MaxIterations int

	// OnSeeded, if set, is called by Run once seeding has finished.
	OnSeeded func(centers []geom.Center)

	// OnIteration, if set, is called after every refinement pass.
	OnIteration func(IterationStats)
}
