package kmeans

import (
	"context"

	"github.com/hupe1980/kmeanspp/geom"
)

// Stats summarizes a refinement run.
type Stats struct {
	// Iterations is the number of completed passes.
	Iterations int
	// Changed holds the number of reassigned points per pass.
	Changed []int
	// Converged is false when Options.MaxIterations stopped the run early.
	Converged bool
}

// Threshold returns the number of reassignments a pass may still make and be
// considered stable: n/1024, rounded down. Below 1024 points a pass must
// change nothing.
func Threshold(n int) int {
	return n >> 10
}

// Refine runs Lloyd's algorithm on already seeded points and centers.
//
// Each pass recomputes every centroid from the current assignment and then
// moves each point to its nearest centroid. Refinement stops once a pass
// changes at most Threshold(len(points)) points. On return every center's
// Group equals its index.
//
// An empty cluster aborts the run with an *EmptyClusterError.
func Refine(ctx context.Context, points []geom.Point, centers []geom.Center, opts Options) (Stats, error) {
	var stats Stats

	n, k := len(points), len(centers)
	if err := validate(n, k); err != nil {
		return stats, err
	}

	threshold := Threshold(n)
	acc := make(accumulators, k)
	changes := make([]int, chunkCount(n, opts.Workers))

	for iter := 1; ; iter++ {
		if opts.MaxIterations > 0 && iter > opts.MaxIterations {
			relabel(centers)
			return stats, nil
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		acc.reset()
		if err := acc.add(points); err != nil {
			return stats, err
		}
		if err := acc.apply(centers, iter); err != nil {
			return stats, err
		}

		changed, err := reassign(ctx, points, centers, opts.Workers, changes)
		if err != nil {
			return stats, err
		}

		stats.Iterations = iter
		stats.Changed = append(stats.Changed, changed)
		if opts.OnIteration != nil {
			opts.OnIteration(IterationStats{Iteration: iter, Changed: changed, Threshold: threshold})
		}

		if changed <= threshold {
			break
		}
	}

	relabel(centers)
	stats.Converged = true
	return stats, nil
}

// reassign moves every point to its nearest center and returns how many
// points changed group. Per-chunk counts are summed in chunk order.
func reassign(ctx context.Context, points []geom.Point, centers []geom.Center, workers int, changes []int) (int, error) {
	clear(changes)

	err := forEachChunk(ctx, len(points), workers, func(chunk, lo, hi int) {
		c := 0
		for j := lo; j < hi; j++ {
			idx, _ := geom.Nearest(points[j], centers)
			if idx != points[j].Group {
				points[j].Group = idx
				c++
			}
		}
		changes[chunk] = c
	})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, c := range changes {
		total += c
	}
	return total, nil
}
