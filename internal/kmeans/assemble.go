package kmeans

import (
	"context"

	"github.com/hupe1980/kmeanspp/geom"
)

// relabel overwrites every center's Group with its position.
func relabel(centers []geom.Center) {
	for i := range centers {
		centers[i].Group = i
	}
}

// Run seeds and refines in one call.
func Run(ctx context.Context, points []geom.Point, k int, src Source, opts Options) ([]geom.Center, Stats, error) {
	centers, err := Seed(ctx, points, k, src, opts)
	if err != nil {
		return nil, Stats{}, err
	}
	if opts.OnSeeded != nil {
		opts.OnSeeded(centers)
	}

	stats, err := Refine(ctx, points, centers, opts)
	if err != nil {
		return nil, stats, err
	}

	return centers, stats, nil
}
