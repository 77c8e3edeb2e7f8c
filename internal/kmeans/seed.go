package kmeans

import (
	"context"

	"github.com/hupe1980/kmeanspp/geom"
)

// Seed selects k initial centers from points with k-means++ and assigns every
// point's Group to its nearest seeded center.
//
// Center 0 is a uniform draw. Each further center is drawn with probability
// proportional to the squared distance from a point to its nearest already
// chosen center. The per-point distances are cached and only compared
// against the newest center, which yields the same values as a full rescan.
//
// Centers are independent copies of points. Points outside
// ±geom.MaxCoordinate are rejected with a *PointError.
func Seed(ctx context.Context, points []geom.Point, k int, src Source, opts Options) ([]geom.Center, error) {
	n := len(points)
	if err := validate(n, k); err != nil {
		return nil, err
	}
	if err := CheckPoints(points); err != nil {
		return nil, err
	}

	centers := make([]geom.Center, k)
	centers[0] = geom.CenterOf(points[src.Intn(n)])

	d := make([]float64, n)
	for j := range d {
		d[j] = geom.MaxDistance
	}

	for i := 1; i < k; i++ {
		last := centers[i-1]
		err := forEachChunk(ctx, n, opts.Workers, func(_, lo, hi int) {
			for j := lo; j < hi; j++ {
				if dj := geom.Dist(points[j], last); dj < d[j] {
					d[j] = dj
				}
			}
		})
		if err != nil {
			return nil, err
		}

		sum := 0.0
		for _, dj := range d {
			sum += dj
		}

		centers[i] = geom.CenterOf(points[pick(d, sum*src.Float64())])
	}

	if err := assign(ctx, points, centers, opts.Workers); err != nil {
		return nil, err
	}

	return centers, nil
}

// pick walks d in order, subtracting each weight from target, and returns the
// first index at which target drops to <= 0. If rounding keeps target positive
// through the whole walk, the last index is returned.
func pick(d []float64, target float64) int {
	for j, dj := range d {
		target -= dj
		if target > 0 {
			continue
		}
		return j
	}
	return len(d) - 1
}

// assign sets every point's Group to its nearest center.
func assign(ctx context.Context, points []geom.Point, centers []geom.Center, workers int) error {
	return forEachChunk(ctx, len(points), workers, func(_, lo, hi int) {
		for j := lo; j < hi; j++ {
			points[j].Group, _ = geom.Nearest(points[j], centers)
		}
	})
}
