package kmeans

import "github.com/hupe1980/kmeanspp/geom"

// accumulator collects the running sums of one cluster during a centroid
// update. It is kept apart from geom.Center so that the label and the
// counter never share a field.
type accumulator struct {
	sumX  float64
	sumY  float64
	count int
}

type accumulators []accumulator

func (a accumulators) reset() {
	for i := range a {
		a[i] = accumulator{}
	}
}

// add sums every point into its cluster in point order.
func (a accumulators) add(points []geom.Point) error {
	k := len(a)
	for i := range points {
		g := points[i].Group
		if g < 0 || g >= k {
			return ErrInvalidAssignment
		}
		a[g].sumX += points[i].X
		a[g].sumY += points[i].Y
		a[g].count++
	}
	return nil
}

// apply writes the centroids into centers. No center is modified when any
// cluster is empty.
func (a accumulators) apply(centers []geom.Center, iteration int) error {
	for i := range a {
		if a[i].count == 0 {
			return &EmptyClusterError{Cluster: i, Iteration: iteration}
		}
	}
	for i := range a {
		n := float64(a[i].count)
		centers[i].X = a[i].sumX / n
		centers[i].Y = a[i].sumY / n
	}
	return nil
}
