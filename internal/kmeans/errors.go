package kmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeanspp/geom"
)

var (
	// ErrInvalidK is matched by every *ConfigError.
	ErrInvalidK = errors.New("kmeans: invalid cluster count")

	// ErrClusterEmpty is matched by every *EmptyClusterError.
	ErrClusterEmpty = errors.New("kmeans: empty cluster")

	// ErrInvalidCoordinate is matched by every *PointError.
	ErrInvalidCoordinate = errors.New("kmeans: coordinate out of range")

	// ErrInvalidAssignment is returned by Refine when a point's group is
	// outside [0, k).
	ErrInvalidAssignment = errors.New("kmeans: point group out of range")
)

// ConfigError reports an invalid (n, k) combination. It is returned before
// any work begins.
type ConfigError struct {
	K int
	N int
}

func (e *ConfigError) Error() string {
	if e.N == 0 {
		return fmt.Sprintf("kmeans: invalid configuration: no points (k=%d)", e.K)
	}
	return fmt.Sprintf("kmeans: invalid configuration: k=%d must be in [1, %d]", e.K, e.N)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidK }

// EmptyClusterError reports that a cluster received no points during an
// iteration, leaving its centroid undefined.
//
// Points keep the assignment of the previous pass and centers are left
// untouched. Callers may re-seed and retry.
type EmptyClusterError struct {
	Cluster   int
	Iteration int
}

func (e *EmptyClusterError) Error() string {
	return fmt.Sprintf("kmeans: cluster %d is empty in iteration %d", e.Cluster, e.Iteration)
}

func (e *EmptyClusterError) Is(target error) bool { return target == ErrClusterEmpty }

// PointError reports an input point that is not finite or lies outside
// ±geom.MaxCoordinate.
type PointError struct {
	Index int
	X, Y  float64
}

func (e *PointError) Error() string {
	return fmt.Sprintf("kmeans: point %d (%g, %g) is outside ±%g", e.Index, e.X, e.Y, geom.MaxCoordinate)
}

func (e *PointError) Is(target error) bool { return target == ErrInvalidCoordinate }

// CheckPoints returns a *PointError for the first point that is not
// geom.Point.InRange.
func CheckPoints(points []geom.Point) error {
	for i, p := range points {
		if !p.InRange() {
			return &PointError{Index: i, X: p.X, Y: p.Y}
		}
	}
	return nil
}

func validate(n, k int) error {
	if n == 0 || k < 1 || k > n {
		return &ConfigError{K: k, N: n}
	}
	return nil
}
