package kmeanspp

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeanspp/geom"
	"github.com/hupe1980/kmeanspp/internal/kmeans"
)

var (
	// ErrInvalidK is matched by every *ErrInvalidConfiguration.
	ErrInvalidK = kmeans.ErrInvalidK

	// ErrClusterEmpty is matched by every *ErrEmptyCluster.
	ErrClusterEmpty = kmeans.ErrClusterEmpty

	// ErrInvalidCoordinate is matched by every *ErrInvalidPoint.
	ErrInvalidCoordinate = kmeans.ErrInvalidCoordinate

	// ErrInvalidAssignment indicates a point labeled outside [0, k).
	ErrInvalidAssignment = kmeans.ErrInvalidAssignment
)

// ErrInvalidConfiguration indicates that k is not in [1, n] or that no points
// were given.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrInvalidConfiguration struct {
	K     int
	N     int
	cause error
}

func (e *ErrInvalidConfiguration) Error() string {
	if e.N == 0 {
		return fmt.Sprintf("invalid configuration: no points to cluster (k=%d)", e.K)
	}
	return fmt.Sprintf("invalid configuration: k=%d must be in [1, %d]", e.K, e.N)
}

func (e *ErrInvalidConfiguration) Unwrap() error { return e.cause }

// Is reports whether target is ErrInvalidK.
func (e *ErrInvalidConfiguration) Is(target error) bool { return target == ErrInvalidK }

// ErrEmptyCluster indicates that a cluster received no points during a
// refinement pass. The run can be retried with a different seed.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrEmptyCluster struct {
	Cluster   int
	Iteration int
	cause     error
}

func (e *ErrEmptyCluster) Error() string {
	return fmt.Sprintf("cluster %d became empty in iteration %d", e.Cluster, e.Iteration)
}

func (e *ErrEmptyCluster) Unwrap() error { return e.cause }

// Is reports whether target is ErrClusterEmpty.
func (e *ErrEmptyCluster) Is(target error) bool { return target == ErrClusterEmpty }

// ErrInvalidPoint indicates an input point with a NaN, infinite or larger
// than geom.MaxCoordinate coordinate. It is returned before any work begins.
type ErrInvalidPoint struct {
	Index int
	X, Y  float64
	cause error
}

func (e *ErrInvalidPoint) Error() string {
	return fmt.Sprintf("invalid point %d: (%g, %g) is outside ±%g", e.Index, e.X, e.Y, geom.MaxCoordinate)
}

func (e *ErrInvalidPoint) Unwrap() error { return e.cause }

// Is reports whether target is ErrInvalidCoordinate.
func (e *ErrInvalidPoint) Is(target error) bool { return target == ErrInvalidCoordinate }

// translateError maps core errors onto the public error types.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ce *kmeans.ConfigError
	if errors.As(err, &ce) {
		return &ErrInvalidConfiguration{K: ce.K, N: ce.N, cause: err}
	}
	var pe *kmeans.PointError
	if errors.As(err, &pe) {
		return &ErrInvalidPoint{Index: pe.Index, X: pe.X, Y: pe.Y, cause: err}
	}
	var ee *kmeans.EmptyClusterError
	if errors.As(err, &ee) {
		return &ErrEmptyCluster{Cluster: ee.Cluster, Iteration: ee.Iteration, cause: err}
	}

	return err
}
