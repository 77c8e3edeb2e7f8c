package kmeanspp

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeanspp/geom"
	"github.com/hupe1980/kmeanspp/internal/conv"
)

// Result is the outcome of a clustering run.
type Result struct {
	// Centers holds the k final centers; Centers[i].Group == i.
	Centers []geom.Center
	// Points is the labeled input. It shares storage with the slice passed
	// to Cluster.
	Points []geom.Point
	// Iterations is the number of refinement passes.
	Iterations int
	// Changed is the number of reassigned points per pass.
	Changed []int
	// Converged is false when WithMaxIterations ended the run early.
	Converged bool
	// Inertia is the sum of squared distances from each point to its center.
	Inertia float64

	members []*roaring.Bitmap
}

// NewResult assembles a Result from labeled points and centers. It is used
// when results are restored from storage.
func NewResult(points []geom.Point, centers []geom.Center, iterations int, changed []int, converged bool) (*Result, error) {
	r := &Result{
		Centers:    centers,
		Points:     points,
		Iterations: iterations,
		Changed:    changed,
		Converged:  converged,
	}
	if err := r.index(); err != nil {
		return nil, err
	}
	return r, nil
}

// index builds the per-cluster member bitmaps and the inertia.
func (r *Result) index() error {
	k := len(r.Centers)
	r.members = make([]*roaring.Bitmap, k)
	for i := range r.members {
		r.members[i] = roaring.New()
	}

	r.Inertia = 0
	for j, p := range r.Points {
		if p.Group < 0 || p.Group >= k {
			return fmt.Errorf("%w: point %d has group %d (k=%d)", ErrInvalidAssignment, j, p.Group, k)
		}
		id, err := memberID(j)
		if err != nil {
			return err
		}
		r.members[p.Group].Add(id)
		r.Inertia += geom.Dist(p, r.Centers[p.Group])
	}

	for _, m := range r.members {
		m.RunOptimize()
	}
	return nil
}

// memberID converts a point index into a bitmap member. Results hold at
// most 2^32 points.
func memberID(j int) (uint32, error) {
	id, err := conv.IntToUint32(j)
	if err != nil {
		return 0, fmt.Errorf("point %d: %w", j, err)
	}
	return id, nil
}

// K returns the number of clusters.
func (r *Result) K() int {
	return len(r.Centers)
}

// Members returns the indices of the points assigned to cluster i.
// The returned bitmap is a copy.
func (r *Result) Members(i int) *roaring.Bitmap {
	if i < 0 || i >= len(r.members) {
		return roaring.New()
	}
	return r.members[i].Clone()
}

// Sizes returns the number of points in each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.members))
	for i, m := range r.members {
		sizes[i] = int(m.GetCardinality())
	}
	return sizes
}

// Assignments returns the cluster index of every point, in input order.
func (r *Result) Assignments() []int {
	out := make([]int, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Group
	}
	return out
}
