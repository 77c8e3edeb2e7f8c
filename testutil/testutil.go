package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/kmeanspp/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// DiskPoints is geom.DiskPoints drawing from r.
func (r *RNG) DiskPoints(n int, radius float64) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return geom.DiskPoints(r.rand, n, radius)
}

// Blobs generates perCluster points around each of the given centers with
// normally distributed offsets of standard deviation spread. Points are
// emitted cluster by cluster.
func (r *RNG) Blobs(centers []geom.Center, perCluster int, spread float64) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]geom.Point, 0, len(centers)*perCluster)
	for _, c := range centers {
		for range perCluster {
			points = append(points, geom.Point{
				X: c.X + r.rand.NormFloat64()*spread,
				Y: c.Y + r.rand.NormFloat64()*spread,
			})
		}
	}
	return points
}

// Grid returns a rows x cols lattice of points spaced step apart, row by row.
func Grid(rows, cols int, step float64) []geom.Point {
	points := make([]geom.Point, 0, rows*cols)
	for i := range rows {
		for j := range cols {
			points = append(points, geom.Point{X: float64(j) * step, Y: float64(i) * step})
		}
	}
	return points
}

// ClonePoints returns a deep copy of points.
func ClonePoints(points []geom.Point) []geom.Point {
	out := make([]geom.Point, len(points))
	copy(out, points)
	return out
}
