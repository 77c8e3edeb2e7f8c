package geom

import "math"

// MaxDistance is the initial "best so far" value of a nearest-center scan.
// It is effectively +infinity: any finite squared distance is smaller.
const MaxDistance = math.MaxFloat64

// MaxCoordinate bounds the coordinates accepted for clustering. Squared
// distances between such points and centroid sums over up to 2^32 of them
// stay finite.
const MaxCoordinate = 1e150

// Point is a 2-D observation.
//
// Group is the index of the owning cluster once the point has been assigned.
// The clustering engine writes Group and never touches X or Y.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group int     `json:"group"`
}

// Center is a cluster center. After convergence Group is the center's own
// index within its center set.
type Center struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group int     `json:"group"`
}

// CenterOf returns an independent Center copied from p.
func CenterOf(p Point) Center {
	return Center{X: p.X, Y: p.Y, Group: p.Group}
}

// SquaredDistance returns (a.x-b.x)^2 + (a.y-b.y)^2.
func SquaredDistance(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

// Dist returns the squared distance between a point and a center.
func Dist(p Point, c Center) float64 {
	return SquaredDistance(p.X, p.Y, c.X, c.Y)
}

// InRange reports whether both coordinates are finite and within
// ±MaxCoordinate.
func (p Point) InRange() bool {
	return math.Abs(p.X) <= MaxCoordinate && math.Abs(p.Y) <= MaxCoordinate
}
