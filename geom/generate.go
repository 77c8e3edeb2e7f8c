package geom

import "math"

// Float64Source supplies uniform draws in [0, 1).
// *math/rand.Rand satisfies Float64Source.
type Float64Source interface {
	Float64() float64
}

// DiskPoints samples n points inside a disc of the given radius around the
// origin, drawing the radius and then the angle for each point from src.
// The radius is uniform, so points concentrate near the center; the
// distribution is not uniform over the disc area.
func DiskPoints(src Float64Source, n int, radius float64) []Point {
	points := make([]Point, n)
	for i := range points {
		r := src.Float64() * radius
		ang := src.Float64() * 2 * math.Pi
		points[i].X = r * math.Cos(ang)
		points[i].Y = r * math.Sin(ang)
	}
	return points
}
