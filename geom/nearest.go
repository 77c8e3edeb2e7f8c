package geom

// Nearest returns the index of the center closest to p and the squared
// distance to it.
//
// Centers are scanned in order and a later center only wins on a strictly
// smaller distance, so the earliest index among equal minima is returned.
// The scan starts from p.Group; that value is only returned when no center
// is closer than MaxDistance.
func Nearest(p Point, centers []Center) (int, float64) {
	minIdx := p.Group
	minDist := MaxDistance

	for i, c := range centers {
		d := Dist(p, c)
		if d < minDist {
			minDist = d
			minIdx = i
		}
	}

	return minIdx, minDist
}
