package kmeans

// Source supplies the random draws used during seeding.
//
// *math/rand.Rand satisfies Source.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}
