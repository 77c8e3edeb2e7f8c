// Package testutil provides point generators and random sources for tests,
// benchmarks and the command line tool.
//
// # Random Sources
//
//	rng := testutil.NewRNG(seed)          // seeded, thread-safe
//	src := testutil.NewScriptedSource(    // forces specific draws
//	    []int{0}, []float64{0.5})
//
// # Point Generation
//
//	points := rng.DiskPoints(30000, 10)   // non-uniform disc sample
//	points := rng.Blobs(centers, 100, 0.5)
package testutil
