// Package kmeanspp clusters 2-D points with k-means++ seeding followed by
// Lloyd's iterative refinement.
//
// # Quick Start
//
//	points := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}
//
//	res, err := kmeanspp.Cluster(ctx, points, 2, kmeanspp.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	for _, c := range res.Centers {
//	    fmt.Println(c.Group, c.X, c.Y)
//	}
//
// The input slice is labeled in place: after a successful call every
// point's Group holds the index of its center, and every center's Group
// equals its own index.
//
// # Convergence
//
// Refinement stops once a pass reassigns at most n/1024 points (rounded
// down), so inputs smaller than 1024 points must be fully stable. The
// result is a local optimum; different seeds may give different clusters.
// Use WithMaxIterations to bound the number of passes.
//
// # Determinism
//
// Given the same seed (or a Source replaying the same draws) and the same
// input, two runs produce bit-identical centers and assignments, whatever
// the value passed to WithWorkers.
//
// # Errors
//
// Invalid (n, k) combinations fail with *ErrInvalidConfiguration before any
// work is done. A cluster that loses all of its points fails the run with
// *ErrEmptyCluster; re-seeding (a new seed) is up to the caller.
//
// # Persistence
//
// Results can be stored with the snapshot and catalog packages on any
// blobstore.BlobStore (local disk, memory, MinIO, S3).
package kmeanspp
