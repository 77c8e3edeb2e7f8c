// Package kmeans implements 2-D k-means clustering: k-means++ seeding
// followed by Lloyd's iterative refinement.
//
// The package is the computational core behind the public kmeanspp API.
// It never logs; progress is reported through Stats and the optional
// Options.OnIteration observer.
//
// Seeding consumes a single Source in a fixed logical order, so a seeded
// Source yields bit-identical centers and assignments across runs,
// independent of Options.Workers.
package kmeans
