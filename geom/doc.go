// Package geom provides the 2-D point model and the squared-distance
// primitives used by the clustering engine.
//
// # Points and Centers
//
// A Point carries its coordinates and the index of the cluster it is
// currently assigned to. A Center has the same shape; once clustering has
// converged its Group equals its own position in the center slice.
//
// # Nearest Center
//
//	idx, d := geom.Nearest(p, centers)
//
// Distances are squared Euclidean distances. No square root is taken since
// only relative ordering matters.
package geom
