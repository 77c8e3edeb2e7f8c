// Package catalog keeps a sequence of clustering snapshots in a BlobStore.
//
// Each Commit writes the result to runs/NNNNNN-<uuid>.snap and then
// publishes the name in the CURRENT blob. Readers resolve CURRENT first, so
// a crash between the two writes leaves the previous run visible.
package catalog
