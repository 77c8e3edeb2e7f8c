// Package blobstore is the storage abstraction behind clustering snapshots
// and the run catalog.
//
// A BlobStore holds immutable named blobs. Put replaces a blob atomically so
// readers observe either the old or the new content, never a partial write.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, used by tests
//   - LocalStore: local filesystem with mmap reads
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - s3.DDBCommitStore: S3 with a DynamoDB-backed CURRENT pointer
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
