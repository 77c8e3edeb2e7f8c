// Package s3 provides Amazon S3 implementations of blobstore.BlobStore.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "experiments/")
//	cat := catalog.New(store)
//
// S3 has no compare-and-swap, so concurrent writers publishing the catalog's
// CURRENT pointer should wrap the store in a DDBCommitStore, which keeps the
// pointer in DynamoDB behind a conditional write.
//
// # Features
//
//   - Range reads for partial fetches
//   - CRC32C checksums on single-part uploads
//   - Multipart uploads for large snapshots
//   - Automatic pagination for listing
package s3
