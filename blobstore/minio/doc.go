// Package minio provides a BlobStore backed by MinIO or any other
// S3-compatible server reachable through the MinIO client.
//
// # Basic Usage
//
//	store, err := minio.Connect(ctx, minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "kmeanspp",
//	    Prefix:    "experiments/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cat := catalog.New(store)
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
