// Package snapshot persists clustering results to a blobstore.BlobStore.
//
// # File Format
//
// A snapshot is a fixed header followed by the body:
//
//	offset  size  field
//	0       4     magic "KMPP"
//	4       2     format version
//	6       1     compression (0=none, 1=lz4, 2=zstd)
//	7       1     codec name length L
//	8       L     codec name ("json", "go-json")
//	8+L     4     uncompressed body length
//	12+L    4     stored body length
//	16+L    4     CRC32C of the stored body
//	20+L    ...   body
//
// All integers are little-endian. The body is the codec encoding of the
// result document, optionally compressed. Cluster membership is stored as
// portable roaring bitmaps and checked against the point labels on Read.
//
// # Usage
//
//	if err := snapshot.Write(ctx, store, "runs/000001.snap", res,
//	    snapshot.WithCompression(snapshot.CompressionZSTD),
//	); err != nil { ... }
//
//	res, err := snapshot.Read(ctx, store, "runs/000001.snap")
package snapshot
