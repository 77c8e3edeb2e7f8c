package snapshot

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/codec"
	"github.com/hupe1980/kmeanspp/geom"
	"github.com/hupe1980/kmeanspp/internal/conv"
	"github.com/hupe1980/kmeanspp/resource"
)

// document is the encoded body of a snapshot.
type document struct {
	Centers    []geom.Center `json:"centers"`
	Points     []geom.Point  `json:"points"`
	Iterations int           `json:"iterations"`
	Changed    []int         `json:"changed"`
	Converged  bool          `json:"converged"`
	Inertia    float64       `json:"inertia"`
	Members    [][]byte      `json:"members"`
}

// Encode serializes res into the snapshot format.
func Encode(res *kmeanspp.Result, optFns ...Option) ([]byte, error) {
	return encode(res, applyOptions(optFns))
}

func encode(res *kmeanspp.Result, o options) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("snapshot: nil result")
	}

	doc := document{
		Centers:    res.Centers,
		Points:     res.Points,
		Iterations: res.Iterations,
		Changed:    res.Changed,
		Converged:  res.Converged,
		Inertia:    res.Inertia,
		Members:    make([][]byte, res.K()),
	}
	for i := range doc.Members {
		b, err := res.Members(i).ToBytes()
		if err != nil {
			return nil, fmt.Errorf("snapshot: members of cluster %d: %w", i, err)
		}
		doc.Members[i] = b
	}

	raw, err := o.codec.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s marshal: %w", o.codec.Name(), err)
	}

	rawLen, err := conv.IntToUint32(len(raw))
	if err != nil {
		return nil, fmt.Errorf("snapshot: document length: %w", err)
	}

	body, applied, err := compress(raw, o.compression)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s compress: %w", o.compression, err)
	}

	return encodeFrame(header{
		Version:     Version,
		Compression: applied,
		Codec:       o.codec.Name(),
		RawLen:      rawLen,
	}, body)
}

// Decode parses a snapshot produced by Encode. Only WithMaxRawSize
// affects decoding.
func Decode(data []byte, optFns ...Option) (*kmeanspp.Result, error) {
	return decode(data, applyOptions(optFns))
}

func decode(data []byte, o options) (*kmeanspp.Result, error) {
	h, body, err := decodeFrame(data)
	if err != nil {
		return nil, err
	}
	if err := checkRawLen(h, body, o.maxRawSize); err != nil {
		return nil, err
	}

	c, ok := codec.ByName(h.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrCorrupt, h.Codec)
	}

	raw, err := decompress(body, h.Compression, int(h.RawLen))
	if err != nil {
		return nil, err
	}

	var doc document
	if err := c.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s unmarshal: %v", ErrCorrupt, h.Codec, err)
	}

	res, err := kmeanspp.NewResult(doc.Points, doc.Centers, doc.Iterations, doc.Changed, doc.Converged)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if len(doc.Members) != res.K() {
		return nil, fmt.Errorf("%w: %d member sets for %d centers", ErrCorrupt, len(doc.Members), res.K())
	}
	for i, b := range doc.Members {
		stored := roaring.New()
		if _, err := stored.FromBuffer(b); err != nil {
			return nil, fmt.Errorf("%w: members of cluster %d: %v", ErrCorrupt, i, err)
		}
		if !stored.Equals(res.Members(i)) {
			return nil, fmt.Errorf("%w: members of cluster %d disagree with point labels", ErrCorrupt, i)
		}
	}

	return res, nil
}

// Write encodes res and stores it under name.
func Write(ctx context.Context, store blobstore.BlobStore, name string, res *kmeanspp.Result, optFns ...Option) error {
	o := applyOptions(optFns)
	start := time.Now()

	n, err := write(ctx, store, name, res, o)

	o.logger.LogSave(ctx, name, n, err)
	o.metrics.RecordSave(n, time.Since(start), err)
	return err
}

func write(ctx context.Context, store blobstore.BlobStore, name string, res *kmeanspp.Result, o options) (int, error) {
	data, err := encode(res, o)
	if err != nil {
		return 0, err
	}

	if err := o.rc.AcquireIO(ctx, len(data)); err != nil {
		return 0, err
	}

	if err := store.Put(ctx, name, data); err != nil {
		return 0, fmt.Errorf("snapshot: put %s: %w", name, err)
	}
	return len(data), nil
}

// Read loads and decodes the snapshot stored under name.
func Read(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*kmeanspp.Result, error) {
	o := applyOptions(optFns)
	start := time.Now()

	res, n, err := read(ctx, store, name, o)

	o.logger.LogLoad(ctx, name, n, err)
	o.metrics.RecordLoad(n, time.Since(start), err)
	return res, err
}

func read(ctx context.Context, store blobstore.BlobStore, name string, o options) (*kmeanspp.Result, int, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, 0, fmt.Errorf("snapshot: open %s: %w", name, err)
	}

	if err := o.rc.AcquireIO(ctx, len(data)); err != nil {
		return nil, 0, err
	}

	res, err := decode(data, o)
	if err != nil {
		return nil, len(data), fmt.Errorf("snapshot %s: %w", name, err)
	}
	return res, len(data), nil
}

// WriteTo encodes res and streams it to w, throttled by the configured
// resource controller.
func WriteTo(ctx context.Context, w io.Writer, res *kmeanspp.Result, optFns ...Option) (int64, error) {
	o := applyOptions(optFns)

	data, err := encode(res, o)
	if err != nil {
		return 0, err
	}

	n, err := resource.NewRateLimitedWriter(ctx, w, o.rc).Write(data)
	return int64(n), err
}

// ReadFrom decodes a snapshot streamed from r.
func ReadFrom(ctx context.Context, r io.Reader, optFns ...Option) (*kmeanspp.Result, error) {
	o := applyOptions(optFns)

	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, r, o.rc))
	if err != nil {
		return nil, err
	}
	return decode(data, o)
}
