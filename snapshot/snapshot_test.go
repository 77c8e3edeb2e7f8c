package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"log/slog"
	"testing"

	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/codec"
	"github.com/hupe1980/kmeanspp/geom"
	"github.com/hupe1980/kmeanspp/resource"
	"github.com/hupe1980/kmeanspp/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clustered(t *testing.T, n, k int) *kmeanspp.Result {
	t.Helper()
	points := testutil.NewRNG(int64(n)).DiskPoints(n, 10)
	res, err := kmeanspp.Cluster(context.Background(), points, k, kmeanspp.WithSeed(42))
	require.NoError(t, err)
	return res
}

func assertSameResult(t *testing.T, want, got *kmeanspp.Result) {
	t.Helper()
	assert.Equal(t, want.Centers, got.Centers)
	assert.Equal(t, want.Points, got.Points)
	assert.Equal(t, want.Iterations, got.Iterations)
	assert.Equal(t, want.Changed, got.Changed)
	assert.Equal(t, want.Converged, got.Converged)
	assert.InDelta(t, want.Inertia, got.Inertia, 1e-9)
	assert.Equal(t, want.Sizes(), got.Sizes())
}

func TestWriteRead(t *testing.T) {
	res := clustered(t, 2000, 6)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		for _, cd := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
			t.Run(c.String()+"/"+cd.Name(), func(t *testing.T) {
				ctx := context.Background()
				store := blobstore.NewMemoryStore()

				require.NoError(t, Write(ctx, store, "runs/000001.snap", res, WithCompression(c), WithCodec(cd)))

				got, err := Read(ctx, store, "runs/000001.snap")
				require.NoError(t, err)
				assertSameResult(t, res, got)
			})
		}
	}
}

func TestEncode_CompressionShrinks(t *testing.T) {
	res := clustered(t, 4000, 4)

	plain, err := Encode(res, WithCompression(CompressionNone))
	require.NoError(t, err)
	zstd, err := Encode(res, WithCompression(CompressionZSTD))
	require.NoError(t, err)

	assert.Less(t, len(zstd), len(plain))
	assert.Equal(t, byte(CompressionZSTD), zstd[6])
	assert.Equal(t, byte(CompressionNone), plain[6])
}

func TestEncode_Header(t *testing.T) {
	res, err := kmeanspp.NewResult(
		[]geom.Point{{X: 0, Y: 0, Group: 0}, {X: 1, Y: 1, Group: 0}},
		[]geom.Center{{X: 0.5, Y: 0.5, Group: 0}},
		1, []int{0}, true,
	)
	require.NoError(t, err)

	data, err := Encode(res, WithCompression(CompressionNone), WithCodec(codec.GoJSON{}))
	require.NoError(t, err)

	assert.Equal(t, "KMPP", string(data[:4]))
	assert.Equal(t, uint16(Version), binary.LittleEndian.Uint16(data[4:]))
	assert.Equal(t, byte(len("go-json")), data[7])
	assert.Equal(t, "go-json", string(data[8:15]))

	got, err := Decode(data)
	require.NoError(t, err)
	assertSameResult(t, res, got)
}

func TestDecode_Corruption(t *testing.T) {
	res := clustered(t, 500, 3)
	data, err := Encode(res)
	require.NoError(t, err)

	t.Run("Truncated", func(t *testing.T) {
		_, err := Decode(data[:len(data)-1])
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("ShortHeader", func(t *testing.T) {
		_, err := Decode(data[:10])
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("BadMagic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] = 'X'
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("FlippedBodyByte", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-3] ^= 0xff
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("FutureVersion", func(t *testing.T) {
		bad := bytes.Clone(data)
		binary.LittleEndian.PutUint16(bad[4:], Version+1)
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})
}

func TestDecode_RawLenBounds(t *testing.T) {
	res := clustered(t, 500, 3)

	rawLenOffset := func(data []byte) int { return 8 + int(data[7]) }

	t.Run("ExceedsLimit", func(t *testing.T) {
		data, err := Encode(res, WithCompression(CompressionNone))
		require.NoError(t, err)

		rawLen := int(binary.LittleEndian.Uint32(data[rawLenOffset(data):]))
		_, err = Decode(data, WithMaxRawSize(rawLen))
		require.NoError(t, err)

		_, err = Decode(data, WithMaxRawSize(rawLen-1))
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.Contains(t, err.Error(), "exceeds limit")
	})

	t.Run("HugeDeclaredSize", func(t *testing.T) {
		data, err := encodeFrame(header{
			Version:     Version,
			Compression: CompressionLZ4,
			Codec:       codec.Default.Name(),
			RawLen:      0xffffffff,
		}, []byte{0x10, 'x'})
		require.NoError(t, err)

		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("LZ4BeyondMaxRatio", func(t *testing.T) {
		body := []byte{0x10, 'x', 0, 0}
		data, err := encodeFrame(header{
			Version:     Version,
			Compression: CompressionLZ4,
			Codec:       codec.Default.Name(),
			RawLen:      uint32(len(body)*lz4MaxRatio + 1),
		}, body)
		require.NoError(t, err)

		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.Contains(t, err.Error(), "cannot expand")
	})

	t.Run("UncompressedLengthMismatch", func(t *testing.T) {
		data, err := Encode(res, WithCompression(CompressionNone))
		require.NoError(t, err)

		off := rawLenOffset(data)
		binary.LittleEndian.PutUint32(data[off:], binary.LittleEndian.Uint32(data[off:])+1)
		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("ZSTDFrameSizeMismatch", func(t *testing.T) {
		data, err := Encode(res, WithCompression(CompressionZSTD))
		require.NoError(t, err)
		require.Equal(t, byte(CompressionZSTD), data[6])

		off := rawLenOffset(data)
		binary.LittleEndian.PutUint32(data[off:], binary.LittleEndian.Uint32(data[off:])+1)
		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestDecode_MembersMismatch(t *testing.T) {
	res, err := kmeanspp.NewResult(
		[]geom.Point{{X: 0, Y: 0, Group: 0}, {X: 9, Y: 9, Group: 1}},
		[]geom.Center{{X: 0, Y: 0, Group: 0}, {X: 9, Y: 9, Group: 1}},
		1, []int{0}, true,
	)
	require.NoError(t, err)

	doc := document{
		Centers:    res.Centers,
		Points:     res.Points,
		Iterations: 1,
		Changed:    []int{0},
		Converged:  true,
	}
	// Swap the member sets.
	for _, i := range []int{1, 0} {
		b, err := res.Members(i).ToBytes()
		require.NoError(t, err)
		doc.Members = append(doc.Members, b)
	}

	raw, err := codec.Default.Marshal(doc)
	require.NoError(t, err)
	data, err := encodeFrame(header{
		Version: Version,
		Codec:   codec.Default.Name(),
		RawLen:  uint32(len(raw)),
	}, raw)
	require.NoError(t, err)

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "disagree")
}

func TestRead_NotFound(t *testing.T) {
	_, err := Read(context.Background(), blobstore.NewMemoryStore(), "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestWriteRead_LocalStore(t *testing.T) {
	res := clustered(t, 1000, 5)
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())

	require.NoError(t, Write(ctx, store, "runs/000001.snap", res, WithCompression(CompressionLZ4)))

	got, err := Read(ctx, store, "runs/000001.snap")
	require.NoError(t, err)
	assertSameResult(t, res, got)
}

func TestWriteRead_LoggingMetricsAndLimits(t *testing.T) {
	res := clustered(t, 300, 3)
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	var buf bytes.Buffer
	logger := kmeanspp.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &kmeanspp.BasicMetricsCollector{}
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 30})

	opts := []Option{WithLogger(logger), WithMetricsCollector(metrics), WithResourceController(rc)}
	require.NoError(t, Write(ctx, store, "a.snap", res, opts...))
	_, err := Read(ctx, store, "a.snap", opts...)
	require.NoError(t, err)
	_, err = Read(ctx, store, "missing.snap", opts...)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, int64(2), stats.LoadCount)
	assert.Equal(t, int64(1), stats.LoadErrors)
	assert.Equal(t, stats.SaveBytes, stats.LoadBytes)

	out := buf.String()
	assert.Contains(t, out, "snapshot saved")
	assert.Contains(t, out, "snapshot loaded")
	assert.Contains(t, out, "snapshot load failed")
}

func TestWriteToReadFrom(t *testing.T) {
	res := clustered(t, 800, 4)
	ctx := context.Background()
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 30})

	var buf bytes.Buffer
	n, err := WriteTo(ctx, &buf, res, WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	got, err := ReadFrom(ctx, &buf, WithResourceController(rc))
	require.NoError(t, err)
	assertSameResult(t, res, got)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCompression("brotli")
	assert.Error(t, err)
}
