package snapshot

import (
	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/codec"
	"github.com/hupe1980/kmeanspp/resource"
)

// DefaultMaxRawSize bounds the decoded document size accepted by Decode.
const DefaultMaxRawSize = 1 << 30

// Option configures Write and Read.
type Option func(*options)

type options struct {
	codec       codec.Codec
	compression Compression
	rc          *resource.Controller
	logger      *kmeanspp.Logger
	metrics     kmeanspp.MetricsCollector
	maxRawSize  int
}

func defaultOptions() options {
	return options{
		codec:       codec.Default,
		compression: CompressionZSTD,
		logger:      kmeanspp.NoopLogger(),
		metrics:     kmeanspp.NoopMetricsCollector{},
		maxRawSize:  DefaultMaxRawSize,
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithCodec sets the body codec used by Write. Read always uses the codec
// named in the header.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression sets the body compression used by Write.
// Default: CompressionZSTD
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceController throttles snapshot IO through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithLogger sets the logger for save and load events.
func WithLogger(l *kmeanspp.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector sets the metrics collector for save and load events.
func WithMetricsCollector(mc kmeanspp.MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metrics = mc
		}
	}
}

// WithMaxRawSize bounds the decoded document size accepted when reading.
// Snapshots whose header declares a larger document are rejected before
// any buffer is allocated. Values <= 0 keep the default.
// Default: DefaultMaxRawSize
func WithMaxRawSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRawSize = n
		}
	}
}
