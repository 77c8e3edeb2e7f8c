// Command kmeanspp generates random points, clusters them with k-means++ and
// optionally commits the result to a run catalog.
//
// Usage:
//
//	kmeanspp -n 100000 -k 11 -seed 7
//	kmeanspp -n 50000 -k 8 -store local -dir ./runs
//	kmeanspp -k 8 -store s3 -bucket my-bucket -prefix exp/ -ddb-table kmeanspp-commits
//
// MinIO credentials come from KMEANSPP_MINIO_ENDPOINT,
// KMEANSPP_MINIO_ACCESS_KEY, KMEANSPP_MINIO_SECRET_KEY and
// KMEANSPP_MINIO_SECURE. S3 and DynamoDB use the default AWS credential chain.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/blobstore/minio"
	"github.com/hupe1980/kmeanspp/blobstore/s3"
	"github.com/hupe1980/kmeanspp/catalog"
	"github.com/hupe1980/kmeanspp/codec"
	"github.com/hupe1980/kmeanspp/geom"
	"github.com/hupe1980/kmeanspp/resource"
	"github.com/hupe1980/kmeanspp/snapshot"
)

type cliConfig struct {
	n          int
	k          int
	radius     float64
	seed       int64
	workers    int
	maxIter    int
	retries    int
	store      string
	dir        string
	bucket     string
	prefix     string
	ddbTable   string
	compress   string
	codec      string
	export     string
	ioLimit    int
	logLevel   string
	logFormat  string
	showCenter bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "kmeanspp:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (cliConfig, error) {
	var cfg cliConfig

	fs := flag.NewFlagSet("kmeanspp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.n, "n", 100000, "number of points to generate")
	fs.IntVar(&cfg.k, "k", 11, "number of clusters")
	fs.Float64Var(&cfg.radius, "radius", 10, "radius of the generated point disc")
	fs.Int64Var(&cfg.seed, "seed", time.Now().UnixNano(), "random seed for points and seeding")
	fs.IntVar(&cfg.workers, "workers", 1, "parallel workers, <= 0 uses GOMAXPROCS")
	fs.IntVar(&cfg.maxIter, "max-iter", 0, "cap on refinement passes, 0 for none")
	fs.IntVar(&cfg.retries, "retries", 3, "re-seed attempts after an empty cluster")
	fs.StringVar(&cfg.store, "store", "", "catalog backend: local, minio, s3 (empty disables)")
	fs.StringVar(&cfg.dir, "dir", "kmeanspp-runs", "catalog directory for -store local")
	fs.StringVar(&cfg.bucket, "bucket", "", "bucket for -store minio and s3")
	fs.StringVar(&cfg.prefix, "prefix", "", "key prefix inside the bucket")
	fs.StringVar(&cfg.ddbTable, "ddb-table", "", "DynamoDB table for the CURRENT pointer with -store s3")
	fs.StringVar(&cfg.compress, "compression", "zstd", "snapshot compression: none, lz4, zstd")
	fs.StringVar(&cfg.codec, "codec", codec.Default.Name(), "snapshot codec: "+strings.Join(codec.Names(), ", "))
	fs.StringVar(&cfg.export, "export", "", "also write the snapshot to this file")
	fs.IntVar(&cfg.ioLimit, "io-limit", 0, "snapshot IO limit in bytes per second, 0 for none")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "log format: text, json")
	fs.BoolVar(&cfg.showCenter, "centers", true, "print the cluster table")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if cfg.retries < 0 {
		return cfg, errors.New("-retries must not be negative")
	}
	return cfg, nil
}

func newLogger(cfg cliConfig, w io.Writer) (*kmeanspp.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return nil, fmt.Errorf("-log-level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch cfg.logFormat {
	case "text":
		return kmeanspp.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return kmeanspp.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("-log-format: unknown format %q", cfg.logFormat)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	logger = logger.WithRun(strconv.FormatInt(cfg.seed, 10))

	compression, err := snapshot.ParseCompression(cfg.compress)
	if err != nil {
		return err
	}

	cd, ok := codec.ByName(cfg.codec)
	if !ok {
		return fmt.Errorf("-codec: unknown codec %q (want one of %s)", cfg.codec, strings.Join(codec.Names(), ", "))
	}

	metrics := &kmeanspp.BasicMetricsCollector{}
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: int64(cfg.ioLimit)})

	points := geom.DiskPoints(rand.New(rand.NewSource(cfg.seed)), cfg.n, cfg.radius)

	start := time.Now()
	res, attempts, err := clusterWithRetry(ctx, cfg.retries, logger, func(attempt int) (*kmeanspp.Result, error) {
		return kmeanspp.Cluster(ctx, points, cfg.k,
			kmeanspp.WithSeed(cfg.seed+int64(attempt)),
			kmeanspp.WithWorkers(cfg.workers),
			kmeanspp.WithMaxIterations(cfg.maxIter),
			kmeanspp.WithLogger(logger),
			kmeanspp.WithMetricsCollector(metrics),
			kmeanspp.WithResourceController(rc),
		)
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	snapOpts := []snapshot.Option{
		snapshot.WithCompression(compression),
		snapshot.WithCodec(cd),
		snapshot.WithLogger(logger),
		snapshot.WithMetricsCollector(metrics),
		snapshot.WithResourceController(rc),
	}

	var runName string
	if cfg.store != "" {
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		runName, err = catalog.New(store, snapOpts...).Commit(ctx, res)
		if err != nil {
			return err
		}
	}

	if cfg.export != "" {
		if err := exportSnapshot(ctx, cfg.export, res, snapOpts); err != nil {
			return err
		}
	}

	return printSummary(stdout, cfg, res, attempts, elapsed, runName)
}

// clusterWithRetry re-seeds after an empty cluster, up to retries extra
// attempts. It returns the result and the number of attempts made.
func clusterWithRetry(ctx context.Context, retries int, logger *kmeanspp.Logger, cluster func(attempt int) (*kmeanspp.Result, error)) (*kmeanspp.Result, int, error) {
	for attempt := 0; ; attempt++ {
		res, err := cluster(attempt)
		if err == nil {
			return res, attempt + 1, nil
		}
		if !errors.Is(err, kmeanspp.ErrClusterEmpty) || attempt >= retries {
			return nil, attempt + 1, err
		}
		if cerr := ctx.Err(); cerr != nil {
			return nil, attempt + 1, cerr
		}
		logger.WarnContext(ctx, "re-seeding after empty cluster", "attempt", attempt+1, "error", err)
	}
}

func openStore(ctx context.Context, cfg cliConfig) (blobstore.BlobStore, error) {
	switch cfg.store {
	case "local":
		return blobstore.NewLocalStore(cfg.dir), nil
	case "minio":
		if cfg.bucket == "" {
			return nil, errors.New("-store minio requires -bucket")
		}
		secure, _ := strconv.ParseBool(os.Getenv("KMEANSPP_MINIO_SECURE"))
		return minio.Connect(ctx, minio.Config{
			Endpoint:  envOr("KMEANSPP_MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: os.Getenv("KMEANSPP_MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("KMEANSPP_MINIO_SECRET_KEY"),
			Region:    os.Getenv("KMEANSPP_MINIO_REGION"),
			Secure:    secure,
			Bucket:    cfg.bucket,
			Prefix:    cfg.prefix,
		})
	case "s3":
		if cfg.bucket == "" {
			return nil, errors.New("-store s3 requires -bucket")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		store := s3.NewStore(awss3.NewFromConfig(awsCfg), cfg.bucket, cfg.prefix)
		if cfg.ddbTable == "" {
			return store, nil
		}
		baseURI := "s3://" + strings.TrimSuffix(cfg.bucket+"/"+cfg.prefix, "/")
		return s3.NewDDBCommitStore(store, dynamodb.NewFromConfig(awsCfg), cfg.ddbTable, baseURI), nil
	default:
		return nil, fmt.Errorf("-store: unknown backend %q", cfg.store)
	}
}

func exportSnapshot(ctx context.Context, path string, res *kmeanspp.Result, opts []snapshot.Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := snapshot.WriteTo(ctx, f, res, opts...); err != nil {
		_ = f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}

func printSummary(w io.Writer, cfg cliConfig, res *kmeanspp.Result, attempts int, elapsed time.Duration, runName string) error {
	fmt.Fprintf(w, "points=%d k=%d seed=%d attempts=%d\n", len(res.Points), res.K(), cfg.seed, attempts)
	fmt.Fprintf(w, "iterations=%d converged=%t inertia=%.4f elapsed=%s\n", res.Iterations, res.Converged, res.Inertia, elapsed.Round(time.Millisecond))
	if runName != "" {
		fmt.Fprintf(w, "committed=%s\n", runName)
	}

	if !cfg.showCenter {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "cluster\tx\ty\tsize\t")
	sizes := res.Sizes()
	for i, c := range res.Centers {
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%d\t\n", i, c.X, c.Y, sizes[i])
	}
	return tw.Flush()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
