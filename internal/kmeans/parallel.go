package kmeans

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny inputs from paying goroutine overhead.
const minChunk = 2048

// forEachChunk splits [0, n) into contiguous ranges and runs fn on each.
// Chunk boundaries depend only on n and workers, so per-chunk results can be
// combined in chunk order for reproducible output.
func forEachChunk(ctx context.Context, n, workers int, fn func(chunk, lo, hi int)) error {
	chunks := chunkCount(n, workers)
	if chunks <= 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(0, 0, n)
		return nil
	}

	size := (n + chunks - 1) / chunks
	g, gctx := errgroup.WithContext(ctx)
	for c := 0; c < chunks; c++ {
		lo := c * size
		hi := min(lo+size, n)
		if lo >= hi {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(c, lo, hi)
			return nil
		})
	}
	return g.Wait()
}

func chunkCount(n, workers int) int {
	if workers <= 1 || n < 2*minChunk {
		return 1
	}
	return min(workers, n/minChunk)
}
