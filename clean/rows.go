package clean

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// evaluateRows calls fn for every index in [0, n) using up to workers
// goroutines over contiguous chunks. Results land at their own index, so
// output order never depends on scheduling.
func evaluateRows[T any](ctx context.Context, n, workers int, fn func(i int) T) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%256 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				results[i] = fn(i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
