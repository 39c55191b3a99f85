package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every element of items, at most limit at a time
// (no limit when limit <= 0). The context passed to action is cancelled on
// the first error, which is the one returned.
func ForEach[T any](ctx context.Context, items []T, limit int, action func(ctx context.Context, index int, item T) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return action(ctx, i, item)
		})
	}
	return g.Wait()
}

// Map applies mapFn to every element concurrently and keeps the input order.
// On error the partial results are returned with it.
func Map[T any, R any](ctx context.Context, items []T, limit int, mapFn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	err := ForEach(ctx, items, limit, func(ctx context.Context, i int, item T) error {
		r, err := mapFn(ctx, item)
		results[i] = r
		return err
	})
	return results, err
}
