package collector

import "context"

type Result[T any] struct {
	Result T
	Err    error
}

type Collector[T any] interface {
	Collect(ctx context.Context) (<-chan Result[T], error)
}

// Drain reads every result of c into memory. It stops at the first error.
func Drain[T any](ctx context.Context, c Collector[T]) ([]T, error) {
	results, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}

	var items []T
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res, ok := <-results:
			if !ok {
				// a cancelled collection is incomplete
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return items, nil
			}
			if res.Err != nil {
				return nil, res.Err
			}
			items = append(items, res.Result)
		}
	}
}
