package assets

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of asynchronous work producing a value of type T. The
// context is the batch context; a task may honor its cancellation but is
// never forcibly terminated.
type Task[T any] func(ctx context.Context) (T, error)

// RunBounded runs tasks with at most limit of them in flight at once and
// returns their results in input order, independent of completion order.
//
// The first task to fail aborts the whole call with that error; no partial
// results are returned. Tasks already running are offered a cancelled context
// but not awaited for cancellation, so a slow in-flight task may finish into
// the void. An empty task list resolves immediately; limit >= len(tasks)
// behaves as fully unbounded concurrency.
func RunBounded[T any](ctx context.Context, tasks []Task[T], limit int) ([]T, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	if len(tasks) == 0 {
		return []T{}, nil
	}

	// Pre-allocated so each task writes only its own slot; no locking needed.
	results := make([]T, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, task := range tasks {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			v, err := task(ctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
