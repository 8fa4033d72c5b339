package assets

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBoundedPreservesOrder(t *testing.T) {
	// Later tasks finish first; results must still come back in input order.
	tasks := make([]Task[int], 10)
	for i := range tasks {
		delay := time.Duration(len(tasks)-i) * time.Millisecond
		tasks[i] = func(ctx context.Context) (int, error) {
			time.Sleep(delay)
			return i, nil
		}
	}

	results, err := RunBounded(context.Background(), tasks, 10)
	require.NoError(t, err)
	require.Len(t, results, 10)
	for i, v := range results {
		assert.Equal(t, i, v, "result slot %d", i)
	}
}

func TestRunBoundedRespectsLimit(t *testing.T) {
	const limit = 3

	var inFlight, peak atomic.Int32
	tasks := make([]Task[struct{}], 10)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (struct{}, error) {
			cur := inFlight.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return struct{}{}, nil
		}
	}

	_, err := RunBounded(context.Background(), tasks, limit)
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(limit), "tasks in flight exceeded the bound")
}

func TestRunBoundedFailFast(t *testing.T) {
	sentinel := errors.New("task blew up")

	tasks := make([]Task[int], 8)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (int, error) {
			if i == 4 {
				return 0, sentinel
			}
			return i, nil
		}
	}

	results, err := RunBounded(context.Background(), tasks, 2)
	require.ErrorIs(t, err, sentinel)
	assert.Nil(t, results, "no partial results on failure")
}

func TestRunBoundedEmpty(t *testing.T) {
	results, err := RunBounded(context.Background(), []Task[string]{}, 5)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRunBoundedInvalidLimit(t *testing.T) {
	tasks := []Task[int]{
		func(ctx context.Context) (int, error) { return 1, nil },
	}

	_, err := RunBounded(context.Background(), tasks, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = RunBounded(context.Background(), tasks, -3)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestRunBoundedCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task[int]{
		func(ctx context.Context) (int, error) { return 1, nil },
	}

	_, err := RunBounded(ctx, tasks, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
