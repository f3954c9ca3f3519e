package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConcurrent_ProgressInBatchOrder(t *testing.T) {
	records := words(95)
	var events []Progress
	l := newLoader(t, Config{BatchSize: 10, Concurrency: 4}, WithProgress(func(p Progress) {
		events = append(events, p)
	}))

	index := make(map[string]int)
	for k := range 10 {
		index[records[k*10]] = k
	}

	// later batches finish first
	summary, err := l.Load(t.Context(), records, func(ctx context.Context, batch []string) error {
		time.Sleep(time.Duration(10-index[batch[0]]) * time.Millisecond)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, events, 10)
	processed := 0
	for k, p := range events {
		size := 10
		if k == 9 {
			size = 5
		}
		processed += size
		assert.Equal(t, k+1, p.Batch)
		assert.Equal(t, processed, p.Processed)
	}
	assert.Equal(t, 95, summary.TotalSucceeded)
	require.Len(t, summary.Batches, 10)
	for k, b := range summary.Batches {
		assert.Equal(t, k, b.Index)
	}
}

func TestLoadConcurrent_SubmitsExactBatches(t *testing.T) {
	records := words(250)
	var mu sync.Mutex
	seen := map[string][]string{}
	l := newLoader(t, Config{BatchSize: 100, Concurrency: 3})

	_, err := l.Load(t.Context(), records, func(ctx context.Context, batch []string) error {
		mu.Lock()
		defer mu.Unlock()
		seen[batch[0]] = append([]string(nil), batch...)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, seen, 3)
	assert.Equal(t, records[0:100], seen[records[0]])
	assert.Equal(t, records[100:200], seen[records[100]])
	assert.Equal(t, records[200:250], seen[records[200]])
}

func TestLoadConcurrent_RespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	l := newLoader(t, Config{BatchSize: 1, Concurrency: 3})

	_, err := l.Load(t.Context(), words(20), func(ctx context.Context, batch []string) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestLoadConcurrent_FailuresAreCounted(t *testing.T) {
	l := newLoader(t, Config{BatchSize: 10, Concurrency: 2})

	summary, err := l.Load(t.Context(), words(30), func(ctx context.Context, batch []string) error {
		if batch[0] == "word-00010" {
			return errors.New("boom")
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 30, summary.TotalAttempted)
	assert.Equal(t, 20, summary.TotalSucceeded)
	assert.Equal(t, 10, summary.TotalFailed)
	require.Len(t, summary.FailedBatches(), 1)
	assert.Equal(t, 1, summary.FailedBatches()[0].Index)
}

func TestLoadConcurrent_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	var (
		calls              atomic.Int32
		startedAfterCancel atomic.Int32
		events             []Progress
	)
	l := newLoader(t, Config{BatchSize: 1, Concurrency: 2}, WithProgress(func(p Progress) {
		events = append(events, p)
	}))

	// both workers are busy when ctx is cancelled, so the next batch is
	// waiting for a free worker at that moment
	summary, err := l.Load(ctx, words(20), func(ctx context.Context, batch []string) error {
		if ctx.Err() != nil {
			startedAfterCancel.Add(1)
			return ctx.Err()
		}
		if calls.Add(1) == 2 {
			cancel()
			return nil
		}
		<-ctx.Done()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Zero(t, startedAfterCancel.Load())
	assert.Equal(t, 2, summary.TotalAttempted)
	assert.Equal(t, 2, summary.TotalSucceeded)
	assert.Zero(t, summary.TotalFailed)
	assert.Equal(t, summary.TotalAttempted, len(summary.Batches))
	for k, p := range events {
		assert.Equal(t, k+1, p.Batch)
	}
}

func TestLoadConcurrent_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var calls atomic.Int32
	l := newLoader(t, Config{BatchSize: 1, Concurrency: 3})

	summary, err := l.Load(ctx, words(10), func(ctx context.Context, batch []string) error {
		calls.Add(1)
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Zero(t, calls.Load())
	assert.Zero(t, summary.TotalAttempted)
	assert.Zero(t, summary.TotalFailed)
}
