package loader

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

type slot struct {
	// decided is closed once the batch is either started or skipped.
	decided chan struct{}
	done    chan struct{}
	skipped bool
	result  BatchResult
}

func (s *slot) skip() {
	s.skipped = true
	close(s.decided)
	close(s.done)
}

// loadConcurrent keeps up to Concurrency batches in flight. Completions are
// buffered per batch and reported strictly in batch order, so progress stays
// identical to the sequential run apart from timing.
//
// Start decisions are taken in batch order: once a batch is skipped because
// ctx is done, every later batch is skipped too and the attempted batches
// stay a prefix of the input.
func (l *Loader[T]) loadConcurrent(ctx context.Context, records []T, bounds [][2]int, submit SubmitFunc[T], t *tracker) error {
	slots := make([]*slot, len(bounds))
	for i := range slots {
		slots[i] = &slot{decided: make(chan struct{}), done: make(chan struct{})}
	}

	sem := make(chan struct{}, l.cfg.Concurrency)
	var g errgroup.Group
	dispatched := make(chan struct{})

	go func() {
		defer close(dispatched)
		for i, b := range bounds {
			acquired := false
			select {
			case sem <- struct{}{}:
				acquired = true
			case <-ctx.Done():
			}

			if !acquired || ctx.Err() != nil {
				if acquired {
					<-sem
				}
				for _, s := range slots[i:] {
					s.skip()
				}
				return
			}

			s := slots[i]
			var prev *slot
			if i > 0 {
				prev = slots[i-1]
			}
			g.Go(func() error {
				defer func() { <-sem }()

				if prev != nil {
					<-prev.decided
				}
				if (prev != nil && prev.skipped) || ctx.Err() != nil {
					s.skip()
					return nil
				}
				close(s.decided)

				defer close(s.done)
				s.result = l.submitBatch(ctx, i, b, records[b[0]:b[1]:b[1]], submit)
				return nil
			})
		}
	}()

	var cancelled bool
	for i, s := range slots {
		<-s.done
		if s.skipped {
			slog.Info("Load cancelled, stopping before next batch",
				"loader", l.opts.name,
				"next_batch", i+1,
				"remaining_batches", len(bounds)-i,
			)
			cancelled = true
			break
		}
		l.emit(t.record(s.result))
	}

	// no g.Go may race with g.Wait
	<-dispatched
	// wait for batches that were in flight when the load was cancelled
	_ = g.Wait()

	if cancelled {
		return ctx.Err()
	}
	return nil
}
