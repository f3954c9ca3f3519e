package loader

import "time"

// Progress is emitted after every attempted batch. Counters are cumulative.
type Progress struct {
	// Batch is the 1-based number of the batch that just finished.
	Batch        int
	TotalBatches int

	BatchSize      int
	BatchSucceeded bool
	BatchErr       error

	Processed    int
	Succeeded    int
	Failed       int
	TotalRecords int

	Elapsed time.Duration
}

// ProgressFunc observes progress. It must not block for long; it runs on the
// goroutine that drives the load.
type ProgressFunc func(p Progress)

// Fraction returns processed/total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.TotalRecords == 0 {
		return 0
	}
	return float64(p.Processed) / float64(p.TotalRecords)
}

func (p Progress) Percent() float64 {
	return p.Fraction() * 100
}

func (p Progress) Done() bool {
	return p.Processed >= p.TotalRecords
}

func (p Progress) RecordsPerSecond() float64 {
	secs := p.Elapsed.Seconds()
	if secs == 0 {
		return 0
	}
	return float64(p.Processed) / secs
}

// EstimatedRemaining extrapolates the elapsed time per record over the records
// not processed yet. Returns 0 before the first batch.
func (p Progress) EstimatedRemaining() time.Duration {
	if p.Processed == 0 {
		return 0
	}
	perRecord := p.Elapsed / time.Duration(p.Processed)
	return perRecord * time.Duration(p.TotalRecords-p.Processed)
}

// MultiProgress fans a progress event out to every non-nil fn, in order.
func MultiProgress(fns ...ProgressFunc) ProgressFunc {
	return func(p Progress) {
		for _, fn := range fns {
			if fn != nil {
				fn(p)
			}
		}
	}
}
