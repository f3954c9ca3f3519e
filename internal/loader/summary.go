package loader

import "time"

// BatchResult is the outcome of one batch.
type BatchResult struct {
	// Index is 0-based.
	Index     int
	Offset    int
	Size      int
	Succeeded bool
	// Err is a *apperr.BatchSubmitError when the batch failed.
	Err      error
	Attempts int
	Duration time.Duration
}

// Summary aggregates every attempted batch of a load.
type Summary struct {
	TotalRecords   int
	TotalBatches   int
	TotalAttempted int
	TotalSucceeded int
	TotalFailed    int

	Batches  []BatchResult
	Duration time.Duration
}

func (s *Summary) HasFailures() bool {
	return s.TotalFailed > 0
}

// Complete reports whether every record was attempted.
func (s *Summary) Complete() bool {
	return s.TotalAttempted == s.TotalRecords
}

func (s *Summary) FailedBatches() []BatchResult {
	var failed []BatchResult
	for _, b := range s.Batches {
		if !b.Succeeded {
			failed = append(failed, b)
		}
	}
	return failed
}

func (s *Summary) Errors() []error {
	var errs []error
	for _, b := range s.Batches {
		if b.Err != nil {
			errs = append(errs, b.Err)
		}
	}
	return errs
}

type tracker struct {
	start   time.Time
	summary Summary
}

func newTracker(totalRecords, totalBatches int) *tracker {
	return &tracker{
		start: time.Now(),
		summary: Summary{
			TotalRecords: totalRecords,
			TotalBatches: totalBatches,
			Batches:      make([]BatchResult, 0, totalBatches),
		},
	}
}

// record must be called in batch order.
func (t *tracker) record(res BatchResult) Progress {
	s := &t.summary
	s.Batches = append(s.Batches, res)
	s.TotalAttempted += res.Size
	if res.Succeeded {
		s.TotalSucceeded += res.Size
	} else {
		s.TotalFailed += res.Size
	}

	return Progress{
		Batch:          res.Index + 1,
		TotalBatches:   s.TotalBatches,
		BatchSize:      res.Size,
		BatchSucceeded: res.Succeeded,
		BatchErr:       res.Err,
		Processed:      s.TotalAttempted,
		Succeeded:      s.TotalSucceeded,
		Failed:         s.TotalFailed,
		TotalRecords:   s.TotalRecords,
		Elapsed:        time.Since(t.start),
	}
}

func (t *tracker) finish() *Summary {
	s := t.summary
	s.Duration = time.Since(t.start)
	return &s
}
