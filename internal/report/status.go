package report

import (
	"sync"
	"time"

	"github.com/DjordjeVuckovic/word-importer/internal/loader"
	"github.com/DjordjeVuckovic/word-importer/pkg/utils"
	"github.com/google/uuid"
)

type State string

const (
	StatePending  State = "pending"
	StateRunning  State = "running"
	StateFinished State = "finished"
	StateFailed   State = "failed"
)

// Status is a point-in-time view of an import run.
type Status struct {
	RunID        uuid.UUID  `json:"runId"`
	State        State      `json:"state"`
	Source       string     `json:"source,omitempty"`
	Batch        int        `json:"batch"`
	TotalBatches int        `json:"totalBatches"`
	Processed    int        `json:"processed"`
	Succeeded    int        `json:"succeeded"`
	Failed       int        `json:"failed"`
	TotalRecords int        `json:"totalRecords"`
	Percent      float64    `json:"percent"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty"`
	LastError    string     `json:"lastError,omitempty"`
}

// StatusTracker keeps the latest Status of one run. It is safe for concurrent
// use: the loader writes, HTTP handlers read.
type StatusTracker struct {
	mu     sync.RWMutex
	status Status
}

func NewStatusTracker(runID uuid.UUID) *StatusTracker {
	return &StatusTracker{
		status: Status{RunID: runID, State: StatePending},
	}
}

func (t *StatusTracker) Start(source string, totalRecords, totalBatches int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.status.State = StateRunning
	t.status.Source = source
	t.status.TotalRecords = totalRecords
	t.status.TotalBatches = totalBatches
	t.status.StartedAt = &now
}

// Observe is a loader.ProgressFunc.
func (t *StatusTracker) Observe(p loader.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.Batch = p.Batch
	t.status.TotalBatches = p.TotalBatches
	t.status.Processed = p.Processed
	t.status.Succeeded = p.Succeeded
	t.status.Failed = p.Failed
	t.status.TotalRecords = p.TotalRecords
	t.status.Percent = utils.RoundDecimal(p.Percent(), 2)
	if p.BatchErr != nil {
		t.status.LastError = p.BatchErr.Error()
	}
}

// Finish marks the run as finished, or failed when err is non-nil or any batch
// failed.
func (t *StatusTracker) Finish(s *loader.Summary, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.status.FinishedAt = &now
	t.status.State = StateFinished
	if err != nil {
		t.status.State = StateFailed
		t.status.LastError = err.Error()
	}
	if s != nil && s.HasFailures() {
		t.status.State = StateFailed
	}
}

func (t *StatusTracker) Snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.status
}
