package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/DjordjeVuckovic/word-importer/internal/loader"
)

// Printer writes human readable progress lines. The format is for people, not
// for parsing.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Loaded(count int, source string) {
	p.printf("Loaded %d words from %s\n", count, source)
}

// Progress is a loader.ProgressFunc.
func (p *Printer) Progress(pr loader.Progress) {
	line := fmt.Sprintf("batch %d/%d (%d/%d) %.1f%% - %d inserted, %d failed",
		pr.Batch, pr.TotalBatches, pr.Processed, pr.TotalRecords, pr.Percent(), pr.Succeeded, pr.Failed)
	if pr.BatchErr != nil {
		line += fmt.Sprintf(" (error: %v)", pr.BatchErr)
	}
	p.printf("%s\n", line)
}

func (p *Printer) Summary(s *loader.Summary) {
	p.printf("\nDone! Inserted %d words, %d failed.\n", s.TotalSucceeded, s.TotalFailed)
	if !s.Complete() {
		p.printf("Stopped early: %d of %d words were not attempted.\n", s.TotalRecords-s.TotalAttempted, s.TotalRecords)
	}
}

func (p *Printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format, args...)
}
