package reader

import (
	"bufio"
	"context"
	"io"
	"strings"
)

const (
	utf8BOM        = "\uFEFF"
	maxLineBytes   = 1024 * 1024
	initialBufSize = 64 * 1024
)

type LineResult struct {
	Line string
	Err  error
}

// LineReader reads newline separated values. Lines are trimmed and blank lines
// are skipped; nothing else is validated.
type LineReader struct {
	reader io.Reader
}

func NewLineReader(reader io.Reader) *LineReader {
	return &LineReader{
		reader: reader,
	}
}

// Stream emits non-blank lines in file order. The channel is closed after the
// last line, after a read error, or when ctx is done.
func (lr *LineReader) Stream(ctx context.Context) <-chan LineResult {
	out := make(chan LineResult)

	go func() {
		defer close(out)

		scanner := lr.newScanner()
		first := true
		for scanner.Scan() {
			line := normalize(scanner.Text(), first)
			first = false
			if line == "" {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case out <- LineResult{Line: line}:
			}
		}

		if err := scanner.Err(); err != nil {
			select {
			case <-ctx.Done():
			case out <- LineResult{Err: err}:
			}
		}
	}()

	return out
}

func (lr *LineReader) newScanner() *bufio.Scanner {
	scanner := bufio.NewScanner(lr.reader)
	scanner.Buffer(make([]byte, initialBufSize), maxLineBytes)
	return scanner
}

func normalize(line string, first bool) string {
	if first {
		line = strings.TrimPrefix(line, utf8BOM)
	}
	return strings.TrimSpace(line)
}
