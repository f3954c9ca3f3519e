package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/DjordjeVuckovic/word-importer/internal/ingest/collector"
	"github.com/DjordjeVuckovic/word-importer/internal/ingest/reader"
)

// Source produces the full, ordered list of words to import.
type Source interface {
	Words(ctx context.Context) ([]domain.Word, error)
	Name() string
}

// FileSource reads a UTF-8 word list, one word per line.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return s.Path
}

// Words returns a *apperr.SourceUnavailableError when the file cannot be opened
// or read.
func (s *FileSource) Words(ctx context.Context) ([]domain.Word, error) {
	if s.Path == "" {
		return nil, apperr.NewSourceUnavailable("<empty path>", fmt.Errorf("no words file configured"))
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, apperr.NewSourceUnavailable(s.Path, err)
	}
	defer f.Close()

	c := collector.NewWordCollector(reader.NewLineReader(f))
	words, err := collector.Drain[domain.Word](ctx, c)
	if err != nil {
		return nil, apperr.NewSourceUnavailable(s.Path, err)
	}

	slog.Debug("Words file read", "path", s.Path, "count", len(words))
	return words, nil
}
