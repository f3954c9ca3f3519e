package collector

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/DjordjeVuckovic/word-importer/internal/ingest/reader"
)

type LineStreamer interface {
	Stream(ctx context.Context) <-chan reader.LineResult
}

type WordCollector struct {
	Reader LineStreamer
}

func NewWordCollector(r LineStreamer) *WordCollector {
	return &WordCollector{
		Reader: r,
	}
}

func (wc *WordCollector) Collect(ctx context.Context) (<-chan Result[domain.Word], error) {
	lines := wc.Reader.Stream(ctx)

	collectionResult := make(chan Result[domain.Word])
	go func() {
		defer close(collectionResult)

		for {
			select {
			case <-ctx.Done():
				return
			case res, ok := <-lines:
				if !ok {
					slog.Debug("Reader channel closed, stopping collection")
					return
				}

				out := Result[domain.Word]{Result: domain.Word(res.Line), Err: res.Err}
				select {
				case <-ctx.Done():
					return
				case collectionResult <- out:
				}
			}
		}
	}()

	return collectionResult, nil
}
