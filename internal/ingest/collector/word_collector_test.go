package collector

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/DjordjeVuckovic/word-importer/internal/ingest/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStreamer struct {
	err error
}

func (f failingStreamer) Stream(ctx context.Context) <-chan reader.LineResult {
	out := make(chan reader.LineResult, 2)
	out <- reader.LineResult{Line: "hus"}
	out <- reader.LineResult{Err: f.err}
	close(out)
	return out
}

func TestWordCollector_Drain(t *testing.T) {
	c := NewWordCollector(reader.NewLineReader(strings.NewReader("hus\nbil\n\nbåd\n")))

	words, err := Drain[domain.Word](t.Context(), c)
	require.NoError(t, err)

	assert.Equal(t, []domain.Word{"hus", "bil", "båd"}, words)
}

func TestWordCollector_Drain_PropagatesReadError(t *testing.T) {
	readErr := errors.New("disk on fire")
	c := NewWordCollector(failingStreamer{err: readErr})

	words, err := Drain[domain.Word](t.Context(), c)
	assert.ErrorIs(t, err, readErr)
	assert.Nil(t, words)
}

func TestWordCollector_Drain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	c := NewWordCollector(reader.NewLineReader(strings.NewReader(strings.Repeat("ord\n", 10))))
	_, err := Drain[domain.Word](ctx, c)
	assert.ErrorIs(t, err, context.Canceled)
}
