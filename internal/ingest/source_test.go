package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Words(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("hus\n\n bil\nbåd\n"), 0o600))

	words, err := NewFileSource(path).Words(t.Context())
	require.NoError(t, err)

	assert.Equal(t, []domain.Word{"hus", "bil", "båd"}, words)
}

func TestFileSource_Words_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	words, err := NewFileSource(path).Words(t.Context())
	require.Error(t, err)
	assert.Nil(t, words)

	var se *apperr.SourceUnavailableError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, path, se.Source)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_Words_EmptyPath(t *testing.T) {
	_, err := NewFileSource("").Words(t.Context())

	var se *apperr.SourceUnavailableError
	assert.True(t, errors.As(err, &se))
}

func TestFileSource_Words_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	words, err := NewFileSource(path).Words(t.Context())
	require.NoError(t, err)
	assert.Empty(t, words)
}
