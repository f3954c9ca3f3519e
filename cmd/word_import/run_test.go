package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWords(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV_PATH", "WORDS_PATH", "BATCH_SIZE", "CONCURRENCY", "RETRY_MAX", "STORAGE_TYPE",
		"SUPABASE_URL", "SUPABASE_SERVICE_KEY", "STATUS_ADDR", "DRY_RUN", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("ENV", "test")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer

	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestRootCmd_DryRun(t *testing.T) {
	isolateEnv(t)
	path := writeWords(t, "hus\n\n  bil  \nbåd\n")

	out, err := execute(t, "--dry-run", "--batch-size", "2", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Loaded 3 words from "+path)
	assert.Contains(t, out, "batch 1/2 (2/3)")
	assert.Contains(t, out, "batch 2/2 (3/3) 100.0%")
	assert.Contains(t, out, "Done! Inserted 3 words, 0 failed.")
}

func TestRootCmd_EmptyFile(t *testing.T) {
	isolateEnv(t)
	path := writeWords(t, "\n   \n")

	out, err := execute(t, "--dry-run", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Loaded 0 words")
	assert.Contains(t, out, "Done! Inserted 0 words, 0 failed.")
}

func TestRootCmd_MissingFile(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "--dry-run", filepath.Join(t.TempDir(), "missing.txt"))

	var srcErr *apperr.SourceUnavailableError
	assert.True(t, errors.As(err, &srcErr))
	assert.NotContains(t, out, "Done!")
}

func TestRootCmd_MissingCredentials(t *testing.T) {
	isolateEnv(t)
	path := writeWords(t, "hus\n")

	_, err := execute(t, path)

	var cfgErr *apperr.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "SUPABASE")
}

func TestRootCmd_InvalidBatchSize(t *testing.T) {
	isolateEnv(t)
	path := writeWords(t, "hus\n")

	_, err := execute(t, "--dry-run", "--batch-size", "0", path)

	var cfgErr *apperr.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestRootCmd_RestPartialFailure(t *testing.T) {
	isolateEnv(t)

	var (
		mu       sync.Mutex
		received []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rows []domain.WordRow
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&rows)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		mu.Lock()
		for _, row := range rows {
			received = append(received, row.Word)
		}
		mu.Unlock()

		if rows[0].Word == "fejl" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"22P02","message":"invalid input"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	t.Setenv("SUPABASE_URL", srv.URL)
	t.Setenv("SUPABASE_SERVICE_KEY", "secret")
	path := writeWords(t, strings.Join([]string{"hus", "bil", "fejl", "båd", "øl"}, "\n"))

	out, err := execute(t, "--batch-size", "2", path)

	require.ErrorIs(t, err, errPartialFailure)
	assert.Contains(t, out, "Done! Inserted 3 words, 2 failed.")
	assert.Contains(t, out, "invalid input")
	assert.Equal(t, []string{"hus", "bil", "fejl", "båd", "øl"}, received)
}
