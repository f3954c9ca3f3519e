package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/DjordjeVuckovic/word-importer/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "word_import.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1000, cfg.Loader.BatchSize)
	assert.Equal(t, 1, cfg.Loader.Concurrency)
	assert.Zero(t, cfg.Loader.Retry.Max)
	assert.Equal(t, storage.REST, cfg.Storage.Type)
	assert.False(t, cfg.LoaderConfig().Retry.Enabled())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		"WORDS_PATH":             "/data/words.txt",
		"BATCH_SIZE":             "250",
		"CONCURRENCY":            "4",
		"RETRY_MAX":              "3",
		"RETRY_INITIAL_INTERVAL": "50ms",
		"DRY_RUN":                "true",
		"STATUS_ADDR":            ":9090",
		"LOG_LEVEL":              "debug",
		"STORAGE_TYPE":           "pg",
		"PG_CONNECTION_STRING":   "postgres://localhost/words",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/data/words.txt", cfg.WordsPath)
	assert.Equal(t, 250, cfg.Loader.BatchSize)
	assert.Equal(t, 4, cfg.Loader.Concurrency)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, ":9090", cfg.Status.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, storage.PG, cfg.Storage.Type)

	lc := cfg.LoaderConfig()
	assert.Equal(t, 3, lc.Retry.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, lc.Retry.InitialInterval)
}

func TestApplyEnv_Invalid(t *testing.T) {
	for _, key := range []string{"BATCH_SIZE", "DRY_RUN", "RETRY_MAX_INTERVAL", "HTTP_TIMEOUT"} {
		t.Run(key, func(t *testing.T) {
			err := Default().ApplyEnv(lookupFrom(map[string]string{key: "not-a-value"}))

			var cfgErr *apperr.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestApplyFile_OverridesOnlyPresentKeys(t *testing.T) {
	path := writeFile(t, `
words_path: ./words.txt
loader:
  batch_size: 500
  retry:
    max: 2
    max_interval: 2s
storage:
  type: in_mem
  conflict_resolution: merge-duplicates
`)

	cfg := Default()
	cfg.Loader.Concurrency = 3
	require.NoError(t, cfg.ApplyFile(path))

	assert.Equal(t, "./words.txt", cfg.WordsPath)
	assert.Equal(t, 500, cfg.Loader.BatchSize)
	assert.Equal(t, 3, cfg.Loader.Concurrency)
	assert.Equal(t, 2, cfg.Loader.Retry.Max)
	assert.Equal(t, 2*time.Second, cfg.Loader.Retry.MaxInterval)
	assert.Equal(t, storage.InMem, cfg.Storage.Type)
	assert.Equal(t, domain.MergeDuplicates, cfg.Storage.Resolution)
	assert.Equal(t, "danish_words", cfg.Storage.Table)
}

func TestApplyFile_Errors(t *testing.T) {
	var cfgErr *apperr.ConfigurationError

	err := Default().ApplyFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	err = Default().ApplyFile(writeFile(t, "loader:\n  batch_sizes: 10\n"))
	assert.True(t, errors.As(err, &cfgErr))

	assert.NoError(t, Default().ApplyFile(writeFile(t, "")))
}

func TestLoad_FileWinsOverEnv(t *testing.T) {
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("WORDS_TABLE", "env_words")

	cfg, err := Load(writeFile(t, "loader:\n  batch_size: 200\n"))
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Loader.BatchSize)
	assert.Equal(t, "env_words", cfg.Storage.Table)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name: "rest with credentials",
			mutate: func(c *Config) {
				c.Storage.Rest.URL = "https://example.supabase.co"
				c.Storage.Rest.ServiceKey = "key"
			},
		},
		{
			name:    "rest without key",
			mutate:  func(c *Config) { c.Storage.Rest.URL = "https://example.supabase.co" },
			wantErr: "SUPABASE_SERVICE_KEY",
		},
		{
			name:   "dry run needs no credentials",
			mutate: func(c *Config) { c.DryRun = true },
		},
		{
			name: "zero batch size",
			mutate: func(c *Config) {
				c.DryRun = true
				c.Loader.BatchSize = 0
			},
			wantErr: "batch size must be positive",
		},
		{
			name: "negative retries",
			mutate: func(c *Config) {
				c.DryRun = true
				c.Loader.Retry.Max = -1
			},
			wantErr: "max retries",
		},
		{
			name: "bad log level",
			mutate: func(c *Config) {
				c.DryRun = true
				c.Log.Level = "verbose"
			},
			wantErr: "log level",
		},
		{
			name: "bad log format",
			mutate: func(c *Config) {
				c.DryRun = true
				c.Log.Format = "xml"
			},
			wantErr: "log format",
		},
		{
			name: "empty words path",
			mutate: func(c *Config) {
				c.DryRun = true
				c.WordsPath = ""
			},
			wantErr: "words path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var cfgErr *apperr.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStorageConfig_DryRunUsesInMem(t *testing.T) {
	cfg := Default()
	cfg.DryRun = true

	assert.Equal(t, storage.InMem, cfg.StorageConfig().Type)
	assert.Equal(t, storage.REST, cfg.Storage.Type)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(LogConfig{Level: "warn", Format: FormatJSON}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "batch", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"batch":2`)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
