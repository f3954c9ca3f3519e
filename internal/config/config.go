package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	"github.com/DjordjeVuckovic/word-importer/internal/loader"
	"github.com/DjordjeVuckovic/word-importer/internal/retry"
	"github.com/DjordjeVuckovic/word-importer/internal/storage"
	"github.com/DjordjeVuckovic/word-importer/internal/storage/factory"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

const DefaultWordsPath = "danish_words.txt"

type RetryConfig struct {
	Max             int           `yaml:"max"`
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
}

type LoaderConfig struct {
	BatchSize   int         `yaml:"batch_size"`
	Concurrency int         `yaml:"concurrency"`
	Retry       RetryConfig `yaml:"retry"`
}

type StatusConfig struct {
	// Addr enables the status server when set, e.g. ":8080".
	Addr string `yaml:"addr"`
}

type Config struct {
	WordsPath string                `yaml:"words_path"`
	DryRun    bool                  `yaml:"dry_run"`
	Loader    LoaderConfig          `yaml:"loader"`
	Storage   factory.StorageConfig `yaml:"storage"`
	Status    StatusConfig          `yaml:"status"`
	Log       LogConfig             `yaml:"log"`
}

func Default() *Config {
	return &Config{
		WordsPath: DefaultWordsPath,
		Loader: LoaderConfig{
			BatchSize:   loader.DefaultBatchSize,
			Concurrency: loader.DefaultConcurrency,
			Retry: RetryConfig{
				InitialInterval: retry.DefaultInitialInterval,
				MaxInterval:     retry.DefaultMaxInterval,
			},
		},
		Storage: factory.DefaultStorageConfig(),
		Log:     LogConfig{Level: "info", Format: FormatText},
	}
}

// Load builds the configuration from defaults, the environment and, when
// path is not empty, the YAML file at path. File values win.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("WORDS_PATH"); ok && v != "" {
		c.WordsPath = v
	}
	if err := boolEnv(lookup, "DRY_RUN", &c.DryRun); err != nil {
		return err
	}
	if err := intEnv(lookup, "BATCH_SIZE", &c.Loader.BatchSize); err != nil {
		return err
	}
	if err := intEnv(lookup, "CONCURRENCY", &c.Loader.Concurrency); err != nil {
		return err
	}
	if err := intEnv(lookup, "RETRY_MAX", &c.Loader.Retry.Max); err != nil {
		return err
	}
	if err := durationEnv(lookup, "RETRY_INITIAL_INTERVAL", &c.Loader.Retry.InitialInterval); err != nil {
		return err
	}
	if err := durationEnv(lookup, "RETRY_MAX_INTERVAL", &c.Loader.Retry.MaxInterval); err != nil {
		return err
	}
	if v, ok := lookup("STATUS_ADDR"); ok {
		c.Status.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}

	return c.Storage.ApplyEnv(lookup)
}

// ApplyFile overlays the YAML file at path. Keys absent from the file keep
// their current values.
func (c *Config) ApplyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperr.NewConfigurationWrap(path, ErrConfigNotFound)
		}
		return apperr.NewConfigurationWrap("failed to open config file", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.NewConfigurationWrap(fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return nil
}

// Validate checks every section. A dry run swaps the sink for the in-memory
// one, so remote credentials are not required.
func (c *Config) Validate() error {
	if c.WordsPath == "" {
		return apperr.NewConfiguration("words path is not set")
	}
	if err := c.LoaderConfig().Validate(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return apperr.NewConfigurationWrap("invalid log level", err)
	}
	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		return apperr.NewConfiguration(fmt.Sprintf("invalid log format %q, expected %s or %s", c.Log.Format, FormatText, FormatJSON))
	}

	storageCfg := c.StorageConfig()
	return storageCfg.Validate()
}

func (c *Config) LoaderConfig() loader.Config {
	r := c.Loader.Retry
	policy := retry.NoRetry()
	if r.Max != 0 {
		policy = retry.DefaultPolicy(r.Max)
		policy.InitialInterval = r.InitialInterval
		policy.MaxInterval = r.MaxInterval
	}

	return loader.Config{
		BatchSize:   c.Loader.BatchSize,
		Concurrency: c.Loader.Concurrency,
		Retry:       policy,
	}
}

func (c *Config) StorageConfig() factory.StorageConfig {
	s := c.Storage
	if c.DryRun {
		s.Type = storage.InMem
	}
	return s
}

func intEnv(lookup func(string) (string, bool), key string, dst *int) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return apperr.NewConfigurationWrap("invalid "+key, err)
	}
	*dst = n
	return nil
}

func boolEnv(lookup func(string) (string, bool), key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return apperr.NewConfigurationWrap("invalid "+key, err)
	}
	*dst = b
	return nil
}

func durationEnv(lookup func(string) (string, bool), key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return apperr.NewConfigurationWrap("invalid "+key, err)
	}
	*dst = d
	return nil
}
