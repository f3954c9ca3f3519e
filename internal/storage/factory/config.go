package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/DjordjeVuckovic/word-importer/internal/storage"
	"github.com/DjordjeVuckovic/word-importer/internal/storage/es"
	"github.com/DjordjeVuckovic/word-importer/internal/storage/pg"
	"github.com/DjordjeVuckovic/word-importer/internal/storage/rest"
	"github.com/DjordjeVuckovic/word-importer/pkg/utils"
)

type RestConfig struct {
	URL        string        `yaml:"url"`
	ServiceKey string        `yaml:"service_key"`
	Timeout    time.Duration `yaml:"timeout"`
}

type PgConfig struct {
	ConnStr  string `yaml:"connection_string"`
	MaxConns int32  `yaml:"max_conns"`
}

type EsConfig struct {
	Addresses []string `yaml:"addresses"`
	// IndexName defaults to the table name.
	IndexName string `yaml:"index_name"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

type StorageConfig struct {
	Type           storage.Type              `yaml:"type"`
	Table          string                    `yaml:"table"`
	ConflictColumn string                    `yaml:"conflict_column"`
	Resolution     domain.ConflictResolution `yaml:"conflict_resolution"`
	Rest           RestConfig                `yaml:"rest"`
	Pg             PgConfig                  `yaml:"pg"`
	Es             EsConfig                  `yaml:"es"`
}

func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Type:           storage.REST,
		Table:          rest.DefaultTable,
		ConflictColumn: domain.DefaultConflictColumn,
		Resolution:     domain.IgnoreDuplicates,
		Rest:           RestConfig{Timeout: rest.DefaultTimeout},
	}
}

// LoadEnv returns the defaults overridden by the process environment.
func LoadEnv() (*StorageConfig, error) {
	cfg := DefaultStorageConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides every field whose variable is set.
func (c *StorageConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("STORAGE_TYPE"); ok && v != "" {
		c.Type = storage.Type(v)
	}
	if v, ok := lookup("WORDS_TABLE"); ok && v != "" {
		c.Table = v
	}
	if v, ok := lookup("CONFLICT_COLUMN"); ok && v != "" {
		c.ConflictColumn = v
	}
	if v, ok := lookup("CONFLICT_RESOLUTION"); ok && v != "" {
		c.Resolution = domain.ConflictResolution(v)
	}

	if v, ok := lookup("SUPABASE_URL"); ok {
		c.Rest.URL = v
	}
	if v, ok := lookup("SUPABASE_SERVICE_KEY"); ok {
		c.Rest.ServiceKey = v
	}
	if v, ok := lookup("HTTP_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return apperr.NewConfigurationWrap("invalid HTTP_TIMEOUT", err)
		}
		c.Rest.Timeout = d
	}

	if v, ok := lookup("PG_CONNECTION_STRING"); ok {
		c.Pg.ConnStr = v
	}
	if v, ok := lookup("PG_MAX_CONNS"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return apperr.NewConfigurationWrap("invalid PG_MAX_CONNS", err)
		}
		c.Pg.MaxConns = int32(n)
	}

	if v, ok := lookup("ES_ADDRESSES"); ok {
		c.Es.Addresses = utils.SplitTrim(v, ",")
	}
	if v, ok := lookup("ES_INDEX_NAME"); ok {
		c.Es.IndexName = v
	}
	if v, ok := lookup("ES_USERNAME"); ok {
		c.Es.Username = v
	}
	if v, ok := lookup("ES_PASSWORD"); ok {
		c.Es.Password = v
	}

	return nil
}

// Validate checks the settings the selected storage type needs.
func (c *StorageConfig) Validate() error {
	if !c.Type.Valid() {
		slog.Error("Invalid STORAGE_TYPE value", "value", c.Type)
		return apperr.NewConfiguration(fmt.Sprintf(
			"invalid storage type %q, expected one of %v", c.Type, storage.Types))
	}
	if _, err := domain.ParseConflictResolution(string(c.Resolution)); err != nil {
		return apperr.NewConfigurationWrap("invalid conflict resolution", err)
	}

	switch c.Type {
	case storage.REST:
		if c.Rest.URL == "" {
			return apperr.NewConfiguration("SUPABASE_URL is not set")
		}
		if c.Rest.ServiceKey == "" {
			return apperr.NewConfiguration("SUPABASE_SERVICE_KEY environment variable not set")
		}
	case storage.PG:
		if c.Pg.ConnStr == "" {
			return apperr.NewConfiguration("PostgreSQL connection string is not set")
		}
	case storage.ES:
		if len(c.Es.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", c.Es.Addresses)
			return apperr.NewConfiguration("elasticsearch configuration is incomplete: addresses are missing")
		}
	}

	return nil
}

func (c *StorageConfig) restClientConfig() rest.ClientConfig {
	return rest.ClientConfig{
		BaseURL:        c.Rest.URL,
		APIKey:         c.Rest.ServiceKey,
		Table:          c.Table,
		ConflictColumn: c.ConflictColumn,
		Resolution:     c.Resolution,
		Timeout:        c.Rest.Timeout,
	}
}

func (c *StorageConfig) pgConfigs() (pg.PoolConfig, pg.UpserterConfig) {
	return pg.PoolConfig{ConnStr: c.Pg.ConnStr, MaxConns: c.Pg.MaxConns},
		pg.UpserterConfig{Table: c.Table, ConflictColumn: c.ConflictColumn, Resolution: c.Resolution}
}

func (c *StorageConfig) esClientConfig() es.ClientConfig {
	index := c.Es.IndexName
	if index == "" {
		index = c.Table
	}
	return es.ClientConfig{
		Addresses:  c.Es.Addresses,
		IndexName:  index,
		Username:   c.Es.Username,
		Password:   c.Es.Password,
		Resolution: c.Resolution,
	}
}
