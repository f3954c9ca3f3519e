package es

import (
	"fmt"

	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultIndexName = "danish_words"

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
	// Resolution picks the bulk action: create for ignore, index for merge.
	Resolution domain.ConflictResolution
}

func (c ClientConfig) index() string {
	if c.IndexName == "" {
		return DefaultIndexName
	}
	return c.IndexName
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	if len(config.Addresses) == 0 {
		return nil, fmt.Errorf("no elasticsearch addresses configured")
	}

	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
