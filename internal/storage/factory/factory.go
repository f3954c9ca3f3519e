package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/word-importer/internal/storage"
	"github.com/DjordjeVuckovic/word-importer/internal/storage/es"
	"github.com/DjordjeVuckovic/word-importer/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/word-importer/internal/storage/pg"
	"github.com/DjordjeVuckovic/word-importer/internal/storage/rest"
	"github.com/DjordjeVuckovic/word-importer/pkg/server"
)

// Sink is an upserter together with the health check for its backend.
type Sink struct {
	storage.Upserter
	Health server.HealthChecker
}

// NewSink creates the upserter selected by cfg.Type. cfg must be valid.
func NewSink(ctx context.Context, cfg StorageConfig) (*Sink, error) {
	switch cfg.Type {
	case storage.REST:
		client, err := rest.NewClient(cfg.restClientConfig())
		if err != nil {
			return nil, err
		}
		return &Sink{Upserter: client, Health: client}, nil

	case storage.PG:
		poolCfg, upserterCfg := cfg.pgConfigs()

		pool, err := pg.NewConnectionPool(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		upserter, err := pg.NewUpserter(pool, upserterCfg)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Sink{Upserter: upserter, Health: pg.NewHealthChecker(pool, upserterCfg.Table)}, nil

	case storage.ES:
		upserter, err := es.NewUpserter(ctx, cfg.esClientConfig())
		if err != nil {
			return nil, err
		}
		return &Sink{Upserter: upserter, Health: es.NewHealthChecker(upserter)}, nil

	case storage.InMem:
		upserter := in_mem.NewUpserter()
		return &Sink{Upserter: upserter, Health: upserter}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
