package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/word-importer/internal/config"
	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/DjordjeVuckovic/word-importer/internal/storage"
	"github.com/DjordjeVuckovic/word-importer/pkg/config/env"
	"github.com/spf13/cobra"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type flagValues struct {
	configPath         string
	batchSize          int
	concurrency        int
	retryMax           int
	storageType        string
	table              string
	conflictResolution string
	statusAddr         string
	dryRun             bool
	logLevel           string
	logFormat          string
}

func (f *flagValues) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	flags.IntVarP(&f.batchSize, "batch-size", "b", 0, "words per request (default 1000)")
	flags.IntVar(&f.concurrency, "concurrency", 0, "batches in flight (default 1)")
	flags.IntVar(&f.retryMax, "retry-max", 0, "retries per failed batch, transient errors only")
	flags.StringVar(&f.storageType, "storage", "", "sink: rest, pg, es or in_mem (default rest)")
	flags.StringVar(&f.table, "table", "", "target table or index (default danish_words)")
	flags.StringVar(&f.conflictResolution, "conflict-resolution", "", "ignore-duplicates or merge-duplicates")
	flags.StringVar(&f.statusAddr, "status-addr", "", "serve /health and /progress on this address")
	flags.BoolVar(&f.dryRun, "dry-run", false, "read and batch the words without writing them anywhere")
	flags.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&f.logFormat, "log-format", "", "text or json")
}

// Load layers .env files, the environment, the config file, flags and the
// positional words file, in that order.
func (as *AppConfig) Load(cmd *cobra.Command, f *flagValues, args []string) (*config.Config, error) {
	if err := env.LoadDotEnv(as.ENV, ".env", "cmd/word_import/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("batch-size") {
		cfg.Loader.BatchSize = f.batchSize
	}
	if flags.Changed("concurrency") {
		cfg.Loader.Concurrency = f.concurrency
	}
	if flags.Changed("retry-max") {
		cfg.Loader.Retry.Max = f.retryMax
	}
	if flags.Changed("storage") {
		cfg.Storage.Type = storage.Type(f.storageType)
	}
	if flags.Changed("table") {
		cfg.Storage.Table = f.table
	}
	if flags.Changed("conflict-resolution") {
		cfg.Storage.Resolution = domain.ConflictResolution(f.conflictResolution)
	}
	if flags.Changed("status-addr") {
		cfg.Status.Addr = f.statusAddr
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if len(args) > 0 {
		cfg.WordsPath = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
