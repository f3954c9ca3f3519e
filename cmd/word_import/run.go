package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/word-importer/internal/config"
	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/DjordjeVuckovic/word-importer/internal/ingest"
	"github.com/DjordjeVuckovic/word-importer/internal/loader"
	"github.com/DjordjeVuckovic/word-importer/internal/report"
	"github.com/DjordjeVuckovic/word-importer/internal/router"
	"github.com/DjordjeVuckovic/word-importer/internal/server"
	"github.com/DjordjeVuckovic/word-importer/internal/storage"
	"github.com/DjordjeVuckovic/word-importer/internal/storage/factory"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errPartialFailure = errors.New("some batches failed")

func newRootCmd(out io.Writer) *cobra.Command {
	var flags flagValues

	cmd := &cobra.Command{
		Use:   "word_import [flags] [words-file]",
		Short: "Upload a newline separated word list in batches",
		Long: `word_import reads a UTF-8 file with one word per line, skips blank lines
and uploads the words in fixed-size batches. Words that already exist are
left alone unless --conflict-resolution=merge-duplicates is set.

Failed batches are reported and skipped; the command exits with status 1
when any batch failed.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := NewAppConfig().Load(cmd, &flags, args)
			if err != nil {
				return err
			}

			slog.SetDefault(config.NewLogger(cfg.Log, cmd.ErrOrStderr()))

			summary, err := run(cmd.Context(), cfg, out)
			if err != nil {
				return err
			}
			if summary.HasFailures() {
				return fmt.Errorf("%w: %d of %d words failed", errPartialFailure, summary.TotalFailed, summary.TotalRecords)
			}
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) (*loader.Summary, error) {
	runID := uuid.New()
	log := slog.With("runId", runID.String())
	printer := report.NewPrinter(out)

	source := ingest.NewFileSource(cfg.WordsPath)
	words, err := source.Words(ctx)
	if err != nil {
		return nil, err
	}
	printer.Loaded(len(words), source.Name())

	storageCfg := cfg.StorageConfig()
	log.Info("Starting import", "storageType", storageCfg.Type, "words", len(words), "dryRun", cfg.DryRun)

	sink, err := factory.NewSink(ctx, storageCfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Error("Failed to close sink", "error", err)
		}
	}()

	loaderCfg := cfg.LoaderConfig()
	tracker := report.NewStatusTracker(runID)
	tracker.Start(source.Name(), len(words), len(loader.CalculateBatches(len(words), loaderCfg.BatchSize)))

	stopStatus, err := startStatusServer(ctx, cfg.Status, sink, tracker)
	if err != nil {
		return nil, err
	}
	defer stopStatus()

	l, err := loader.New[domain.Word](loaderCfg,
		loader.WithName("word_import"),
		loader.WithProgress(loader.MultiProgress(printer.Progress, tracker.Observe)),
	)
	if err != nil {
		return nil, err
	}

	summary, err := l.Load(ctx, words, storage.Submit(sink))
	tracker.Finish(summary, err)
	if summary != nil {
		printer.Summary(summary)
		log.Info("Import finished",
			"succeeded", summary.TotalSucceeded,
			"failed", summary.TotalFailed,
			"batches", summary.TotalBatches,
			"duration", summary.Duration)
	}
	if err != nil {
		return summary, fmt.Errorf("import interrupted: %w", err)
	}

	return summary, nil
}

// startStatusServer serves the run's status until the returned stop func is
// called. It is a no-op when no address is configured.
func startStatusServer(ctx context.Context, cfg config.StatusConfig, sink *factory.Sink, tracker *report.StatusTracker) (func(), error) {
	if cfg.Addr == "" {
		return func() {}, nil
	}

	srvCfg, err := server.NewConfig(cfg.Addr)
	if err != nil {
		return nil, err
	}

	s := server.New(srvCfg, sink.Health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks().
		SetupOpenApi("/swagger/*")
	router.NewStatusRouter(s.Echo, tracker).Bind()

	if _, err := s.Listen(); err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	srvCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.Start(srvCtx); err != nil {
			slog.Error("Status server failed", "error", err)
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}, nil
}
