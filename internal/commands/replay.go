package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/transakt-dev/transakt/internal/accounts"
	"github.com/transakt-dev/transakt/internal/config"
	"github.com/transakt-dev/transakt/internal/importer"
	"github.com/transakt-dev/transakt/internal/ledger"
	"github.com/transakt-dev/transakt/internal/logging"
	"github.com/transakt-dev/transakt/internal/rejectlog"
)

type replayOptions struct {
	configPath  string
	logLevel    string
	skippedPath string
}

// runReplay replays inputPath and writes the account table to stdout. Nothing
// is written to stdout unless the whole input was replayed.
func runReplay(inputPath string, opts replayOptions, stdout, stderr io.Writer) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	engineOpts := []ledger.Option{
		ledger.WithPolicy(cfg.Policy),
		ledger.WithLogger(logger),
	}

	var skipped *rejectlog.Writer
	if opts.skippedPath != "" {
		skipped, err = rejectlog.Create(opts.skippedPath)
		if err != nil {
			return err
		}
		engineOpts = append(engineOpts, ledger.WithRejectHandler(skipped.Record))
	}

	start := time.Now()
	engine, runErr := replay(f, engineOpts)
	if skipped != nil {
		if err := skipped.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		logger.Error("replay failed", zap.String("input", inputPath), zap.Error(runErr))
		return fmt.Errorf("replaying %s: %w", inputPath, runErr)
	}

	all := engine.Accounts()
	if err := accounts.WriteAccounts(stdout, all); err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}

	stats := engine.Stats()
	logger.Info("replay finished",
		zap.String("input", inputPath),
		zap.Int("processed", stats.Processed),
		zap.Int("applied", stats.Applied),
		zap.Int("ignored", stats.Ignored),
		zap.Int("accounts", len(all)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func replay(r io.Reader, opts []ledger.Option) (*ledger.Engine, error) {
	engine, err := ledger.NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	if err := engine.Run(importer.NewReader(r).All()); err != nil {
		return nil, err
	}
	return engine, nil
}
