package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yeager/tp-lint/internal/cache"
	"github.com/yeager/tp-lint/internal/config"
	tplog "github.com/yeager/tp-lint/internal/log"
	"github.com/yeager/tp-lint/internal/model"
	"github.com/yeager/tp-lint/internal/tpclient"
)

// snapshotKeep is how many matrix snapshots the cache retains. Daily site
// regeneration makes this roughly a month of history for compare.
const snapshotKeep = 30

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the redacting structured logger used by all commands.
func setupLogger(verbose bool) *slog.Logger {
	return tplog.NewLogger(os.Stderr, verbose)
}

// newSiteClient builds the HTTP client from configuration.
func newSiteClient(cfg *config.Config) *tpclient.Client {
	return tpclient.New(
		tpclient.WithBaseURL(cfg.BaseURL),
		tpclient.WithTimeout(cfg.Timeout),
		tpclient.WithUserAgent(cfg.UserAgent),
	)
}

// openCache opens the snapshot cache in the configured directory.
func openCache(cfg *config.Config, create bool) (*cache.Cache, error) {
	dir := cfg.CacheDir
	if dir == "" {
		dir = config.XDGCacheDir()
	}
	opts := cache.DefaultOptions()
	opts.CreateIfNotExists = create
	return cache.Open(dir, opts)
}

// loadMatrix returns the coverage matrix, from the snapshot cache when a
// fresh snapshot exists and from the site otherwise. Fetched matrices are
// saved back to the cache so later invocations and the compare command can
// use them. Cache problems are logged, never fatal: the site is the source
// of truth.
func loadMatrix(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*model.Matrix, error) {
	if !cfg.NoCache {
		if c, err := openCache(cfg, false); err == nil {
			snap, err := c.FreshSnapshot(ctx, cfg.CacheTTL)
			closeCache(c, logger)
			if err != nil {
				logger.Warn("snapshot lookup failed", "error", err)
			} else if snap != nil {
				logger.Debug("using cached matrix",
					"timestamp", snap.Timestamp,
					"languages", len(snap.Matrix.Languages),
				)
				return snap.Matrix, nil
			}
		}
	}

	client := newSiteClient(cfg)
	m, err := client.Matrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch matrix: %w", err)
	}
	logger.Info("matrix fetched",
		"languages", len(m.Languages),
		"domains", len(m.Domains),
	)

	if !cfg.NoCache {
		c, err := openCache(cfg, true)
		if err != nil {
			logger.Warn("cannot open snapshot cache", "error", err)
			return m, nil
		}
		if _, err := c.SaveSnapshot(ctx, m); err != nil {
			logger.Warn("cannot save snapshot", "error", err)
		} else if err := c.Prune(ctx, snapshotKeep); err != nil {
			logger.Warn("cannot prune snapshots", "error", err)
		}
		closeCache(c, logger)
	}

	return m, nil
}

// closeCache closes the cache and logs close errors instead of dropping
// them.
func closeCache(c *cache.Cache, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn("cache close failed", "error", err)
	}
}

// openOutput returns the report destination: the named file (parent
// directories created as needed) or stdout when path is empty. The caller
// must call the returned cleanup function.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // Destination is user-chosen
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
