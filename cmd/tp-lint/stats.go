package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeager/tp-lint/internal/config"
	"github.com/yeager/tp-lint/internal/model"
	"github.com/yeager/tp-lint/internal/report"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [language-code]",
		Short: "Show translation coverage statistics",
		Long: `Stats shows translation coverage scraped from the Translation Project
matrix page: overall coverage, per-language rankings, and per-package
counts.

With a language code argument the output narrows to that team's complete,
partial and missing packages. The matrix is cached locally and refreshed
once a day; use --no-cache to force a fetch.

Examples:
  # Global coverage overview and rankings
  tp-lint stats

  # One team's standing
  tp-lint stats sv

  # One package across all languages
  tp-lint stats --domain coreutils

  # Machine-readable output
  tp-lint stats --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStatsCmd,
	}

	cmd.Flags().StringP("domain", "d", "", "Restrict to a single package domain")
	cmd.Flags().IntP("top", "n", config.DefaultTopN, "Entries shown in rankings (0 = all)")
	cmd.Flags().BoolP("json", "j", false, "Output as JSON")
	cmd.Flags().Bool("no-cache", false, "Bypass the matrix snapshot cache")

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildStatsConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	m, err := loadMatrix(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	language := ""
	if len(cfg.Languages) > 0 {
		resolved, ok := m.ResolveLanguage(cfg.Languages[0])
		if !ok {
			return fmt.Errorf("language %q not found in the coverage matrix", cfg.Languages[0])
		}
		language = resolved
	}

	if cfg.Domain != "" && !m.HasDomain(cfg.Domain) {
		if similar := m.SimilarDomains(cfg.Domain); len(similar) > 0 {
			return fmt.Errorf("package %q not found; did you mean: %s",
				cfg.Domain, strings.Join(similar, ", "))
		}
		return fmt.Errorf("package %q not found in the coverage matrix", cfg.Domain)
	}

	r := model.NewReport(m, getVersion(), language, cfg.Domain, cfg.TopN)

	var w report.Writer
	if cfg.JSONReport {
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	} else {
		w = report.NewSimpleWriter(cmd.OutOrStdout())
	}

	_, err = w.Write(r)
	return err
}

// buildStatsConfig creates a Config from stats command flags.
func buildStatsConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Languages = args

	var err error
	cfg.Domain, err = cmd.Flags().GetString("domain")
	if err != nil {
		return nil, err
	}
	cfg.TopN, err = cmd.Flags().GetInt("top")
	if err != nil {
		return nil, err
	}
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.NoCache, err = cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
