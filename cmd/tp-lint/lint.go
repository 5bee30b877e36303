package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeager/tp-lint/internal/config"
	"github.com/yeager/tp-lint/internal/lint"
	"github.com/yeager/tp-lint/internal/model"
	"github.com/yeager/tp-lint/internal/pipeline"
)

// NewLintCmd creates the lint command.
func NewLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <language-code>...",
		Short: "Download and lint a language team's PO files",
		Long: `Lint downloads the PO files listed on a language's team page and checks
them with l10n-lint.

The exit code reports the outcome: 2 when errors were found, 1 for
warnings (or fuzzy entries with --strict), 0 for a clean run.

Per-language settings such as maintained packages can be pinned in a
.tp-lint.yaml configuration file so plain "tp-lint lint sv" only touches
those files.

Examples:
  # Lint all Swedish PO files
  tp-lint lint sv

  # Lint only specific packages
  tp-lint lint -p coreutils -p grep sv

  # Download without linting, keeping the files
  tp-lint lint --download-only -o ./po-files sv

  # Group findings by assigned translator
  tp-lint lint --by-translator sv

  # Several teams at once
  tp-lint lint sv da nb`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLintCmd,
	}

	// Selection flags
	cmd.Flags().StringSliceP("package", "p", nil,
		"Limit to the named package domains (repeatable)")

	// Download flags
	cmd.Flags().StringP("output", "o", "",
		"Download directory (default: a temporary directory, removed after the run)")
	cmd.Flags().BoolP("keep", "k", false,
		"Keep downloaded files after linting")
	cmd.Flags().Bool("download-only", false,
		"Download PO files without linting them")
	cmd.Flags().IntP("jobs", "j", config.DefaultJobs,
		"Number of concurrent downloads")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")

	// Lint flags
	cmd.Flags().Bool("strict", false,
		"Treat fuzzy entries as failures")
	cmd.Flags().Bool("by-translator", false,
		"Lint per file and group findings by assigned translator")
	cmd.Flags().String("lint-command", config.DefaultLintCommand,
		"PO checker executable")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of languages processed concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .tp-lint.yaml in current or home directory)")

	return cmd
}

// runLintCmd executes the lint command.
func runLintCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildLintConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.ValidateLanguages(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runLint(ctx, cmd, cfg, logger)
}

// buildLintConfig creates a Config from lint command flags.
func buildLintConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Languages = args

	var err error
	cfg.Packages, err = cmd.Flags().GetStringSlice("package")
	if err != nil {
		return nil, err
	}
	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.KeepFiles, err = cmd.Flags().GetBool("keep")
	if err != nil {
		return nil, err
	}
	cfg.DownloadOnly, err = cmd.Flags().GetBool("download-only")
	if err != nil {
		return nil, err
	}
	cfg.Jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, err
	}
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.Strict, err = cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}
	cfg.ByTranslator, err = cmd.Flags().GetBool("by-translator")
	if err != nil {
		return nil, err
	}
	cfg.LintCommand, err = cmd.Flags().GetString("lint-command")
	if err != nil {
		return nil, err
	}
	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-language configuration from the config file.
	// An explicitly named file must exist; a missing default file is fine.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.FileConfig = &config.File{
			Languages: make(map[string]config.LanguageConfig),
		}
	}

	return cfg, nil
}

// languageSettings is the per-language pipeline configuration after merging
// CLI flags over the config file.
type languageSettings struct {
	packages  []string
	skip      []string
	outputDir string
	strict    bool
	temporary bool
}

// resolveLanguageSettings merges config file entries with CLI flags for one
// language. CLI flags win where both are set.
func resolveLanguageSettings(cfg *config.Config, language string, multi bool) (*languageSettings, error) {
	var fileCfg config.LanguageConfig
	if cfg.FileConfig != nil {
		fileCfg = cfg.FileConfig.GetLanguageConfig(language)
	}

	s := &languageSettings{
		packages: fileCfg.Packages,
		skip:     fileCfg.Skip,
		strict:   cfg.Strict || fileCfg.Strict,
	}
	if len(cfg.Packages) > 0 {
		s.packages = cfg.Packages
	}

	switch {
	case cfg.OutputDir != "" && multi:
		// A shared output directory gets one subdirectory per language so
		// directory-mode lint runs stay per-team.
		s.outputDir = filepath.Join(cfg.OutputDir, language)
	case cfg.OutputDir != "":
		s.outputDir = cfg.OutputDir
	case fileCfg.OutputDir != "":
		s.outputDir = fileCfg.OutputDir
	default:
		dir, err := os.MkdirTemp("", "tp-lint-"+language+"-")
		if err != nil {
			return nil, fmt.Errorf("create temporary directory: %w", err)
		}
		s.outputDir = dir
		s.temporary = true
	}

	return s, nil
}

// runLint executes the lint workflow for all requested languages.
func runLint(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	client := newSiteClient(cfg)
	runner := lint.NewRunner(lint.WithCommand(cfg.LintCommand))

	multi := len(cfg.Languages) > 1
	settings := make(map[string]*languageSettings, len(cfg.Languages))
	cleanupDirs := make([]string, 0)

	for _, language := range cfg.Languages {
		s, err := resolveLanguageSettings(cfg, language, multi)
		if err != nil {
			return err
		}
		settings[language] = s
		if s.temporary && !cfg.KeepFiles && !cfg.DownloadOnly {
			cleanupDirs = append(cleanupDirs, s.outputDir)
		}
	}
	defer func() {
		for _, dir := range cleanupDirs {
			if err := os.RemoveAll(dir); err != nil {
				logger.Warn("cannot remove download directory", "dir", dir, "error", err)
			}
		}
	}()

	factory := func(language string) *pipeline.Pipeline {
		s := settings[language]
		return pipeline.DefaultPipeline(client, runner,
			[]pipeline.Option{pipeline.WithLogger(logger)},
			pipeline.WithPackages(s.packages),
			pipeline.WithSkip(s.skip),
			pipeline.WithOutputDir(s.outputDir),
			pipeline.WithJobs(cfg.Jobs),
			pipeline.WithStrictMode(s.strict),
			pipeline.WithTranslatorGrouping(cfg.ByTranslator),
			pipeline.WithDownloadOnly(cfg.DownloadOnly),
		)
	}

	bp := pipeline.NewBatchProcessor(factory,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	startTime := time.Now()
	runs, err := bp.ProcessBatch(ctx, cfg.Languages)
	if err != nil {
		return err
	}

	for _, run := range runs {
		printRunResult(cmd, cfg, run)
	}
	if multi {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d languages processed in %s\n",
			len(runs), time.Since(startTime).Round(time.Millisecond))
	}

	if code := pipeline.MaxExitCode(runs); code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}

// printRunResult writes one language's outcome to the command output.
func printRunResult(cmd *cobra.Command, cfg *config.Config, run *model.LintRun) {
	out := cmd.OutOrStdout()

	if run.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", run.Language, run.Err)
		return
	}

	if cfg.DownloadOnly {
		fmt.Fprintf(out, "%s: downloaded %d files to %s\n",
			run.Language, len(run.Downloaded), run.OutputDir)
		return
	}

	if cfg.ByTranslator {
		printTranslatorSummary(cmd, run)
		return
	}

	// Directory mode: relay the checker's own output.
	if run.Stdout != "" {
		fmt.Fprint(out, run.Stdout)
	}
	if run.Stderr != "" {
		fmt.Fprint(cmd.ErrOrStderr(), run.Stderr)
	}
	if run.ExitCode == 0 {
		fmt.Fprintf(out, "%s: %d files clean\n", run.Language, len(run.Downloaded))
	}
}

// printTranslatorSummary writes the per-translator breakdown.
func printTranslatorSummary(cmd *cobra.Command, run *model.LintRun) {
	out := cmd.OutOrStdout()
	grouped := run.ByTranslator(config.DefaultUnknownTranslator)

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "\nResults for %s by translator:\n", run.Language)
	for _, name := range names {
		s := grouped[name]
		fmt.Fprintf(out, "  %-30s %d files, %d errors, %d fuzzy, %d warnings\n",
			name, len(s.Files), s.Errors, s.Fuzzy, s.Warnings)
	}
}
