package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/yeager/tp-lint/internal/config"
	"github.com/yeager/tp-lint/internal/lint"
	"github.com/yeager/tp-lint/internal/model"
)

// TeamFetcher fetches a language's team page.
// *tpclient.Client satisfies this interface.
type TeamFetcher interface {
	TeamPage(ctx context.Context, code string) (*model.TeamPage, error)
}

// Downloader fetches PO files concurrently into a directory.
// *tpclient.Client satisfies this interface.
type Downloader interface {
	DownloadAll(ctx context.Context, urls []string, dir string, jobs int) ([]model.DownloadResult, error)
}

// SiteClient combines the two site-facing concerns the default pipeline
// needs. Steps take the narrow interfaces; only DefaultPipeline asks for
// both at once.
type SiteClient interface {
	TeamFetcher
	Downloader
}

// Checker runs the external PO checker.
// *lint.Runner satisfies this interface.
type Checker interface {
	Available(ctx context.Context) bool
	RunDir(ctx context.Context, dir, language string, strict bool) (*lint.DirResult, error)
	RunFiles(ctx context.Context, files []string, language string) (map[string]model.FileResult, error)
}

// FetchStep retrieves the team page for the run's language and records the
// PO file URLs and translator assignments.
//
// Design decision: Fetching is a separate step because:
// 1. Everything downstream consumes its output
// 2. A missing team page should fail the whole run with a clear error
// 3. Tests can replace it with a canned page
type FetchStep struct {
	// fetcher retrieves team pages from the site.
	fetcher TeamFetcher

	// logger for structured logging.
	logger *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a new team page fetch step.
func NewFetchStep(fetcher TeamFetcher, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		fetcher: fetcher,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch_team_page"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, run *model.LintRun) error {
	page, err := s.fetcher.TeamPage(ctx, run.Language)
	if err != nil {
		return fmt.Errorf("fetch team page for %q: %w", run.Language, err)
	}

	run.POFiles = page.POFiles
	run.Translators = page.Translators

	s.logger.Info("team page fetched",
		"language", run.Language,
		"po_files", len(page.POFiles),
		"translators", len(page.Translators),
	)

	return nil
}

// FilterStep narrows the run's PO file list to the requested packages and
// drops skipped ones. With neither configured it is a no-op, so the default
// pipeline always includes it.
type FilterStep struct {
	// packages keeps only files belonging to these domains. Empty keeps all.
	packages []string

	// skip drops files belonging to these domains, applied after packages.
	skip []string

	// logger for structured logging.
	logger *slog.Logger
}

// FilterStepOption configures a FilterStep.
type FilterStepOption func(*FilterStep)

// WithFilterLogger sets a custom logger for the filter step.
func WithFilterLogger(logger *slog.Logger) FilterStepOption {
	return func(s *FilterStep) {
		s.logger = logger
	}
}

// NewFilterStep creates a new package filter step.
func NewFilterStep(packages, skip []string, opts ...FilterStepOption) *FilterStep {
	s := &FilterStep{
		packages: packages,
		skip:     skip,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter_packages"
}

// Do executes the filter step.
func (s *FilterStep) Do(_ context.Context, run *model.LintRun) error {
	before := len(run.POFiles)

	page := model.TeamPage{POFiles: run.POFiles}
	selected := page.FilterPOFiles(s.packages)

	if len(s.skip) > 0 {
		skipped := make(map[string]bool, len(s.skip))
		for _, domain := range s.skip {
			skipped[domain] = true
		}

		kept := make([]string, 0, len(selected))
		for _, url := range selected {
			domain := model.DomainFromFileName(model.FileNameFromURL(url))
			if skipped[domain] {
				continue
			}
			kept = append(kept, url)
		}
		selected = kept
	}

	run.POFiles = selected

	s.logger.Debug("package filter applied",
		"language", run.Language,
		"before", before,
		"after", len(selected),
	)

	return nil
}

// DownloadStep fetches the run's selected PO files into the output
// directory.
//
// Design decision: The step creates the directory itself rather than
// requiring callers to prepare it, because the directory may be per-language
// (from the config file) and only the pipeline knows which language it is
// running.
type DownloadStep struct {
	// downloader performs the concurrent downloads.
	downloader Downloader

	// dir is the destination directory; created if missing.
	dir string

	// jobs caps concurrent downloads.
	jobs int

	// logger for structured logging.
	logger *slog.Logger
}

// DownloadStepOption configures a DownloadStep.
type DownloadStepOption func(*DownloadStep)

// WithDownloadJobs sets the maximum number of concurrent downloads.
func WithDownloadJobs(jobs int) DownloadStepOption {
	return func(s *DownloadStep) {
		if jobs > 0 {
			s.jobs = jobs
		}
	}
}

// WithDownloadLogger sets a custom logger for the download step.
func WithDownloadLogger(logger *slog.Logger) DownloadStepOption {
	return func(s *DownloadStep) {
		s.logger = logger
	}
}

// NewDownloadStep creates a new download step writing into dir.
func NewDownloadStep(downloader Downloader, dir string, opts ...DownloadStepOption) *DownloadStep {
	s := &DownloadStep{
		downloader: downloader,
		dir:        dir,
		jobs:       config.DefaultJobs,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DownloadStep) Name() string {
	return "download"
}

// Do executes the download step.
func (s *DownloadStep) Do(ctx context.Context, run *model.LintRun) error {
	run.OutputDir = s.dir

	if len(run.POFiles) == 0 {
		s.logger.Warn("no PO files selected, nothing to download",
			"language", run.Language,
		)
		return nil
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("create output directory %s: %w", s.dir, err)
	}

	results, err := s.downloader.DownloadAll(ctx, run.POFiles, s.dir, s.jobs)

	// Partial results are kept even on failure so callers can see how far
	// the run got.
	run.Downloaded = results

	if err != nil {
		return fmt.Errorf("download PO files: %w", err)
	}

	var total int64
	for _, r := range results {
		total += r.Size
	}
	s.logger.Info("downloads completed",
		"language", run.Language,
		"files", len(results),
		"bytes", total,
	)

	return nil
}

// LintStep runs the external checker over the downloaded files and records
// the outcome on the run.
//
// Two modes exist. Directory mode hands the whole output directory to the
// checker in one invocation and passes its exit code through unchanged.
// Per-translator mode lints each file separately with JSON output so the
// findings can be grouped by assigned translator; the exit code is then
// computed from the aggregated counts.
type LintStep struct {
	// checker invokes the external tool.
	checker Checker

	// strict makes fuzzy entries affect the exit code.
	strict bool

	// byTranslator selects per-file mode.
	byTranslator bool

	// logger for structured logging.
	logger *slog.Logger
}

// LintStepOption configures a LintStep.
type LintStepOption func(*LintStep)

// WithStrict makes fuzzy entries affect the exit code.
func WithStrict(strict bool) LintStepOption {
	return func(s *LintStep) {
		s.strict = strict
	}
}

// WithByTranslator selects per-file mode for translator grouping.
func WithByTranslator(byTranslator bool) LintStepOption {
	return func(s *LintStep) {
		s.byTranslator = byTranslator
	}
}

// WithLintLogger sets a custom logger for the lint step.
func WithLintLogger(logger *slog.Logger) LintStepOption {
	return func(s *LintStep) {
		s.logger = logger
	}
}

// NewLintStep creates a new lint step.
func NewLintStep(checker Checker, opts ...LintStepOption) *LintStep {
	s := &LintStep{
		checker: checker,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LintStep) Name() string {
	return "lint"
}

// Do executes the lint step.
func (s *LintStep) Do(ctx context.Context, run *model.LintRun) error {
	if len(run.Downloaded) == 0 {
		s.logger.Debug("skipping lint, no files downloaded",
			"language", run.Language,
		)
		return nil
	}

	if !s.checker.Available(ctx) {
		return lint.ErrNotInstalled
	}

	if s.byTranslator {
		return s.lintPerFile(ctx, run)
	}
	return s.lintDir(ctx, run)
}

// lintDir runs the checker once over the whole output directory.
func (s *LintStep) lintDir(ctx context.Context, run *model.LintRun) error {
	result, err := s.checker.RunDir(ctx, run.OutputDir, run.Language, s.strict)
	if err != nil {
		return fmt.Errorf("lint %s: %w", run.OutputDir, err)
	}

	run.Stdout = result.Stdout
	run.Stderr = result.Stderr
	run.ExitCode = result.ExitCode

	s.logger.Info("lint completed",
		"language", run.Language,
		"exit_code", result.ExitCode,
	)

	return nil
}

// lintPerFile runs the checker on each downloaded file and aggregates.
func (s *LintStep) lintPerFile(ctx context.Context, run *model.LintRun) error {
	paths := make([]string, 0, len(run.Downloaded))
	for _, d := range run.Downloaded {
		paths = append(paths, d.Path)
	}

	results, err := s.checker.RunFiles(ctx, paths, run.Language)
	if err != nil {
		return fmt.Errorf("lint files: %w", err)
	}

	run.FileResults = results

	var errors, fuzzy, warnings int
	for _, fr := range results {
		e, f, w := fr.Counts()
		errors += e
		fuzzy += f
		warnings += w
	}
	run.ExitCode = exitCode(errors, fuzzy, warnings, s.strict)

	s.logger.Info("lint completed",
		"language", run.Language,
		"files", len(results),
		"errors", errors,
		"fuzzy", fuzzy,
		"warnings", warnings,
		"exit_code", run.ExitCode,
	)

	return nil
}

// exitCode maps aggregated issue counts to the run's exit code: 2 when
// errors were found, 1 for warnings or, in strict mode, fuzzy entries.
func exitCode(errors, fuzzy, warnings int, strict bool) int {
	switch {
	case errors > 0:
		return 2
	case warnings > 0 || (strict && fuzzy > 0):
		return 1
	default:
		return 0
	}
}

// LintPipelineConfig holds configuration for the default lint pipeline.
type LintPipelineConfig struct {
	// Packages restricts downloads and linting to these domains.
	Packages []string

	// Skip drops these domains even when they match Packages.
	Skip []string

	// OutputDir is the download destination.
	OutputDir string

	// Jobs caps concurrent downloads.
	Jobs int

	// Strict makes fuzzy entries affect the exit code.
	Strict bool

	// ByTranslator selects per-file lint mode.
	ByTranslator bool

	// DownloadOnly stops the pipeline after the download step.
	DownloadOnly bool
}

// LintPipelineOption configures a LintPipelineConfig.
type LintPipelineOption func(*LintPipelineConfig)

// WithPackages restricts the pipeline to the named package domains.
func WithPackages(packages []string) LintPipelineOption {
	return func(c *LintPipelineConfig) {
		c.Packages = packages
	}
}

// WithSkip drops the named package domains from the pipeline.
func WithSkip(skip []string) LintPipelineOption {
	return func(c *LintPipelineConfig) {
		c.Skip = skip
	}
}

// WithOutputDir sets the download destination directory.
func WithOutputDir(dir string) LintPipelineOption {
	return func(c *LintPipelineConfig) {
		c.OutputDir = dir
	}
}

// WithJobs sets the maximum number of concurrent downloads.
func WithJobs(jobs int) LintPipelineOption {
	return func(c *LintPipelineConfig) {
		c.Jobs = jobs
	}
}

// WithStrictMode makes fuzzy entries affect the exit code.
func WithStrictMode(strict bool) LintPipelineOption {
	return func(c *LintPipelineConfig) {
		c.Strict = strict
	}
}

// WithTranslatorGrouping selects per-file lint mode.
func WithTranslatorGrouping(byTranslator bool) LintPipelineOption {
	return func(c *LintPipelineConfig) {
		c.ByTranslator = byTranslator
	}
}

// WithDownloadOnly stops the pipeline after the download step.
func WithDownloadOnly(downloadOnly bool) LintPipelineOption {
	return func(c *LintPipelineConfig) {
		c.DownloadOnly = downloadOnly
	}
}

// DefaultPipeline creates a pipeline with the standard lint steps in order:
// fetch, filter, download, and (unless DownloadOnly is set) lint.
//
// Design decision: We provide a default pipeline because:
// 1. Most invocations want the full workflow
// 2. Reduces boilerplate in the CLI
// 3. Ensures consistent ordering
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPackages, etc).
func DefaultPipeline(client SiteClient, checker Checker, pipelineOpts []Option, configOpts ...LintPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &LintPipelineConfig{
		OutputDir: "po-files",
		Jobs:      config.DefaultJobs,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewFetchStep(client),
		NewFilterStep(cfg.Packages, cfg.Skip),
		NewDownloadStep(client, cfg.OutputDir, WithDownloadJobs(cfg.Jobs)),
	)

	if !cfg.DownloadOnly {
		p.AddStep(NewLintStep(checker,
			WithStrict(cfg.Strict),
			WithByTranslator(cfg.ByTranslator),
		))
	}

	return p
}
