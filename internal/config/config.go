package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These are chosen for a polite, low-volume scraper of a volunteer-run site.
const (
	// DefaultBaseURL is the Translation Project site root. Overridable for
	// mirrors and tests.
	DefaultBaseURL = "https://translationproject.org"

	// DefaultTimeout is the per-request HTTP timeout. The site serves small
	// static pages and PO files, so 30 seconds is generous.
	DefaultTimeout = 30 * time.Second

	// DefaultJobs is the number of concurrent PO file downloads. Four keeps
	// runs fast without hammering a volunteer-operated server.
	DefaultJobs = 4

	// DefaultBatchSize is the number of languages linted concurrently when
	// several language codes are given. Lint work is local and CPU-bound,
	// so this can be modest.
	DefaultBatchSize = 4

	// DefaultTopN is the number of entries shown in coverage rankings.
	// Zero means the full ranking.
	DefaultTopN = 10

	// DefaultCacheTTL is how long a cached matrix snapshot stays fresh.
	// The site regenerates its pages daily, so anything under a day only
	// trades staleness for load on the server.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultLintCommand is the external PO file checker invoked on
	// downloaded files. It must be on PATH.
	DefaultLintCommand = "l10n-lint"

	// DefaultUnknownTranslator labels files whose domain has no translator
	// assignment on the team page.
	DefaultUnknownTranslator = "(unassigned)"

	// AppName is the application name used for XDG directory paths.
	AppName = "tp-lint"

	// DefaultUserAgent identifies tp-lint in HTTP requests so site
	// operators can recognize the traffic in their logs.
	DefaultUserAgent = "tp-lint/1.0 (+https://github.com/yeager/tp-lint)"
)

// Config holds all configuration options for tp-lint.
// This struct is populated from CLI flags and passed through the application
// via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, LintConfig) for simplicity. The number of options is
// manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the site root used to build index, team, and matrix URLs
	// and to resolve relative PO file links.
	BaseURL string

	// Timeout is the HTTP timeout for each request, not the whole run.
	Timeout time.Duration

	// Jobs is the number of concurrent PO file downloads.
	Jobs int

	// BatchSize is the number of languages processed concurrently when
	// linting several language codes in one invocation.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Languages is the list of language codes to process.
	Languages []string

	// Domain restricts stats output to a single package domain.
	Domain string

	// Packages restricts downloads and linting to the named package
	// domains. Empty means all packages on the team page.
	Packages []string

	// OutputDir is where PO files are downloaded. Empty means a temporary
	// directory, removed after the run unless KeepFiles is set.
	OutputDir string

	// KeepFiles prevents removal of the download directory after linting.
	KeepFiles bool

	// DownloadOnly stops the lint pipeline after the download step.
	DownloadOnly bool

	// Strict makes fuzzy entries affect the exit code.
	Strict bool

	// ByTranslator switches linting to per-file mode and groups the
	// summary by assigned translator.
	ByTranslator bool

	// LintCommand is the external PO checker executable.
	LintCommand string

	// TopN limits ranking output; zero shows everything.
	TopN int

	// NoCache bypasses the matrix snapshot cache and always fetches.
	NoCache bool

	// CacheTTL is the snapshot freshness window; zero disables expiry.
	CacheTTL time.Duration

	// CacheDir is the directory for the snapshot database.
	// Empty means the XDG cache directory.
	CacheDir string

	// JSONReport, MarkdownReport and HTMLReport select the report format.
	// At most one may be set; all false means the plain text report.
	JSONReport     bool
	MarkdownReport bool
	HTMLReport     bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .tp-lint.yaml in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// FileConfig holds per-language settings loaded from the config file.
	FileConfig *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, jobs).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		Jobs:        DefaultJobs,
		BatchSize:   DefaultBatchSize,
		TopN:        DefaultTopN,
		CacheTTL:    DefaultCacheTTL,
		LintCommand: DefaultLintCommand,
		UserAgent:   DefaultUserAgent,
	}
}

// XDGDataDir returns the XDG data directory for tp-lint.
// On Linux: ~/.local/share/tp-lint
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for tp-lint.
// On Linux: ~/.config/tp-lint
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for tp-lint.
// On Linux: ~/.cache/tp-lint
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any network traffic.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.TopN < 0 {
		return ErrInvalidTopN
	}

	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}

	// Report formats are mutually exclusive.
	formats := 0
	for _, set := range []bool{c.JSONReport, c.MarkdownReport, c.HTMLReport} {
		if set {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	return nil
}

// ValidateLanguages additionally requires at least one language code.
// Commands that operate on language teams call this instead of Validate.
func (c *Config) ValidateLanguages() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Languages) == 0 {
		return ErrNoLanguage
	}
	return nil
}
