package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoLanguage is returned when a command that operates on language
	// teams receives no language code.
	ErrNoLanguage = errors.New("no language specified: provide a language code such as \"sv\"")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidJobs is returned when the download concurrency is not
	// positive. Zero workers would mean no downloads at all.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")

	// ErrInvalidBatchSize is returned when the number of concurrently
	// processed languages is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidTopN is returned when the ranking size is negative.
	// Use 0 to show the full ranking.
	ErrInvalidTopN = errors.New("invalid top: must be non-negative")

	// ErrInvalidCacheTTL is returned when the cache lifetime is negative.
	// Use 0 to disable snapshot expiry.
	ErrInvalidCacheTTL = errors.New("invalid cache ttl: must be non-negative")

	// ErrConflictingReportFormats is returned when more than one report
	// format flag is specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: pick one of --json, --markdown, --html")
)
