package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. This serves as living documentation of the defaults and
// makes accidental default changes fail loudly.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is the project site", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://translationproject.org" {
			t.Errorf("expected BaseURL to be the project site, got '%s'", cfg.BaseURL)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default Jobs is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.Jobs != 4 {
			t.Errorf("expected Jobs to be 4, got %d", cfg.Jobs)
		}
	})

	t.Run("default BatchSize is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("default TopN is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.TopN != 10 {
			t.Errorf("expected TopN to be 10, got %d", cfg.TopN)
		}
	})

	t.Run("default CacheTTL is 24 hours", func(t *testing.T) {
		t.Parallel()
		if cfg.CacheTTL != 24*time.Hour {
			t.Errorf("expected CacheTTL to be 24h, got %v", cfg.CacheTTL)
		}
	})

	t.Run("default LintCommand is l10n-lint", func(t *testing.T) {
		t.Parallel()
		if cfg.LintCommand != "l10n-lint" {
			t.Errorf("expected LintCommand to be 'l10n-lint', got '%s'", cfg.LintCommand)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := NewConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("zero timeout returns ErrInvalidTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Timeout = 0

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("zero jobs returns ErrInvalidJobs", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Jobs = 0

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidJobs) {
			t.Errorf("expected ErrInvalidJobs, got %v", err)
		}
	})

	t.Run("zero batch size returns ErrInvalidBatchSize", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.BatchSize = 0

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})

	t.Run("negative top returns ErrInvalidTopN", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.TopN = -1

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTopN) {
			t.Errorf("expected ErrInvalidTopN, got %v", err)
		}
	})

	t.Run("negative cache ttl returns ErrInvalidCacheTTL", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.CacheTTL = -time.Hour

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidCacheTTL) {
			t.Errorf("expected ErrInvalidCacheTTL, got %v", err)
		}
	})

	t.Run("zero top and zero cache ttl are valid", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.TopN = 0
		cfg.CacheTTL = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("two report formats return ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true

		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("single report format is valid", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.HTMLReport = true

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestConfigValidateLanguages tests the language-requiring variant.
func TestConfigValidateLanguages(t *testing.T) {
	t.Parallel()

	t.Run("no languages returns ErrNoLanguage", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()

		if err := cfg.ValidateLanguages(); !errors.Is(err, ErrNoLanguage) {
			t.Errorf("expected ErrNoLanguage, got %v", err)
		}
	})

	t.Run("one language is valid", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Languages = []string{"sv"}

		if err := cfg.ValidateLanguages(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("underlying validation still applies", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Languages = []string{"sv"}
		cfg.Jobs = 0

		if err := cfg.ValidateLanguages(); !errors.Is(err, ErrInvalidJobs) {
			t.Errorf("expected ErrInvalidJobs, got %v", err)
		}
	})
}

// TestLoadConfigFile tests YAML loading and error handling.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads languages and defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `
defaults:
  strict: true
languages:
  sv:
    packages:
      - coreutils
      - grep
    skip:
      - texinfo
  de:
    outputDir: /tmp/po-de
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sv := cf.GetLanguageConfig("sv")
		if !reflect.DeepEqual(sv.Packages, []string{"coreutils", "grep"}) {
			t.Errorf("packages = %v, want [coreutils grep]", sv.Packages)
		}
		if !reflect.DeepEqual(sv.Skip, []string{"texinfo"}) {
			t.Errorf("skip = %v, want [texinfo]", sv.Skip)
		}
		if !sv.Strict {
			t.Error("expected strict default to apply to sv")
		}

		de := cf.GetLanguageConfig("de")
		if de.OutputDir != "/tmp/po-de" {
			t.Errorf("outputDir = %q, want /tmp/po-de", de.OutputDir)
		}
		if len(de.Packages) != 0 {
			t.Errorf("packages = %v, want none", de.Packages)
		}
	})

	t.Run("unknown language falls back to defaults", func(t *testing.T) {
		t.Parallel()

		cf := &File{Defaults: LanguageConfig{Packages: []string{"wget"}}}
		got := cf.GetLanguageConfig("fi")
		if !reflect.DeepEqual(got.Packages, []string{"wget"}) {
			t.Errorf("packages = %v, want [wget]", got.Packages)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed yaml returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("languages: ["), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected an error for malformed yaml")
		}
	})
}

// TestFindConfigFile tests the search order for the configuration file.
func TestFindConfigFile(t *testing.T) {
	t.Run("explicit existing path wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("got %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path yields empty", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("current directory is searched", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		got := FindConfigFile("")
		if filepath.Base(got) != DefaultConfigFile {
			t.Errorf("got %q, want a %s path", got, DefaultConfigFile)
		}
	})
}
