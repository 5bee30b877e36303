// Package config provides configuration structures and utilities for tp-lint.
// It defines the main options for scraping the Translation Project site,
// downloading PO files, linting, and report generation preferences.
package config
