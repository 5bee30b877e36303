// Package log provides logging with automatic redaction of translator
// email addresses, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic masking of email addresses appearing in log attributes
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why redaction
//
// Team pages list volunteer translators together with their email
// addresses. Those addresses flow through the scraper and lint pipeline as
// ordinary data, and verbose logging would otherwise write them to log
// files that may be shared or stored. The RedactHandler masks the local
// part of any email it sees while keeping the domain, which is usually
// enough for debugging.
//
// # Usage
//
//	// Create a redacting logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("translator resolved",
//	    "domain", "coreutils",
//	    "email", "anna@example.se",  // logged as "***@example.se"
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
