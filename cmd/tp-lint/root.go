// Package main provides the entry point for the tp-lint CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitCodeError carries a non-zero exit code out of a command without
// printing an error message. The lint command uses it to report issue
// severity through the process exit code (2 errors, 1 warnings) the way
// other linters do.
type exitCodeError struct {
	code int
}

// Error implements the error interface.
func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewRootCmd creates the root command for tp-lint.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tp-lint",
		Short: "Lint Translation Project PO files and track coverage",
		Long: `tp-lint downloads a language team's PO files from the Translation Project
(https://translationproject.org) and checks them with an external linter.

It can also report translation coverage statistics scraped from the site's
matrix page, render them as text, JSON, Markdown or HTML, and compare
snapshots over time.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewLanguagesCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewLintCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
