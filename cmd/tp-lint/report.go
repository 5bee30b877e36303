package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/yeager/tp-lint/internal/config"
	"github.com/yeager/tp-lint/internal/model"
	"github.com/yeager/tp-lint/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [language-code]",
		Short: "Generate a coverage report",
		Long: `Report renders translation coverage as a document: Markdown for wikis
and mailing lists, HTML for publishing on a web server, or JSON for tools.
Without a format flag a plain text report is written.

Examples:
  # Markdown report for the Swedish team
  tp-lint report --markdown sv

  # Standalone HTML page for the whole project
  tp-lint report --html -o coverage.html

  # Full JSON report including rankings
  tp-lint report --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReportCmd,
	}

	cmd.Flags().StringP("domain", "d", "", "Restrict to a single package domain")
	cmd.Flags().IntP("top", "n", config.DefaultTopN, "Entries shown in rankings (0 = all)")
	cmd.Flags().BoolP("json", "j", false, "Output JSON report (mutually exclusive with --markdown and --html)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown report (mutually exclusive with --json and --html)")
	cmd.Flags().Bool("html", false, "Output HTML report (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "", "Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-cache", false, "Bypass the matrix snapshot cache")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildReportConfig(cmd, args)
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
		return fmt.Errorf("package %q not found in the coverage matrix", cfg.Domain)
	}

	r := model.NewReport(m, getVersion(), language, cfg.Domain, cfg.TopN)

	output, cleanup, err := openOutput(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer cleanup()

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	case cfg.HTMLReport:
		w = report.NewHTMLWriter(output)
	default:
		w = report.NewSimpleWriter(output)
	}

	if _, err := w.Write(r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if cfg.ReportFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", cfg.ReportFile)
	}

	return nil
}

// buildReportConfig creates a Config from report command flags.
func buildReportConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
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
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.HTMLReport, err = cmd.Flags().GetBool("html")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.NoCache, err = cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
