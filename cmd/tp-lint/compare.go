package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeager/tp-lint/internal/cache"
	"github.com/yeager/tp-lint/internal/config"
	"github.com/yeager/tp-lint/internal/model"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the two most recent matrix snapshots",
		Long: `Compare shows what changed between the two most recent coverage matrix
snapshots in the local cache: languages and packages that appeared or
vanished, and coverage numbers that moved.

By default a fresh snapshot is fetched first, so running compare once a
week shows that week's progress. Snapshots are also recorded whenever
stats or report fetch the matrix.

Examples:
  # Fetch a snapshot and compare against the previous one
  tp-lint compare

  # Compare the two existing snapshots without fetching
  tp-lint compare --no-fetch

  # Machine-readable output
  tp-lint compare --json`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output as JSON")
	cmd.Flags().Bool("no-fetch", false, "Compare existing snapshots without fetching a new one")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	noFetch, err := cmd.Flags().GetBool("no-fetch")
	if err != nil {
		return err
	}

	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx := cmd.Context()

	c, err := openCache(cfg, true)
	if err != nil {
		return fmt.Errorf("open snapshot cache: %w", err)
	}
	defer closeCache(c, logger)

	if !noFetch {
		client := newSiteClient(cfg)
		m, err := client.Matrix(ctx)
		if err != nil {
			return fmt.Errorf("fetch matrix: %w", err)
		}
		if _, err := c.SaveSnapshot(ctx, m); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		if err := c.Prune(ctx, snapshotKeep); err != nil {
			logger.Warn("cannot prune snapshots", "error", err)
		}
	}

	snapshots, err := c.LatestTwo(ctx)
	if err != nil {
		return fmt.Errorf("load snapshots: %w", err)
	}
	if len(snapshots) < 2 {
		return fmt.Errorf("need at least two snapshots to compare (have %d); run stats or compare again later", len(snapshots))
	}

	// LatestTwo returns newest first.
	newer, older := snapshots[0], snapshots[1]
	diff := model.NewMatrixDiff(older.Matrix, newer.Matrix)

	if jsonOutput {
		return outputDiffJSON(cmd.OutOrStdout(), older, newer, diff)
	}
	outputDiffText(cmd.OutOrStdout(), older, newer, diff)
	return nil
}

// diffEnvelope wraps a MatrixDiff with snapshot timestamps for JSON output.
type diffEnvelope struct {
	Older time.Time         `json:"older"`
	Newer time.Time         `json:"newer"`
	Diff  *model.MatrixDiff `json:"diff"`
}

// outputDiffJSON writes the comparison as JSON.
func outputDiffJSON(w io.Writer, older, newer *cache.Snapshot, diff *model.MatrixDiff) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(diffEnvelope{
		Older: older.Timestamp,
		Newer: newer.Timestamp,
		Diff:  diff,
	})
}

// outputDiffText writes the comparison as human-readable text.
func outputDiffText(w io.Writer, older, newer *cache.Snapshot, diff *model.MatrixDiff) {
	fmt.Fprintf(w, "Comparing snapshots: %s -> %s\n\n",
		older.Timestamp.Format("2006-01-02 15:04"),
		newer.Timestamp.Format("2006-01-02 15:04"))

	if diff.Empty() {
		fmt.Fprintln(w, "No changes between snapshots.")
		return
	}

	if len(diff.AddedLanguages) > 0 {
		fmt.Fprintln(w, "New languages:")
		for _, code := range diff.AddedLanguages {
			fmt.Fprintf(w, "  + %s\n", code)
		}
		fmt.Fprintln(w)
	}
	if len(diff.RemovedLanguages) > 0 {
		fmt.Fprintln(w, "Removed languages:")
		for _, code := range diff.RemovedLanguages {
			fmt.Fprintf(w, "  - %s\n", code)
		}
		fmt.Fprintln(w)
	}
	if len(diff.LanguageChanges) > 0 {
		fmt.Fprintln(w, "Coverage changes:")
		for _, change := range diff.LanguageChanges {
			fmt.Fprintf(w, "  %-8s %3d%% -> %3d%% (%s)\n",
				change.Code, change.Old, change.New, formatDelta(change.New-change.Old))
		}
		fmt.Fprintln(w)
	}

	if len(diff.AddedDomains) > 0 {
		fmt.Fprintln(w, "New packages:")
		for _, domain := range diff.AddedDomains {
			fmt.Fprintf(w, "  + %s\n", domain)
		}
		fmt.Fprintln(w)
	}
	if len(diff.RemovedDomains) > 0 {
		fmt.Fprintln(w, "Removed packages:")
		for _, domain := range diff.RemovedDomains {
			fmt.Fprintf(w, "  - %s\n", domain)
		}
		fmt.Fprintln(w)
	}
	if len(diff.DomainChanges) > 0 {
		fmt.Fprintln(w, "Translation count changes:")
		for _, change := range diff.DomainChanges {
			fmt.Fprintf(w, "  %-20s %3d -> %3d (%s)\n",
				change.Domain, change.Old, change.New, formatDelta(change.New-change.Old))
		}
	}
}

// formatDelta renders a signed difference ("+2", "-1").
func formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
