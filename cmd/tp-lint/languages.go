package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yeager/tp-lint/internal/config"
)

// NewLanguagesCmd creates the languages command.
func NewLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List language teams on the Translation Project",
		Long: `Languages lists every language team found on the Translation Project
team index, with its code and English display name.

Examples:
  # List all teams sorted by name
  tp-lint languages

  # Machine-readable output
  tp-lint languages --json`,
		Args: cobra.NoArgs,
		RunE: runLanguagesCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output as JSON")
	cmd.Flags().Bool("by-code", false, "Sort by language code instead of name")

	return cmd
}

// runLanguagesCmd executes the languages command.
func runLanguagesCmd(cmd *cobra.Command, _ []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	byCode, err := cmd.Flags().GetBool("by-code")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	cfg := config.NewConfig()
	client := newSiteClient(cfg)

	entries, err := client.Languages(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch team index: %w", err)
	}

	// Collation sorts names the way a human expects ("Ukrainian" before
	// "Walloon", accented names in place), which plain byte order does not.
	if byCode {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	} else {
		c := collate.New(language.English)
		sort.Slice(entries, func(i, j int) bool {
			return c.CompareString(entries[i].Name, entries[j].Name) < 0
		})
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	for _, entry := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", entry.Code, entry.Name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d language teams\n", len(entries))

	return nil
}
