package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/yeager/tp-lint/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with bar-chart rankings and
// clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
// A language or domain breakdown replaces the global ranking sections.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeOverview(&sb, report.Stats)

	switch {
	case report.Language != nil:
		w.writeLanguage(&sb, report)
	case report.Domain != nil:
		w.writeDomain(&sb, report)
	default:
		w.writeRankings(&sb, report)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner.
func (w *SimpleWriter) writeHeader(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("Translation Project Statistics\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")
}

// writeOverview writes the global counters.
func (w *SimpleWriter) writeOverview(sb *strings.Builder, stats *model.Stats) {
	sb.WriteString("Overview\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  Languages: %d\n", stats.TotalLanguages)
	fmt.Fprintf(sb, "  Domains (packages): %d\n", stats.TotalDomains)
	fmt.Fprintf(sb, "  Total translations: %d\n", stats.TotalTranslations)
	fmt.Fprintf(sb, "  Overall coverage: %.1f%%\n", stats.OverallCoverage)
	sb.WriteString("\n")
}

// writeLanguage writes the per-language breakdown.
func (w *SimpleWriter) writeLanguage(sb *strings.Builder, report *model.Report) {
	ls := report.Language

	fmt.Fprintf(sb, "Statistics for: %s\n", strings.ToUpper(ls.Code))
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  Overall coverage: %d%%\n", ls.Coverage)
	fmt.Fprintf(sb, "  Translated: %d/%d packages\n", ls.Translated(), report.Stats.TotalDomains)
	sb.WriteString("\n")

	w.writeNameList(sb, "Complete (100%):", ls.Complete, report.TopN)

	sb.WriteString("Partial translations:\n")
	if len(ls.Partial) == 0 && !w.showEmpty {
		sb.WriteString("     (none)\n")
	} else {
		shown := ls.Partial
		if report.TopN > 0 && len(shown) > report.TopN {
			shown = shown[:report.TopN]
		}
		for _, dp := range shown {
			fmt.Fprintf(sb, "     %s: %d%%\n", dp.Domain, dp.Percent)
		}
		if more := len(ls.Partial) - len(shown); more > 0 {
			fmt.Fprintf(sb, "     ... and %d more\n", more)
		}
	}
	sb.WriteString("\n")

	w.writeNameList(sb, "Missing (not translated):", ls.Missing, report.TopN)
}

// writeDomain writes the per-package breakdown.
func (w *SimpleWriter) writeDomain(sb *strings.Builder, report *model.Report) {
	ds := report.Domain

	fmt.Fprintf(sb, "Statistics for package: %s\n", ds.Domain)
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  Translations: %d/%d languages\n", ds.Translated(), report.Stats.TotalLanguages)
	sb.WriteString("\n")

	fmt.Fprintf(sb, "Complete (100%%): %d\n", len(ds.Complete))
	if len(ds.Complete) > 0 {
		fmt.Fprintf(sb, "     %s\n", strings.Join(ds.Complete, ", "))
	}
	sb.WriteString("\n")

	fmt.Fprintf(sb, "Partial: %d\n", len(ds.Partial))
	shown := ds.Partial
	if report.TopN > 0 && len(shown) > report.TopN {
		shown = shown[:report.TopN]
	}
	for _, lp := range shown {
		fmt.Fprintf(sb, "     %s: %d%%\n", lp.Code, lp.Percent)
	}
	sb.WriteString("\n")

	fmt.Fprintf(sb, "Missing: %d\n", len(ds.Missing))
	if len(ds.Missing) > 0 {
		fmt.Fprintf(sb, "     %s\n", strings.Join(ds.Missing, ", "))
	}
}

// writeRankings writes the global top and bottom lists.
func (w *SimpleWriter) writeRankings(sb *strings.Builder, report *model.Report) {
	stats := report.Stats
	topN := report.TopN
	if topN <= 0 || topN > len(stats.LanguageRanking) {
		topN = len(stats.LanguageRanking)
	}

	fmt.Fprintf(sb, "Top %d Languages (by coverage)\n", topN)
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	for i, lp := range stats.LanguageRanking[:topN] {
		fmt.Fprintf(sb, "  %2d. %-6s %s %d%%\n", i+1, lp.Code, coverageBar(lp.Percent), lp.Percent)
	}
	sb.WriteString("\n")

	bottomN := min(10, topN)
	if bottomN > len(stats.LanguageRanking) {
		bottomN = len(stats.LanguageRanking)
	}
	fmt.Fprintf(sb, "Bottom %d Languages\n", bottomN)
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	bottom := stats.LanguageRanking[len(stats.LanguageRanking)-bottomN:]
	for i, lp := range bottom {
		fmt.Fprintf(sb, "  %2d. %-6s %s %d%%\n", i+1, lp.Code, coverageBar(lp.Percent), lp.Percent)
	}
	sb.WriteString("\n")

	domainN := topN
	if domainN > len(stats.DomainRanking) {
		domainN = len(stats.DomainRanking)
	}
	sb.WriteString("Best Covered Packages (most translations)\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	for i, dc := range stats.DomainRanking[:domainN] {
		fmt.Fprintf(sb, "  %2d. %-20s %2d langs, avg %.0f%%\n", i+1, dc.Domain, dc.Count, dc.AvgPercent)
	}
	sb.WriteString("\n")

	sb.WriteString("Least Covered Packages (need translations)\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	least := stats.DomainRanking[len(stats.DomainRanking)-domainN:]
	for i := len(least) - 1; i >= 0; i-- {
		dc := least[i]
		fmt.Fprintf(sb, "  %2d. %-20s %2d langs, avg %.0f%%\n", len(least)-i, dc.Domain, dc.Count, dc.AvgPercent)
	}
}

// writeNameList writes a section of bare names, truncated to topN.
func (w *SimpleWriter) writeNameList(sb *strings.Builder, title string, names []string, topN int) {
	sb.WriteString(title)
	sb.WriteString("\n")
	if len(names) == 0 {
		sb.WriteString("     (none)\n\n")
		return
	}

	shown := names
	if topN > 0 && len(shown) > topN {
		shown = shown[:topN]
	}
	for _, name := range shown {
		fmt.Fprintf(sb, "     %s\n", name)
	}
	if more := len(names) - len(shown); more > 0 {
		fmt.Fprintf(sb, "     ... and %d more\n", more)
	}
	sb.WriteString("\n")
}

// coverageBar renders a 20-cell bar for a percentage.
func coverageBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 5
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}
