package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/yeager/tp-lint/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing, e.g. pasting the
// state of a language team into a mailing list post or wiki page.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeOverview(md, report.Stats)

	switch {
	case report.Language != nil:
		w.writeLanguage(md, report)
	case report.Domain != nil:
		w.writeDomain(md, report)
	default:
		w.writeRankings(md, report)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and generation time.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	title := "Translation Project Report"
	if report.Language != nil {
		title += " – " + report.Language.Code
	}
	md.H1(title)
	md.PlainText("")
	md.PlainTextf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04"))
	md.PlainText("")
}

// writeOverview writes the global counters table.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, stats *model.Stats) {
	md.H2("Overview")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Languages", strconv.Itoa(stats.TotalLanguages)},
			{"Packages", strconv.Itoa(stats.TotalDomains)},
			{"Total translations", strconv.Itoa(stats.TotalTranslations)},
			{"Overall coverage", fmt.Sprintf("%.1f%%", stats.OverallCoverage)},
		},
	})
	md.PlainText("")
}

// writeLanguage writes the per-language breakdown with a distribution
// pie chart.
func (w *MarkdownWriter) writeLanguage(md *markdown.Markdown, report *model.Report) {
	ls := report.Language

	md.H2("Language: " + ls.Code)
	md.PlainText("")
	md.PlainTextf("**Coverage:** %d%%", ls.Coverage)
	md.PlainText("")

	w.writeDistributionChart(md, len(ls.Complete), len(ls.Partial), len(ls.Missing))

	md.H3(fmt.Sprintf("Complete (100%%) – %d packages", len(ls.Complete)))
	md.PlainText("")
	if len(ls.Complete) > 0 {
		md.BulletList(ls.Complete...)
	} else {
		md.PlainText("*None*")
	}
	md.PlainText("")

	md.H3(fmt.Sprintf("Partial – %d packages", len(ls.Partial)))
	md.PlainText("")
	if len(ls.Partial) > 0 {
		rows := make([][]string, len(ls.Partial))
		for i, dp := range ls.Partial {
			rows[i] = []string{dp.Domain, strconv.Itoa(dp.Percent) + "%"}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Package", "Coverage"},
			Rows:   rows,
		})
	} else {
		md.PlainText("*None*")
	}
	md.PlainText("")

	md.H3(fmt.Sprintf("Missing – %d packages", len(ls.Missing)))
	md.PlainText("")
	if len(ls.Missing) > 0 {
		md.BulletList(ls.Missing...)
	} else {
		md.PlainText("*None – all packages translated!*")
	}
	md.PlainText("")
}

// writeDistributionChart writes a mermaid pie chart of the package split.
func (w *MarkdownWriter) writeDistributionChart(md *markdown.Markdown, complete, partial, missing int) {
	if complete+partial+missing == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Package Translation Status"),
		piechart.WithShowData(true),
	)
	if complete > 0 {
		chart.LabelAndIntValue("Complete", uint64(complete))
	}
	if partial > 0 {
		chart.LabelAndIntValue("Partial", uint64(partial))
	}
	if missing > 0 {
		chart.LabelAndIntValue("Missing", uint64(missing))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeDomain writes the per-package breakdown.
func (w *MarkdownWriter) writeDomain(md *markdown.Markdown, report *model.Report) {
	ds := report.Domain

	md.H2("Package: " + ds.Domain)
	md.PlainText("")
	md.PlainTextf("**Translations:** %d/%d languages", ds.Translated(), report.Stats.TotalLanguages)
	md.PlainText("")

	w.writeDistributionChart(md, len(ds.Complete), len(ds.Partial), len(ds.Missing))

	md.H3(fmt.Sprintf("Complete (100%%) – %d languages", len(ds.Complete)))
	md.PlainText("")
	if len(ds.Complete) > 0 {
		md.BulletList(ds.Complete...)
	} else {
		md.PlainText("*None*")
	}
	md.PlainText("")

	md.H3(fmt.Sprintf("Partial – %d languages", len(ds.Partial)))
	md.PlainText("")
	if len(ds.Partial) > 0 {
		rows := make([][]string, len(ds.Partial))
		for i, lp := range ds.Partial {
			rows[i] = []string{lp.Code, strconv.Itoa(lp.Percent) + "%"}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Language", "Coverage"},
			Rows:   rows,
		})
	} else {
		md.PlainText("*None*")
	}
	md.PlainText("")
}

// writeRankings writes the global top lists.
func (w *MarkdownWriter) writeRankings(md *markdown.Markdown, report *model.Report) {
	stats := report.Stats
	topN := report.TopN
	if topN <= 0 || topN > len(stats.LanguageRanking) {
		topN = len(stats.LanguageRanking)
	}

	md.H2("Top Languages")
	md.PlainText("")
	langRows := make([][]string, 0, topN)
	for i, lp := range stats.LanguageRanking[:topN] {
		langRows = append(langRows, []string{
			strconv.Itoa(i + 1), lp.Code, strconv.Itoa(lp.Percent) + "%",
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Language", "Coverage"},
		Rows:   langRows,
	})
	md.PlainText("")

	domainN := topN
	if domainN > len(stats.DomainRanking) {
		domainN = len(stats.DomainRanking)
	}
	md.H2("Best Covered Packages")
	md.PlainText("")
	domainRows := make([][]string, 0, domainN)
	for _, dc := range stats.DomainRanking[:domainN] {
		domainRows = append(domainRows, []string{
			dc.Domain, strconv.Itoa(dc.Count), fmt.Sprintf("%.0f%%", dc.AvgPercent),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Package", "Languages", "Avg Coverage"},
		Rows:   domainRows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Data source: [Translation Project](https://translationproject.org/extra/matrix.html)*")
}
