package report

import (
	"encoding/json"
	"io"

	"github.com/yeager/tp-lint/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonDomain is the per-domain entry in JSON output.
type jsonDomain struct {
	Translations int            `json:"translations"`
	Languages    map[string]int `json:"languages"`
}

// jsonFilter names the breakdown a report was filtered by.
type jsonFilter struct {
	Language string `json:"language,omitempty"`
	Domain   string `json:"domain,omitempty"`
}

// jsonStats is the stable JSON shape of a coverage report. Domains carry
// their full per-language percentages so consumers don't need a second
// request for detail.
type jsonStats struct {
	TotalLanguages int                   `json:"total_languages"`
	TotalDomains   int                   `json:"total_domains"`
	Languages      map[string]int        `json:"languages"`
	Domains        map[string]jsonDomain `json:"domains"`
	Filter         *jsonFilter           `json:"filter,omitempty"`
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	stats := jsonStats{
		TotalLanguages: report.Stats.TotalLanguages,
		TotalDomains:   report.Stats.TotalDomains,
		Languages:      report.Matrix.LangPercentages,
		Domains:        make(map[string]jsonDomain, len(report.Matrix.Domains)),
	}
	for domain, langs := range report.Matrix.Domains {
		stats.Domains[domain] = jsonDomain{Translations: len(langs), Languages: langs}
	}

	if report.Language != nil {
		stats.Filter = &jsonFilter{Language: report.Language.Code}
	} else if report.Domain != nil {
		stats.Filter = &jsonFilter{Domain: report.Domain.Domain}
	}

	return w.writeJSON(stats)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// FullJSONWriter outputs the complete report structure including the
// ranking aggregations, wrapped with the tool version.
type FullJSONWriter struct {
	*JSONWriter
}

// NewFullJSONWriter creates a writer for complete reports.
func NewFullJSONWriter(output io.Writer, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{JSONWriter: NewJSONWriter(output, opts...)}
}

// Write outputs the full report including rankings and breakdowns.
func (w *FullJSONWriter) Write(report *model.Report) (int, error) {
	return w.writeJSON(report)
}
