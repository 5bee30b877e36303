package model

import "time"

// RuleFuzzy is the l10n-lint rule name for fuzzy (unreviewed) entries.
// Fuzzy entries are counted separately because they only fail a run in
// strict mode.
const RuleFuzzy = "fuzzy"

// LintIssue is a single finding from l10n-lint's JSON output.
type LintIssue struct {
	// Rule is the lint rule identifier (e.g. "fuzzy", "format-mismatch").
	Rule string `json:"rule"`

	// Severity is l10n-lint's severity string ("error", "warning", ...).
	Severity string `json:"severity"`

	// Message is the human-readable description of the issue.
	Message string `json:"message,omitempty"`

	// Line is the line number in the PO file, when reported.
	Line int `json:"line,omitempty"`
}

// FileResult holds the lint outcome for one PO file.
type FileResult struct {
	// File is the PO filename (not the full path).
	File string `json:"file"`

	// Issues are all findings for the file.
	Issues []LintIssue `json:"issues"`
}

// Counts tallies the file's issues into errors, fuzzy entries, and
// warnings. Fuzzy issues are excluded from both error and warning counts.
func (f *FileResult) Counts() (errors, fuzzy, warnings int) {
	for _, issue := range f.Issues {
		switch {
		case issue.Rule == RuleFuzzy:
			fuzzy++
		case ParseSeverity(issue.Severity) == SeverityError:
			errors++
		default:
			warnings++
		}
	}
	return errors, fuzzy, warnings
}

// TranslatorSummary aggregates lint results across all files assigned to
// one translator.
type TranslatorSummary struct {
	// Files lists the PO filenames credited to the translator.
	Files []string `json:"files"`

	// Errors, Fuzzy and Warnings are summed across Files.
	Errors   int `json:"errors"`
	Fuzzy    int `json:"fuzzy"`
	Warnings int `json:"warnings"`
}

// DownloadResult describes one completed PO file download.
type DownloadResult struct {
	// URL is the source URL.
	URL string `json:"url"`

	// Path is the local destination path.
	Path string `json:"path"`

	// Size is the downloaded byte count.
	Size int64 `json:"size"`

	// Elapsed is the wall-clock download duration.
	Elapsed time.Duration `json:"elapsed"`
}

// LintRun is the accumulating report object threaded through the lint
// pipeline. Each step reads what earlier steps produced and records its own
// results here, mirroring how the page extractors hand off immutable result
// structs: once the pipeline finishes, the run is only read.
type LintRun struct {
	// Language is the language code being linted.
	Language string `json:"language"`

	// POFiles are the absolute URLs selected for download, in team page
	// order (after package filtering, if any).
	POFiles []string `json:"po_files"`

	// Translators maps domain to assigned translator, from the team page.
	Translators map[string]string `json:"translators"`

	// OutputDir is where PO files were written.
	OutputDir string `json:"output_dir"`

	// Downloaded lists successful downloads in completion order.
	Downloaded []DownloadResult `json:"downloaded"`

	// FileResults maps PO filename to its lint outcome. Populated only in
	// per-file (by-translator) mode.
	FileResults map[string]FileResult `json:"file_results,omitempty"`

	// Stdout and Stderr capture l10n-lint's output in directory mode.
	Stdout string `json:"stdout,omitempty"`
	Stderr string `json:"stderr,omitempty"`

	// ExitCode is the final exit code for the run: 2 when errors were
	// found, 1 for warnings (or fuzzy entries in strict mode), 0 otherwise.
	ExitCode int `json:"exit_code"`

	// PerformedSteps records which pipeline steps ran, in order.
	PerformedSteps []string `json:"performed_steps"`

	// Err is the first fatal error, if any. ErrorMessage carries its text
	// into serialized output.
	Err          error  `json:"-"`
	ErrorMessage string `json:"error,omitempty"`
}

// NewLintRun creates a LintRun for the given language code.
func NewLintRun(language string) *LintRun {
	return &LintRun{
		Language:    language,
		POFiles:     make([]string, 0),
		Translators: make(map[string]string),
		Downloaded:  make([]DownloadResult, 0),
	}
}

// ByTranslator groups per-file lint results by the assigned translator.
// Files whose domain has no assignment are grouped under unknown.
// Translator names are map keys, so callers should sort them for output.
func (r *LintRun) ByTranslator(unknown string) map[string]*TranslatorSummary {
	grouped := make(map[string]*TranslatorSummary)
	for filename, result := range r.FileResults {
		domain := DomainFromFileName(filename)
		translator := unknown
		if name, ok := r.Translators[domain]; ok {
			translator = name
		}

		summary, ok := grouped[translator]
		if !ok {
			summary = &TranslatorSummary{Files: make([]string, 0)}
			grouped[translator] = summary
		}
		summary.Files = append(summary.Files, filename)

		errors, fuzzy, warnings := result.Counts()
		summary.Errors += errors
		summary.Fuzzy += fuzzy
		summary.Warnings += warnings
	}
	return grouped
}
