package model

// Severity classifies a lint issue reported by l10n-lint.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. ParseSeverity converts the
// strings found in l10n-lint's JSON output.
type Severity int

const (
	// SeverityInfo indicates an informational note with no quality impact,
	// such as style suggestions.
	SeverityInfo Severity = iota

	// SeverityWarning indicates an issue worth fixing but not blocking,
	// such as inconsistent punctuation or a fuzzy entry.
	SeverityWarning

	// SeverityError indicates a defect that breaks the translation,
	// such as mismatched format directives.
	SeverityError
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity maps l10n-lint's severity strings to a Severity.
// Unknown strings are treated as warnings so they are surfaced without
// failing the run.
func ParseSeverity(s string) Severity {
	switch s {
	case "error":
		return SeverityError
	case "info", "note":
		return SeverityInfo
	default:
		return SeverityWarning
	}
}
