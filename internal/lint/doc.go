// Package lint wraps the external l10n-lint checker. It never inspects PO
// file contents itself; it builds command lines, sets the locale
// environment, and parses l10n-lint's JSON findings.
package lint
