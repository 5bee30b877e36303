// Package scrape extracts structured translation-coverage data from the
// Translation Project's HTML pages.
//
// The site publishes browser-oriented pages without stable element IDs, so
// the extractors work as small state machines over a token stream rather
// than querying a DOM: each one tracks "most recently seen" context (last
// opened tag, pending language name, current row's domain) and associates
// data by proximity. Every extractor is a per-page struct mutated by an
// event-dispatch loop, which keeps the state explicit and lets tests feed
// synthetic event sequences instead of full documents.
//
// Parsing failures are local and non-fatal: rows or cells that do not match
// the expected shape are skipped, never escalated. Callers observe missing
// data only as emptier result structures.
package scrape
