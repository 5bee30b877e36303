// Package model defines the core data structures for tp-lint.
// It contains the results produced by the HTML extractors (language index,
// team page, coverage matrix), the statistics derived from them, and the
// lint result types shared between the pipeline and the report writers.
package model
