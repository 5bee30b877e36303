package model

import "time"

// Report bundles everything a report writer needs: the parsed matrix, the
// global aggregation, and optional per-language or per-domain breakdowns
// selected by the user.
//
// Design decision: the writers receive one composed struct rather than the
// Matrix plus a bag of options because the writers should not re-derive
// statistics. All aggregation happens once, here, and each writer only
// formats.
type Report struct {
	// GeneratedAt is the report creation time.
	GeneratedAt time.Time `json:"generated_at"`

	// Version is the tp-lint version that produced the report.
	Version string `json:"version"`

	// Matrix is the parsed coverage matrix.
	Matrix *Matrix `json:"-"`

	// Stats is the global aggregation over Matrix.
	Stats *Stats `json:"stats"`

	// Language is the per-language breakdown, nil for global reports.
	Language *LanguageStats `json:"language,omitempty"`

	// Domain is the per-package breakdown, nil unless a domain filter
	// was given.
	Domain *DomainStats `json:"domain,omitempty"`

	// TopN bounds ranked lists in rendered output.
	TopN int `json:"-"`
}

// NewReport composes a Report from a matrix and optional filters.
// An empty language or domain leaves the corresponding breakdown nil.
// Unknown languages or domains also leave it nil; callers that need to
// distinguish "not requested" from "not found" should check the matrix
// before composing the report.
func NewReport(m *Matrix, version, language, domain string, topN int) *Report {
	r := &Report{
		GeneratedAt: time.Now(),
		Version:     version,
		Matrix:      m,
		Stats:       NewStats(m),
		TopN:        topN,
	}
	if language != "" {
		if ls, ok := NewLanguageStats(m, language); ok {
			r.Language = ls
		}
	}
	if domain != "" {
		if ds, ok := NewDomainStats(m, domain); ok {
			r.Domain = ds
		}
	}
	return r
}
