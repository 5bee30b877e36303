package model

import (
	"sort"
	"strings"
)

// Matrix is the parsed form of the Translation Project coverage matrix:
// every package domain cross-tabulated against every language team.
//
// Design decision: the struct mirrors the page's own layout (header order,
// summary row, per-domain rows) rather than a normalized relational form
// because column alignment in the source is positional. Languages holds the
// header column order and every later lookup aligns row cells against it.
type Matrix struct {
	// Languages lists language codes in matrix header (column) order.
	// The order is positionally significant and must not be sorted.
	Languages []string `json:"languages"`

	// LangPercentages maps a language code to its overall coverage
	// percentage from the "Pct" summary row. Keys are a subset of Languages.
	LangPercentages map[string]int `json:"lang_percentages"`

	// Domains maps a package domain to per-language coverage percentages.
	// Absent language keys mean "untranslated"; zero values are never
	// stored for empty cells.
	Domains map[string]map[string]int `json:"domains"`

	// DomainCounts maps a domain to the number of languages with any
	// recorded percentage. Taken from the row's trailing count cell when
	// it is purely digits, otherwise computed while parsing the row.
	DomainCounts map[string]int `json:"domain_counts"`
}

// NewMatrix creates an empty Matrix with initialized maps.
func NewMatrix() *Matrix {
	return &Matrix{
		Languages:       make([]string, 0),
		LangPercentages: make(map[string]int),
		Domains:         make(map[string]map[string]int),
		DomainCounts:    make(map[string]int),
	}
}

// TotalTranslations returns the number of (domain, language) pairs with a
// recorded percentage.
func (m *Matrix) TotalTranslations() int {
	total := 0
	for _, langs := range m.Domains {
		total += len(langs)
	}
	return total
}

// OverallCoverage returns the share of the full languages x domains grid
// that carries any translation, as a percentage.
func (m *Matrix) OverallCoverage() float64 {
	max := len(m.Languages) * len(m.Domains)
	if max == 0 {
		return 0
	}
	return float64(m.TotalTranslations()) / float64(max) * 100
}

// ResolveLanguage maps a user-supplied language code to the key used in the
// matrix. The matrix lists some variants under their uppercase region suffix
// ("pt_BR" appears as "BR"), so when the lowercased code is unknown and
// contains an underscore, the suffix is tried. The second return value
// reports whether the code exists in the matrix at all.
func (m *Matrix) ResolveLanguage(code string) (string, bool) {
	lower := strings.ToLower(code)
	key := lower

	if _, ok := m.LangPercentages[key]; !ok {
		if _, suffix, found := strings.Cut(lower, "_"); found {
			key = strings.ToUpper(suffix)
		}
	}

	if _, ok := m.LangPercentages[key]; ok {
		return key, true
	}
	for _, lang := range m.Languages {
		if lang == lower {
			return lower, true
		}
	}
	return key, false
}

// HasDomain reports whether the matrix has a row for the given domain.
func (m *Matrix) HasDomain(domain string) bool {
	_, ok := m.Domains[domain]
	return ok
}

// SimilarDomains returns matrix domains containing the given substring,
// sorted alphabetically. Used for "did you mean" suggestions.
func (m *Matrix) SimilarDomains(substr string) []string {
	substr = strings.ToLower(substr)
	matches := make([]string, 0)
	for d := range m.Domains {
		if strings.Contains(strings.ToLower(d), substr) {
			matches = append(matches, d)
		}
	}
	sort.Strings(matches)
	return matches
}
