package model

import "sort"

// DomainPercent pairs a package domain with a coverage percentage.
type DomainPercent struct {
	Domain  string `json:"domain"`
	Percent int    `json:"percent"`
}

// LanguagePercent pairs a language code with a coverage percentage.
type LanguagePercent struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
}

// DomainCoverage summarizes how widely a single package is translated.
type DomainCoverage struct {
	Domain     string  `json:"domain"`
	Count      int     `json:"count"`
	AvgPercent float64 `json:"avg_percent"`
}

// Stats is the global aggregation over a Matrix, consumed by the report
// writers. It is computed once after parsing; the writers never touch the
// Matrix directly for global numbers.
type Stats struct {
	// TotalLanguages is the number of language columns in the matrix.
	TotalLanguages int `json:"total_languages"`

	// TotalDomains is the number of package rows in the matrix.
	TotalDomains int `json:"total_domains"`

	// TotalTranslations counts all recorded (domain, language) pairs.
	TotalTranslations int `json:"total_translations"`

	// OverallCoverage is TotalTranslations over the full grid, in percent.
	OverallCoverage float64 `json:"overall_coverage"`

	// LanguageRanking lists languages by overall coverage, best first.
	// Ties break alphabetically for deterministic output.
	LanguageRanking []LanguagePercent `json:"language_ranking"`

	// DomainRanking lists domains by translation count (then average
	// percentage), best covered first.
	DomainRanking []DomainCoverage `json:"domain_ranking"`
}

// NewStats aggregates a Matrix into global statistics.
func NewStats(m *Matrix) *Stats {
	s := &Stats{
		TotalLanguages:    len(m.Languages),
		TotalDomains:      len(m.Domains),
		TotalTranslations: m.TotalTranslations(),
		OverallCoverage:   m.OverallCoverage(),
	}

	s.LanguageRanking = make([]LanguagePercent, 0, len(m.LangPercentages))
	for code, pct := range m.LangPercentages {
		s.LanguageRanking = append(s.LanguageRanking, LanguagePercent{Code: code, Percent: pct})
	}
	sort.Slice(s.LanguageRanking, func(i, j int) bool {
		if s.LanguageRanking[i].Percent != s.LanguageRanking[j].Percent {
			return s.LanguageRanking[i].Percent > s.LanguageRanking[j].Percent
		}
		return s.LanguageRanking[i].Code < s.LanguageRanking[j].Code
	})

	s.DomainRanking = make([]DomainCoverage, 0, len(m.Domains))
	for domain, langs := range m.Domains {
		dc := DomainCoverage{Domain: domain, Count: len(langs)}
		if len(langs) > 0 {
			sum := 0
			for _, pct := range langs {
				sum += pct
			}
			dc.AvgPercent = float64(sum) / float64(len(langs))
		}
		s.DomainRanking = append(s.DomainRanking, dc)
	}
	sort.Slice(s.DomainRanking, func(i, j int) bool {
		a, b := s.DomainRanking[i], s.DomainRanking[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.AvgPercent != b.AvgPercent {
			return a.AvgPercent > b.AvgPercent
		}
		return a.Domain < b.Domain
	})

	return s
}

// LanguageStats is the per-language breakdown of the matrix: which packages
// are fully translated, partially translated, or missing for one team.
type LanguageStats struct {
	// Code is the language code as supplied by the user.
	Code string `json:"code"`

	// Key is the resolved matrix key ("pt_BR" resolves to "BR").
	Key string `json:"key"`

	// Coverage is the language's overall percentage from the summary row.
	Coverage int `json:"coverage"`

	// Complete lists domains at 100%, sorted alphabetically.
	Complete []string `json:"complete"`

	// Partial lists domains between 1% and 99%, highest first.
	Partial []DomainPercent `json:"partial"`

	// Missing lists domains with no recorded translation, sorted
	// alphabetically.
	Missing []string `json:"missing"`
}

// NewLanguageStats computes the per-language breakdown.
// The boolean result is false when the language is not in the matrix.
func NewLanguageStats(m *Matrix, code string) (*LanguageStats, bool) {
	key, ok := m.ResolveLanguage(code)
	if !ok {
		return nil, false
	}

	ls := &LanguageStats{
		Code:     code,
		Key:      key,
		Coverage: m.LangPercentages[key],
		Complete: make([]string, 0),
		Partial:  make([]DomainPercent, 0),
		Missing:  make([]string, 0),
	}

	for domain, langs := range m.Domains {
		pct, translated := langs[key]
		if !translated {
			ls.Missing = append(ls.Missing, domain)
			continue
		}
		if pct == 100 {
			ls.Complete = append(ls.Complete, domain)
		} else {
			ls.Partial = append(ls.Partial, DomainPercent{Domain: domain, Percent: pct})
		}
	}

	sort.Strings(ls.Complete)
	sort.Strings(ls.Missing)
	sort.Slice(ls.Partial, func(i, j int) bool {
		if ls.Partial[i].Percent != ls.Partial[j].Percent {
			return ls.Partial[i].Percent > ls.Partial[j].Percent
		}
		return ls.Partial[i].Domain < ls.Partial[j].Domain
	})

	return ls, true
}

// Translated returns the number of domains with any translation for the
// language.
func (ls *LanguageStats) Translated() int {
	return len(ls.Complete) + len(ls.Partial)
}

// DomainStats is the per-package breakdown of the matrix: which languages
// have fully, partially, or not at all translated one package.
type DomainStats struct {
	// Domain is the package domain name.
	Domain string `json:"domain"`

	// Complete lists languages at 100%, sorted alphabetically.
	Complete []string `json:"complete"`

	// Partial lists languages between 1% and 99%, highest first.
	Partial []LanguagePercent `json:"partial"`

	// Missing lists matrix languages with no recorded translation, sorted
	// alphabetically.
	Missing []string `json:"missing"`
}

// NewDomainStats computes the per-package breakdown.
// The boolean result is false when the domain is not in the matrix.
func NewDomainStats(m *Matrix, domain string) (*DomainStats, bool) {
	langs, ok := m.Domains[domain]
	if !ok {
		return nil, false
	}

	ds := &DomainStats{
		Domain:   domain,
		Complete: make([]string, 0),
		Partial:  make([]LanguagePercent, 0),
		Missing:  make([]string, 0),
	}

	for code, pct := range langs {
		if pct == 100 {
			ds.Complete = append(ds.Complete, code)
		} else {
			ds.Partial = append(ds.Partial, LanguagePercent{Code: code, Percent: pct})
		}
	}
	for _, code := range m.Languages {
		if _, translated := langs[code]; !translated {
			ds.Missing = append(ds.Missing, code)
		}
	}

	sort.Strings(ds.Complete)
	sort.Strings(ds.Missing)
	sort.Slice(ds.Partial, func(i, j int) bool {
		if ds.Partial[i].Percent != ds.Partial[j].Percent {
			return ds.Partial[i].Percent > ds.Partial[j].Percent
		}
		return ds.Partial[i].Code < ds.Partial[j].Code
	})

	return ds, true
}

// Translated returns the number of languages with any translation of the
// domain.
func (ds *DomainStats) Translated() int {
	return len(ds.Complete) + len(ds.Partial)
}
