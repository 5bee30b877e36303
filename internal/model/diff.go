package model

import "sort"

// LanguageChange records a shift in one language's overall percentage
// between two matrix snapshots.
type LanguageChange struct {
	Code string `json:"code"`
	Old  int    `json:"old"`
	New  int    `json:"new"`
}

// DomainChange records a shift in one domain's translation count between
// two matrix snapshots.
type DomainChange struct {
	Domain string `json:"domain"`
	Old    int    `json:"old"`
	New    int    `json:"new"`
}

// MatrixDiff is the difference between two matrix snapshots, consumed by
// the compare command. All slices are sorted for deterministic output.
type MatrixDiff struct {
	// AddedLanguages and RemovedLanguages track header changes.
	AddedLanguages   []string `json:"added_languages"`
	RemovedLanguages []string `json:"removed_languages"`

	// LanguageChanges lists languages whose overall percentage moved.
	LanguageChanges []LanguageChange `json:"language_changes"`

	// AddedDomains and RemovedDomains track package rows appearing in or
	// vanishing from the matrix.
	AddedDomains   []string `json:"added_domains"`
	RemovedDomains []string `json:"removed_domains"`

	// DomainChanges lists domains whose translation count moved.
	DomainChanges []DomainChange `json:"domain_changes"`
}

// NewMatrixDiff computes the changes from an older matrix to a newer one.
func NewMatrixDiff(older, newer *Matrix) *MatrixDiff {
	d := &MatrixDiff{
		AddedLanguages:   make([]string, 0),
		RemovedLanguages: make([]string, 0),
		LanguageChanges:  make([]LanguageChange, 0),
		AddedDomains:     make([]string, 0),
		RemovedDomains:   make([]string, 0),
		DomainChanges:    make([]DomainChange, 0),
	}

	oldLangs := make(map[string]bool, len(older.Languages))
	for _, code := range older.Languages {
		oldLangs[code] = true
	}
	newLangs := make(map[string]bool, len(newer.Languages))
	for _, code := range newer.Languages {
		newLangs[code] = true
	}

	for code := range newLangs {
		if !oldLangs[code] {
			d.AddedLanguages = append(d.AddedLanguages, code)
		}
	}
	for code := range oldLangs {
		if !newLangs[code] {
			d.RemovedLanguages = append(d.RemovedLanguages, code)
		}
	}

	for code, newPct := range newer.LangPercentages {
		if oldPct, ok := older.LangPercentages[code]; ok && oldPct != newPct {
			d.LanguageChanges = append(d.LanguageChanges, LanguageChange{
				Code: code, Old: oldPct, New: newPct,
			})
		}
	}

	for domain := range newer.Domains {
		if _, ok := older.Domains[domain]; !ok {
			d.AddedDomains = append(d.AddedDomains, domain)
		}
	}
	for domain := range older.Domains {
		if _, ok := newer.Domains[domain]; !ok {
			d.RemovedDomains = append(d.RemovedDomains, domain)
		}
	}

	for domain, newCount := range newer.DomainCounts {
		oldCount, ok := older.DomainCounts[domain]
		if ok && oldCount != newCount {
			d.DomainChanges = append(d.DomainChanges, DomainChange{
				Domain: domain, Old: oldCount, New: newCount,
			})
		}
	}

	sort.Strings(d.AddedLanguages)
	sort.Strings(d.RemovedLanguages)
	sort.Strings(d.AddedDomains)
	sort.Strings(d.RemovedDomains)
	sort.Slice(d.LanguageChanges, func(i, j int) bool {
		return d.LanguageChanges[i].Code < d.LanguageChanges[j].Code
	})
	sort.Slice(d.DomainChanges, func(i, j int) bool {
		return d.DomainChanges[i].Domain < d.DomainChanges[j].Domain
	})

	return d
}

// Empty reports whether the two snapshots were identical in every tracked
// dimension.
func (d *MatrixDiff) Empty() bool {
	return len(d.AddedLanguages) == 0 &&
		len(d.RemovedLanguages) == 0 &&
		len(d.LanguageChanges) == 0 &&
		len(d.AddedDomains) == 0 &&
		len(d.RemovedDomains) == 0 &&
		len(d.DomainChanges) == 0
}
