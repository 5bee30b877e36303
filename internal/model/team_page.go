package model

import (
	"regexp"
	"strings"
)

// TeamPage holds everything extracted from a per-language team page:
// the downloadable PO files and the translator assigned to each domain.
type TeamPage struct {
	// POFiles contains absolute URLs of the language's PO files in
	// document order. Order matters: downloads happen in this order,
	// which keeps runs deterministic.
	POFiles []string `json:"po_files"`

	// Translators maps a package domain (e.g. "coreutils") to the
	// translator name scraped from the cell following a mailto: link.
	// If a domain appears twice in the source, the last row wins.
	Translators map[string]string `json:"translators"`
}

// NewTeamPage creates an empty TeamPage with initialized maps.
func NewTeamPage() *TeamPage {
	return &TeamPage{
		POFiles:     make([]string, 0),
		Translators: make(map[string]string),
	}
}

// Translator returns the translator assigned to a domain, or fallback
// if no assignment was found on the team page.
func (t *TeamPage) Translator(domain, fallback string) string {
	if name, ok := t.Translators[domain]; ok {
		return name
	}
	return fallback
}

// FilterPOFiles returns the subset of POFiles whose filenames belong to one
// of the given packages. A file matches package "coreutils" when its name
// starts with "coreutils-" or "coreutils.". Document order is preserved.
// An empty package list returns all files.
func (t *TeamPage) FilterPOFiles(packages []string) []string {
	if len(packages) == 0 {
		return t.POFiles
	}

	filtered := make([]string, 0, len(t.POFiles))
	for _, url := range t.POFiles {
		name := FileNameFromURL(url)
		for _, pkg := range packages {
			if strings.HasPrefix(name, pkg+"-") || strings.HasPrefix(name, pkg+".") {
				filtered = append(filtered, url)
				break
			}
		}
	}
	return filtered
}

// FileNameFromURL returns the last path segment of a URL.
func FileNameFromURL(url string) string {
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		return url[idx+1:]
	}
	return url
}

// PO filenames come in two shapes: "domain-version.lang.po" (the common
// case) and "domain.lang.po" for unversioned uploads.
var (
	domainHyphenRe = regexp.MustCompile(`^([^-]+)-.*\.po$`)
	domainDotRe    = regexp.MustCompile(`^([^.]+)\..*\.po$`)
)

// DomainFromFileName extracts the package domain from a PO filename.
// "coreutils-9.1.sv.po" yields "coreutils". Falls back to the filename
// itself when neither pattern matches, so callers always get a usable key.
func DomainFromFileName(filename string) string {
	if m := domainHyphenRe.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	if m := domainDotRe.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	return filename
}
