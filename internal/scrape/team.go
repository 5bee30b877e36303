package scrape

import (
	"io"
	"regexp"
	"strings"

	"github.com/yeager/tp-lint/internal/model"
)

// Site conventions for team pages. These are a compatibility contract with
// translationproject.org and must match the markup exactly.
const (
	poFilesSegment = "/PO-files/"
	poExtension    = ".po"
	domainSegment  = "/domain/"
	mailtoScheme   = "mailto:"
)

var (
	// teamDomainHrefRe matches a package-detail link inside an assignment
	// row, e.g. "../domain/coreutils.html".
	teamDomainHrefRe = regexp.MustCompile(`^\.\./domain/([^.]+)\.html$`)

	// teamPOFileRe extracts the domain guess from a PO filename:
	// everything before the first hyphen.
	teamPOFileRe = regexp.MustCompile(`^([^-]+)-.*\.po$`)
)

// teamPage extracts PO file URLs and translator assignments from one
// language's team page.
//
// PO links, domain links, and translator mail links can appear in any order
// within a row, so all state is row-scoped: a closing row tag resets it,
// which keeps a translator name from leaking into the next row when the
// markup breaks an assumption.
type teamPage struct {
	result *model.TeamPage

	// baseURL resolves relative PO file links.
	baseURL string

	// currentDomain is the package domain for the row, either derived
	// from a PO filename or set authoritatively by a domain link.
	currentDomain string

	// awaitingTranslator is true after a mailto: link until the next
	// non-empty text, which is taken as the translator name.
	awaitingTranslator bool
}

// TeamPage parses a per-language team page. The baseURL (without trailing
// slash) resolves relative links; pass scrape.BaseURL outside of tests.
func TeamPage(r io.Reader, baseURL string) (*model.TeamPage, error) {
	x := &teamPage{
		result:  model.NewTeamPage(),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	if err := run(r, x); err != nil {
		return nil, err
	}
	return x.result, nil
}

func (x *teamPage) startTag(tag string, attrs map[string]string) {
	if tag != "a" {
		return
	}
	href := attrs["href"]

	switch {
	case strings.Contains(href, poFilesSegment) && strings.HasSuffix(href, poExtension):
		url := x.resolve(href)
		x.result.POFiles = append(x.result.POFiles, url)
		// Derive a domain guess from the filename. A domain link later
		// in the same row overrides it.
		filename := model.FileNameFromURL(url)
		if m := teamPOFileRe.FindStringSubmatch(filename); m != nil {
			x.currentDomain = m[1]
		}
	case strings.Contains(href, domainSegment):
		if m := teamDomainHrefRe.FindStringSubmatch(href); m != nil {
			x.currentDomain = m[1]
		}
	case strings.Contains(href, mailtoScheme):
		x.awaitingTranslator = true
	}
}

func (x *teamPage) text(data string) {
	data = strings.TrimSpace(data)
	if x.awaitingTranslator && data != "" && x.currentDomain != "" {
		x.result.Translators[x.currentDomain] = data
		x.awaitingTranslator = false
	}
}

func (x *teamPage) endTag(tag string) {
	if tag == "tr" {
		x.currentDomain = ""
		x.awaitingTranslator = false
	}
}

// resolve turns a team page href into an absolute URL. A "../" prefix is
// replaced by the base URL plus a single slash; a leading "/" is prefixed
// with the base URL directly. Absolute URLs pass through unchanged.
func (x *teamPage) resolve(href string) string {
	switch {
	case strings.HasPrefix(href, "../"):
		return x.baseURL + "/" + href[len("../"):]
	case strings.HasPrefix(href, "/"):
		return x.baseURL + href
	default:
		return href
	}
}
