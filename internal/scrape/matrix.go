package scrape

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/yeager/tp-lint/internal/model"
)

// Matrix page conventions.
const (
	// teamSegment marks per-language detail links in the header row.
	teamSegment = "/team/"

	// pctLabel is the literal cell content marking the summary row.
	pctLabel = "Pct"

	// nbsp is the placeholder the matrix uses for untranslated cells.
	nbsp = "\u00a0"
)

var (
	// matrixTeamHrefRe extracts a language code from a header link.
	matrixTeamHrefRe = regexp.MustCompile(`/team/([^.]+)\.html`)

	// matrixDomainHrefRe extracts a domain from a row's package link.
	matrixDomainHrefRe = regexp.MustCompile(`/domain/([^.]+)\.html`)
)

// matrix extracts the full coverage cross-tabulation. The page's first two
// columns are reserved for every row (domain name, then a "Pct" label), so
// the cell for the language at header position i is always at row index
// i+2. That fixed offset is the load-bearing assumption of this extractor.
type matrix struct {
	result *model.Matrix

	// inHeader is true between the table-head open and table-body open.
	// Language columns are captured only here, before any data row needs
	// them for alignment.
	inHeader bool

	// currentRow accumulates trimmed cell texts for the open row.
	currentRow []string

	// currentDomain is the domain link captured in the open row.
	currentDomain string

	// inCell and cellText track the currently accumulating cell.
	inCell   bool
	cellText string
}

// Matrix parses the global coverage matrix page.
func Matrix(r io.Reader) (*model.Matrix, error) {
	x := &matrix{result: model.NewMatrix()}
	if err := run(r, x); err != nil {
		return nil, err
	}
	return x.result, nil
}

func (x *matrix) startTag(tag string, attrs map[string]string) {
	switch tag {
	case "thead":
		x.inHeader = true
	case "tbody":
		x.inHeader = false
	case "tr":
		x.currentRow = x.currentRow[:0]
		x.currentDomain = ""
	case "th":
		if x.inHeader {
			x.inCell = true
			x.cellText = ""
		}
	case "td":
		x.inCell = true
		x.cellText = ""
	case "a":
		if !x.inCell {
			return
		}
		href := attrs["href"]
		if x.inHeader && strings.Contains(href, teamSegment) {
			if m := matrixTeamHrefRe.FindStringSubmatch(href); m != nil {
				x.result.Languages = append(x.result.Languages, m[1])
			}
		} else if m := matrixDomainHrefRe.FindStringSubmatch(href); m != nil {
			x.currentDomain = m[1]
		}
	}
}

func (x *matrix) text(data string) {
	if x.inCell {
		x.cellText += strings.TrimSpace(data)
	}
}

func (x *matrix) endTag(tag string) {
	switch tag {
	case "td", "th":
		x.currentRow = append(x.currentRow, strings.TrimSpace(x.cellText))
		x.inCell = false
	case "tr":
		if !x.inHeader {
			x.processRow()
		}
	}
}

// processRow consumes one completed data row. Rows with fewer than three
// cells are separators or malformed markup and are discarded outright.
func (x *matrix) processRow() {
	row := x.currentRow
	if len(row) < 3 {
		return
	}

	// The summary row carries per-language overall percentages and never
	// domain data; unparseable cells default to 0 so every header
	// language still gets a key.
	if row[1] == pctLabel {
		for i, lang := range x.result.Languages {
			if i+2 >= len(row) {
				break
			}
			pct, err := parsePercent(row[i+2])
			if err != nil {
				pct = 0
			}
			x.result.LangPercentages[lang] = pct
		}
		return
	}

	if x.currentDomain == "" {
		return
	}

	// Domain row: store only cells that actually parse. Empty and NBSP
	// placeholders mean "untranslated" and must not become zero entries.
	langs := make(map[string]int)
	x.result.Domains[x.currentDomain] = langs
	count := 0
	for i, lang := range x.result.Languages {
		idx := i + 2
		if idx >= len(row) {
			continue
		}
		cell := row[idx]
		if cell == "" || cell == nbsp {
			continue
		}
		pct, err := parsePercent(cell)
		if err != nil {
			continue
		}
		langs[lang] = pct
		count++
	}

	// The trailing cell holds the site's own translation count; trust it
	// when present, fall back to our running count otherwise.
	if last := row[len(row)-1]; isDigits(last) {
		x.result.DomainCounts[x.currentDomain], _ = strconv.Atoi(last)
	} else {
		x.result.DomainCounts[x.currentDomain] = count
	}
}

// parsePercent strips a trailing percent sign and parses the remainder as
// an integer.
func parsePercent(cell string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(cell, "%", ""))
}
