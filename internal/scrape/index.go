package scrape

import (
	"io"
	"regexp"
	"strings"

	"github.com/yeager/tp-lint/internal/model"
)

// Team index page patterns. A language row interleaves an anchor carrying
// the display name (href "sv.html") with a short table cell carrying the
// code, without any stable markup to join them on.
var (
	// indexLangHrefRe matches per-language page links on the index.
	indexLangHrefRe = regexp.MustCompile(`^([a-z]{2,3})\.html$`)

	// indexNameRe matches a capitalized display name ("Swedish").
	indexNameRe = regexp.MustCompile(`^[A-Z][a-z]+`)

	// indexCodeRe matches a bare language code cell.
	indexCodeRe = regexp.MustCompile(`^[a-z]{2,3}$`)
)

// languageIndex extracts (code, name) pairs from the team index page.
// Matching is done by proximity: the most recent capitalized link text is
// held as the pending name until a code cell appears. A code cell seen
// before any name is silently skipped.
type languageIndex struct {
	entries []model.LanguageEntry

	// prevTag is the most recently opened tag; text events are
	// interpreted relative to it.
	prevTag string

	// pendingName is the display name awaiting its code cell.
	// Reset whenever a new language link opens.
	pendingName string
}

// Languages parses the team index page and returns the language list in
// document order.
func Languages(r io.Reader) ([]model.LanguageEntry, error) {
	x := &languageIndex{entries: make([]model.LanguageEntry, 0)}
	if err := run(r, x); err != nil {
		return nil, err
	}
	return x.entries, nil
}

func (x *languageIndex) startTag(tag string, attrs map[string]string) {
	x.prevTag = tag
	if tag == "a" && indexLangHrefRe.MatchString(attrs["href"]) {
		x.pendingName = ""
	}
}

func (x *languageIndex) text(data string) {
	data = strings.TrimSpace(data)
	switch {
	case x.prevTag == "a" && data != "" && !strings.HasPrefix(data, "mailto:"):
		if indexNameRe.MatchString(data) {
			x.pendingName = data
		}
	case x.prevTag == "td" && indexCodeRe.MatchString(data):
		if x.pendingName != "" {
			x.entries = append(x.entries, model.LanguageEntry{Code: data, Name: x.pendingName})
		}
	}
}

func (x *languageIndex) endTag(string) {}
