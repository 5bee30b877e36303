package scrape

import (
	"errors"
	"io"

	"golang.org/x/net/html"
)

// BaseURL is the Translation Project site root used to resolve relative
// PO file links. It is a compatibility constant: the team pages emit links
// relative to this host.
const BaseURL = "https://translationproject.org"

// handler receives token events from the tokenizer driver.
// Each extractor implements it; self-closing tags are delivered as a start
// tag immediately followed by an end tag, matching browser behavior.
type handler interface {
	startTag(tag string, attrs map[string]string)
	text(data string)
	endTag(tag string)
}

// run feeds r's token stream into h. It returns only tokenizer-level I/O
// errors; malformed markup never fails, it just produces no events that
// the extractor cares about.
func run(r io.Reader, h handler) error {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		case html.StartTagToken:
			tok := z.Token()
			h.startTag(tok.Data, attrMap(tok.Attr))
		case html.SelfClosingTagToken:
			tok := z.Token()
			h.startTag(tok.Data, attrMap(tok.Attr))
			h.endTag(tok.Data)
		case html.TextToken:
			h.text(string(z.Text()))
		case html.EndTagToken:
			tok := z.Token()
			h.endTag(tok.Data)
		}
	}
}

// attrMap converts tokenizer attributes to a lookup map.
// Duplicate attributes keep the first value, like browsers do.
func attrMap(attrs []html.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if _, ok := m[a.Key]; !ok {
			m[a.Key] = a.Val
		}
	}
	return m
}

// isDigits reports whether s is non-empty and consists only of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
