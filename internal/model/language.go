package model

// LanguageEntry is one row of the Translation Project team index:
// a language code paired with its English display name.
//
// Entries preserve the document order of the index page. The extractor does
// not de-duplicate; the site is expected not to list a language twice.
type LanguageEntry struct {
	// Code is the short language code (e.g. "sv", "pt_BR" appears as "BR"
	// in the matrix header but as "pt" variants on the index page).
	Code string `json:"code"`

	// Name is the capitalized English display name (e.g. "Swedish").
	Name string `json:"name"`
}
