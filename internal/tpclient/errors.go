package tpclient

import "errors"

// Fetch errors.
// These are sentinel errors so callers can distinguish "the team does not
// exist" from transport failures with errors.Is().
var (
	// ErrLanguageNotFound is returned when the site has no team page for
	// the requested language code (HTTP 404).
	ErrLanguageNotFound = errors.New("language team not found")

	// ErrUnexpectedStatus is returned for any non-200 response other than
	// a team page 404.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// errNotFound marks a 404 internally; TeamPage translates it into
	// ErrLanguageNotFound with the language code attached.
	errNotFound = errors.New("not found")
)
