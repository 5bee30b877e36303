// Package main provides the entry point for the tp-lint CLI.
//
// tp-lint downloads PO files from the Translation Project and checks them
// with an external linter. It also reports translation coverage statistics
// scraped from the site's matrix page.
//
// Usage:
//
//	tp-lint lint <language-code>
//	tp-lint stats [language-code]
//
// See --help for all available options.
package main

// main is the entry point for tp-lint.
func main() {
	Execute()
}
