// Package tpclient fetches pages and PO files from the Translation Project
// site. It owns all network traffic: the scrape package parses whatever this
// package hands it and never touches the wire itself.
package tpclient
