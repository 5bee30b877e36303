// Package cache provides SQLite-based storage for coverage matrix
// snapshots. Snapshots serve two purposes: avoiding a refetch of the large
// matrix page within its freshness window, and keeping history so two runs
// can be compared for coverage changes.
package cache
