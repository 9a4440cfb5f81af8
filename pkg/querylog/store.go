// Package querylog persists per-search diagnostics (query, detected
// language, intent, result counts, timing) backing the service stats
// endpoint.
package querylog

import "github.com/ludokb/ludokb-go/pkg/models"

// Store is the interface for search diagnostics persistence
type Store interface {
	// RecordSearch appends one search to the log
	RecordSearch(record *models.QueryRecord) error
	// TotalSearches returns the number of recorded searches
	TotalSearches() (int, error)
	// CountsBySource returns how many searches resolved per fusion source
	CountsBySource() (map[string]int, error)
	// TopQueries returns the most frequent normalized queries
	TopQueries(limit int) ([]models.QueryCount, error)
	// RecentSearches returns the latest records, newest first
	RecentSearches(limit int) ([]*models.QueryRecord, error)
	// Close releases the underlying storage
	Close() error
}
