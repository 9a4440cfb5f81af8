package querylog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ludokb/ludokb-go/pkg/models"
)

// SQLiteStore provides SQLite-based persistence for the search log
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the search log database. Use
// ":memory:" as the path in tests.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL&_synchronous=NORMAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Writes are serialized by SQLite anyway; keep the pool small
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS searches (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		language TEXT NOT NULL,
		intent TEXT NOT NULL,
		mode TEXT NOT NULL,
		source TEXT NOT NULL,
		local_count INTEGER NOT NULL,
		external_count INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_searches_query ON searches(query);
	CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// RecordSearch appends one search to the log
func (s *SQLiteStore) RecordSearch(record *models.QueryRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO searches (id, query, language, intent, mode, source, local_count, external_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Query, record.Language, record.Intent, record.Mode,
		record.Source, record.LocalCount, record.ExternalCount, record.DurationMs,
		record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// TotalSearches returns the number of recorded searches
func (s *SQLiteStore) TotalSearches() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM searches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count searches: %w", err)
	}
	return count, nil
}

// CountsBySource returns how many searches resolved per fusion source
func (s *SQLiteStore) CountsBySource() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT source, COUNT(*) FROM searches GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sources: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		counts[source] = count
	}
	return counts, rows.Err()
}

// TopQueries returns the most frequent queries, ties broken alphabetically
func (s *SQLiteStore) TopQueries(limit int) ([]models.QueryCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT query, COUNT(*) AS c FROM searches
		GROUP BY query ORDER BY c DESC, query ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top searches: %w", err)
	}
	defer rows.Close()

	var out []models.QueryCount
	for rows.Next() {
		var qc models.QueryCount
		if err := rows.Scan(&qc.Query, &qc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top query row: %w", err)
		}
		out = append(out, qc)
	}
	return out, rows.Err()
}

// RecentSearches returns the latest records, newest first
func (s *SQLiteStore) RecentSearches(limit int) ([]*models.QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, query, language, intent, mode, source, local_count, external_count, duration_ms, created_at
		FROM searches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent searches: %w", err)
	}
	defer rows.Close()

	var out []*models.QueryRecord
	for rows.Next() {
		var r models.QueryRecord
		if err := rows.Scan(&r.ID, &r.Query, &r.Language, &r.Intent, &r.Mode,
			&r.Source, &r.LocalCount, &r.ExternalCount, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
