package dbpedia

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ludokb/ludokb-go/pkg/models"
	"github.com/ludokb/ludokb-go/pkg/nlu"
	"github.com/ludokb/ludokb-go/utils"
)

// CacheEntry is one persisted lookup: the payload plus its lifetime. An
// entry is usable iff now <= Expiry; expired entries are deleted lazily
// on the next read of their key and swept periodically.
type CacheEntry struct {
	SearchTerm string                `json:"search_term"`
	Result     models.ExternalResult `json:"result"`
	Timestamp  time.Time             `json:"timestamp"`
	Expiry     time.Time             `json:"expiry"`
}

// Expired reports whether the entry is past its lifetime
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.Expiry)
}

// DefaultCacheTTL is the lifetime of persisted lookups
const DefaultCacheTTL = 7 * 24 * time.Hour

// memoryTierSize bounds the in-memory LRU over the disk cache
const memoryTierSize = 256

// FileCache persists one JSON file per cached search term plus detail
// files, fronted by an expirable in-memory LRU. Concurrent writes to the
// same key are last-writer-wins: entries are derived, re-computable data,
// so no locking is needed.
type FileCache struct {
	dir    string
	ttl    time.Duration
	mem    *expirable.LRU[string, *CacheEntry]
	logger *utils.Logger
}

// NewFileCache creates the cache directory if needed
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileCache{
		dir:    dir,
		ttl:    ttl,
		mem:    expirable.NewLRU[string, *CacheEntry](memoryTierSize, nil, ttl),
		logger: utils.GetLogger(),
	}, nil
}

// NormalizeKey folds a search term into a filesystem-safe cache key
func NormalizeKey(term string) string {
	normalized := nlu.Normalize(term)
	var b strings.Builder
	for _, r := range normalized {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (c *FileCache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *FileCache) detailPath(id string) string {
	return filepath.Join(c.dir, "detail_"+id+".json")
}

// Get looks up an exact key. Expired entries are deleted and reported as
// a miss; corrupted files are deleted and reported as a miss.
func (c *FileCache) Get(term string) (*CacheEntry, bool) {
	key := NormalizeKey(term)
	if entry, ok := c.mem.Get(key); ok && !entry.Expired(time.Now()) {
		return entry, true
	}

	entry, err := c.readEntry(c.entryPath(key))
	if err != nil {
		return nil, false
	}
	if entry.Expired(time.Now()) {
		os.Remove(c.entryPath(key))
		c.mem.Remove(key)
		return nil, false
	}
	c.mem.Add(key, entry)
	return entry, true
}

// Put persists a lookup result under its normalized term key
func (c *FileCache) Put(term string, result models.ExternalResult) error {
	now := time.Now()
	entry := &CacheEntry{
		SearchTerm: term,
		Result:     result,
		Timestamp:  now,
		Expiry:     now.Add(c.ttl),
	}
	key := NormalizeKey(term)
	if err := c.writeJSON(c.entryPath(key), entry); err != nil {
		return err
	}
	c.mem.Add(key, entry)
	return nil
}

// fuzzyMatch scores how strongly a candidate matches the term
func fuzzyMatch(term string, cand models.Candidate) float64 {
	label := nlu.Normalize(cand.DisplayName)
	switch {
	case label == term:
		return 3
	case strings.Contains(label, term):
		return 2
	case strings.Contains(nlu.Normalize(cand.Description), term),
		strings.Contains(nlu.Normalize(cand.Abstract), term):
		return 1
	}
	return 0
}

// FuzzyFind scans all non-expired entries for candidates whose label,
// description or abstract contains the term, returning the best-scoring
// entry. Used when the exact key misses.
func (c *FileCache) FuzzyFind(term string) (*CacheEntry, bool) {
	normalized := nlu.Normalize(term)
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, false
	}

	var best *CacheEntry
	var bestScore float64
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "detail_") {
			continue
		}
		entry, err := c.readEntry(filepath.Join(c.dir, name))
		if err != nil {
			continue
		}
		if entry.Expired(time.Now()) {
			os.Remove(filepath.Join(c.dir, name))
			continue
		}
		var score float64
		for _, cand := range entry.Result.All() {
			score += fuzzyMatch(normalized, cand)
		}
		if score > bestScore {
			bestScore = score
			best = entry
		}
	}
	return best, best != nil
}

// PutDetail persists a detail payload under detail_{id}.json
func (c *FileCache) PutDetail(id string, cand models.Candidate) error {
	now := time.Now()
	payload := struct {
		Candidate models.Candidate `json:"candidate"`
		Timestamp time.Time        `json:"timestamp"`
		Expiry    time.Time        `json:"expiry"`
	}{cand, now, now.Add(c.ttl)}
	return c.writeJSON(c.detailPath(id), payload)
}

// GetDetail reads a previously cached detail payload
func (c *FileCache) GetDetail(id string) (*models.Candidate, bool) {
	data, err := os.ReadFile(c.detailPath(id))
	if err != nil {
		return nil, false
	}
	var payload struct {
		Candidate models.Candidate `json:"candidate"`
		Expiry    time.Time        `json:"expiry"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		c.recoverCorruption(c.detailPath(id), err)
		return nil, false
	}
	if time.Now().After(payload.Expiry) {
		os.Remove(c.detailPath(id))
		return nil, false
	}
	return &payload.Candidate, true
}

// Sweep removes every expired or corrupted cache file and returns how
// many were deleted. Runs lazily per-key on reads and periodically via
// the cron schedule.
func (c *FileCache) Sweep() (int, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list cache directory: %w", err)
	}
	removed := 0
	now := time.Now()
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		path := filepath.Join(c.dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var probe struct {
			Expiry time.Time `json:"expiry"`
		}
		if err := json.Unmarshal(data, &probe); err != nil || probe.Expiry.IsZero() || now.After(probe.Expiry) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	c.mem.Purge()
	return removed, nil
}

// EntryCount reports the number of cache files currently on disk
func (c *FileCache) EntryCount() int {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), ".json") {
			count++
		}
	}
	return count
}

func (c *FileCache) readEntry(path string) (*CacheEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.recoverCorruption(path, err)
		return nil, &CacheCorruptionError{Path: path, Cause: err}
	}
	return &entry, nil
}

// recoverCorruption deletes an unparseable cache file so the next lookup
// proceeds as a clean miss
func (c *FileCache) recoverCorruption(path string, cause error) {
	c.logger.Warn("removing corrupted cache file",
		utils.String("path", path),
		utils.String("detail", cause.Error()),
		utils.Component("dbpedia"))
	os.Remove(path)
}

func (c *FileCache) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
