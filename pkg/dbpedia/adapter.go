package dbpedia

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ludokb/ludokb-go/pkg/models"
	"github.com/ludokb/ludokb-go/utils"
)

// Fallback sources, in strict priority order
const (
	SourceLocalDataset = "local-dataset"
	SourceCacheExact   = "cache-exact"
	SourceCacheFuzzy   = "cache-fuzzy"
	SourceOnline       = "online"
	SourceEmpty        = "empty"
)

// DefaultRequestTimeout bounds one full remote stage (both languages)
const DefaultRequestTimeout = 8 * time.Second

// SearchOptions tune one fallback search
type SearchOptions struct {
	// PreferOffline skips the remote stage entirely
	PreferOffline bool
	// Language hints which rendition the caller displays; both are
	// always returned.
	Language string
}

// Adapter chains the offline dataset, the file cache and the live lookup
// client. It never raises past its boundary: external knowledge is
// optional enrichment, and every failure degrades to the next stage or to
// an empty result.
type Adapter struct {
	client         *Client
	cache          *FileCache
	dataset        *Dataset
	datasetPath    string
	requestTimeout time.Duration
	remoteCalls    atomic.Int64
	logger         *utils.Logger
}

// AdapterStats are service-level diagnostics for the stats endpoint
type AdapterStats struct {
	RemoteCalls  int64 `json:"remote_calls"`
	CacheEntries int   `json:"cache_entries"`
	DatasetSize  int   `json:"dataset_size"`
}

// NewAdapter wires the three stages together. datasetPath may be empty;
// reloads then fall back to the embedded snapshot.
func NewAdapter(client *Client, cache *FileCache, dataset *Dataset, datasetPath string, requestTimeout time.Duration) *Adapter {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return &Adapter{
		client:         client,
		cache:          cache,
		dataset:        dataset,
		datasetPath:    datasetPath,
		requestTimeout: requestTimeout,
		logger:         utils.GetLogger(),
	}
}

// SearchWithFallback walks the stage machine: local dataset, cache exact,
// cache fuzzy, then the live endpoints. The first stage yielding at least
// one match wins. All failures are absorbed; the worst case is an empty
// result with Source "empty".
func (a *Adapter) SearchWithFallback(ctx context.Context, term string, opts SearchOptions) models.ExternalResult {
	if term == "" {
		return models.ExternalResult{Source: SourceEmpty}
	}

	if english, spanish := a.dataset.Search(term); len(english)+len(spanish) > 0 {
		return models.ExternalResult{
			English: english,
			Spanish: spanish,
			Total:   len(english) + len(spanish),
			Source:  SourceLocalDataset,
		}
	}

	if entry, ok := a.cache.Get(term); ok && entry.Result.Total > 0 {
		result := entry.Result
		result.Source = SourceCacheExact
		return result
	}
	if entry, ok := a.cache.FuzzyFind(term); ok && entry.Result.Total > 0 {
		result := entry.Result
		result.Source = SourceCacheFuzzy
		return result
	}

	if opts.PreferOffline {
		return models.ExternalResult{Source: SourceEmpty}
	}
	return a.searchOnline(ctx, term)
}

func (a *Adapter) searchOnline(ctx context.Context, term string) models.ExternalResult {
	reqCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()

	a.remoteCalls.Add(1)
	english, spanish, err := a.client.SearchBoth(reqCtx, term)
	if err != nil {
		a.logger.Warn("remote knowledge lookup degraded to empty",
			utils.String("term", term),
			utils.String("detail", err.Error()),
			utils.Component("dbpedia"))
		return models.ExternalResult{Source: SourceEmpty}
	}

	total := len(english) + len(spanish)
	if total == 0 {
		return models.ExternalResult{Source: SourceEmpty}
	}

	result := models.ExternalResult{
		English: english,
		Spanish: spanish,
		Total:   total,
		Source:  SourceOnline,
	}
	if err := a.cache.Put(term, result); err != nil {
		a.logger.Warn("failed to persist lookup to cache",
			utils.String("term", term),
			utils.String("detail", err.Error()),
			utils.Component("dbpedia"))
	}
	return result
}

// GetDetailedInfo resolves one resource for on-demand expansion, with the
// same priority order as search: dataset entry, then a live fetch that
// writes through to the detail cache, then the detail cache itself.
func (a *Adapter) GetDetailedInfo(ctx context.Context, id, uri, language string) (*models.Candidate, string, bool) {
	lang := language
	if lang == "" {
		lang = "es"
	}

	key := id
	if key == "" && uri != "" {
		key = models.CandidateID(uri)
	}

	if entry, ok := a.dataset.Detail(firstNonEmpty(uri, id)); ok {
		cand := entry.Candidate(lang)
		return &cand, SourceLocalDataset, true
	}

	if uri != "" {
		if cand, ok := a.fetchDetailOnline(ctx, uri, lang); ok {
			if err := a.cache.PutDetail(key, *cand); err != nil {
				a.logger.Warn("failed to persist detail to cache",
					utils.String("id", key),
					utils.String("detail", err.Error()),
					utils.Component("dbpedia"))
			}
			return cand, SourceOnline, true
		}
	}

	if cand, ok := a.cache.GetDetail(key); ok {
		return cand, SourceCacheExact, true
	}
	return nil, SourceEmpty, false
}

// fetchDetailOnline re-queries the lookup endpoint by the resource's
// local name and picks the doc whose URI matches.
func (a *Adapter) fetchDetailOnline(ctx context.Context, uri, lang string) (*models.Candidate, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()

	a.remoteCalls.Add(1)
	term := localResourceName(uri)
	candidates, err := a.client.searchLanguage(reqCtx, lang, term)
	if err != nil {
		return nil, false
	}
	for i := range candidates {
		if candidates[i].URI == uri {
			return &candidates[i], true
		}
	}
	if len(candidates) > 0 {
		return &candidates[0], true
	}
	return nil, false
}

// CleanCache sweeps expired entries on demand
func (a *Adapter) CleanCache() (int, error) {
	return a.cache.Sweep()
}

// ReloadDataset replaces the bundled dataset entries
func (a *Adapter) ReloadDataset() error {
	return a.dataset.Reload(a.datasetPath)
}

// Stats reports adapter-level diagnostics
func (a *Adapter) Stats() AdapterStats {
	return AdapterStats{
		RemoteCalls:  a.remoteCalls.Load(),
		CacheEntries: a.cache.EntryCount(),
		DatasetSize:  a.dataset.Len(),
	}
}

// RemoteCallCount exposes the outbound call counter; tests assert cache
// idempotence against it.
func (a *Adapter) RemoteCallCount() int64 {
	return a.remoteCalls.Load()
}

func localResourceName(uri string) string {
	name := uri
	if i := strings.LastIndexAny(uri, "/#"); i >= 0 && i < len(uri)-1 {
		name = uri[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
