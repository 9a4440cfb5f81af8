// Package dbpedia implements the external knowledge adapter: a DBpedia
// lookup client with per-language endpoints, an on-disk cache with an
// in-memory tier, a bundled offline dataset, and the fallback chain that
// ties them together.
package dbpedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ludokb/ludokb-go/pkg/models"
	"github.com/ludokb/ludokb-go/utils"
)

// Default endpoints and timing. Each language sub-query times out on its
// own so a slow endpoint in one language never blocks the other.
const (
	DefaultEnglishEndpoint = "https://lookup.dbpedia.org"
	DefaultSpanishEndpoint = "https://es.dbpedia.org/lookup"

	defaultPerLanguageTimeout = 6 * time.Second
	defaultMaxRemoteResults   = 15
)

// ClientConfig configures the lookup client
type ClientConfig struct {
	EnglishEndpoint    string
	SpanishEndpoint    string
	PerLanguageTimeout time.Duration
	MaxResults         int
	// RequestsPerSecond bounds outbound calls to the public endpoints
	RequestsPerSecond float64
}

// Client queries the DBpedia lookup API
type Client struct {
	httpClient *http.Client
	endpoints  map[string]string
	timeout    time.Duration
	maxResults int
	limiter    *rate.Limiter
	logger     *utils.Logger
}

// NewClient creates a lookup client with defaults filled in
func NewClient(cfg ClientConfig) *Client {
	if cfg.EnglishEndpoint == "" {
		cfg.EnglishEndpoint = DefaultEnglishEndpoint
	}
	if cfg.SpanishEndpoint == "" {
		cfg.SpanishEndpoint = DefaultSpanishEndpoint
	}
	if cfg.PerLanguageTimeout <= 0 {
		cfg.PerLanguageTimeout = defaultPerLanguageTimeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxRemoteResults
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	return &Client{
		httpClient: &http.Client{},
		endpoints: map[string]string{
			"en": cfg.EnglishEndpoint,
			"es": cfg.SpanishEndpoint,
		},
		timeout:    cfg.PerLanguageTimeout,
		maxResults: cfg.MaxResults,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 4),
		logger:     utils.GetLogger(),
	}
}

// lookupResponse mirrors the lookup API JSON: every doc field is an array
type lookupResponse struct {
	Docs []lookupDoc `json:"docs"`
}

type lookupDoc struct {
	Resource    []string `json:"resource"`
	Label       []string `json:"label"`
	Comment     []string `json:"comment"`
	Abstract    []string `json:"abstract"`
	Description []string `json:"description"`
	Thumbnail   []string `json:"thumbnail"`
	Category    []string `json:"category"`
}

// SearchBoth queries the English and Spanish sub-endpoints concurrently.
// Each sub-query has its own timeout and a partial failure does not abort
// the other; only when both languages fail is an error returned.
func (c *Client) SearchBoth(ctx context.Context, term string) ([]models.Candidate, []models.Candidate, error) {
	var (
		mu      sync.Mutex
		results = map[string][]models.Candidate{}
		errs    = map[string]error{}
	)

	var g errgroup.Group
	for _, lang := range []string{"en", "es"} {
		lang := lang
		g.Go(func() error {
			subCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()
			candidates, err := c.searchLanguage(subCtx, lang, term)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[lang] = err
				return nil
			}
			results[lang] = candidates
			return nil
		})
	}
	g.Wait()

	for lang, err := range errs {
		c.logger.Warn("remote sub-query failed",
			utils.String("language", lang),
			utils.String("term", term),
			utils.String("detail", err.Error()),
			utils.Component("dbpedia"))
	}
	if len(errs) == 2 {
		return nil, nil, &RemoteUnavailableError{Endpoint: "dbpedia lookup", Cause: errs["en"]}
	}
	return results["en"], results["es"], nil
}

// searchLanguage issues one rate-limited lookup call
func (c *Client) searchLanguage(ctx context.Context, lang, term string) ([]models.Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.endpoints[lang]
	reqURL := fmt.Sprintf("%s/api/search?query=%s&format=JSON&maxResults=%d",
		endpoint, url.QueryEscape(term), c.maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteUnavailableError{Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteUnavailableError{Endpoint: endpoint, Cause: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(parsed.Docs))
	for _, doc := range parsed.Docs {
		if len(doc.Resource) == 0 {
			continue
		}
		cand := models.NewRemoteCandidate(doc.Resource[0], first(doc.Label), lang)
		cand.Comment = first(doc.Comment)
		cand.Abstract = first(doc.Abstract)
		cand.Description = first(doc.Description)
		cand.Thumbnail = first(doc.Thumbnail)
		cand.Categories = doc.Category
		cand.Relevance = richnessScore(cand)
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// richnessScore rewards information-rich hits over raw match strength:
// the endpoint's own full-text filter already enforced the match, so a
// result with an abstract, thumbnail or comment is worth more to display.
func richnessScore(c models.Candidate) float64 {
	score := 1.0
	if c.Abstract != "" || c.Description != "" {
		score += 2
	}
	if c.Thumbnail != "" {
		score++
	}
	if c.Comment != "" {
		score++
	}
	return score
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
