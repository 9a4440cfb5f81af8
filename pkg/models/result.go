package models

import "time"

// UnifiedResult is the outward-facing result shape returned by the
// unified search endpoints. Constructed per request, never persisted.
type UnifiedResult struct {
	ID               string         `json:"id"`
	URI              string         `json:"uri"`
	DisplayName      string         `json:"display_name"`
	Category         string         `json:"category"`
	Preview          string         `json:"preview"`
	ContextualAnswer string         `json:"contextual_answer,omitempty"`
	ResultType       OriginKind     `json:"result_type"`
	Relevance        float64        `json:"relevance"`
	Language         string         `json:"language,omitempty"`
	Properties       map[string]any `json:"properties,omitempty"`
	Thumbnail        string         `json:"thumbnail,omitempty"`
}

// ExternalResult is what the external knowledge adapter returns for one
// search term: candidates per language sub-endpoint plus provenance.
type ExternalResult struct {
	English []Candidate `json:"english"`
	Spanish []Candidate `json:"spanish"`
	Total   int         `json:"total"`
	// Source records which fallback stage produced the result:
	// local-dataset, cache-exact, cache-fuzzy, online or empty.
	Source string `json:"source"`
}

// All returns the candidates of both languages in a single slice
func (r ExternalResult) All() []Candidate {
	out := make([]Candidate, 0, len(r.English)+len(r.Spanish))
	out = append(out, r.English...)
	out = append(out, r.Spanish...)
	return out
}

// SearchStats summarizes a fused result set. Local/External counts are
// pre-truncation provenance counts; MaxRelevance is the boosted score of
// the post-fusion top candidate.
type SearchStats struct {
	Total         int     `json:"total"`
	LocalCount    int     `json:"local_count"`
	ExternalCount int     `json:"external_count"`
	MaxRelevance  float64 `json:"max_relevance"`
}

// QueryRecord is one row in the search diagnostics log
type QueryRecord struct {
	ID            string    `json:"id"`
	Query         string    `json:"query"`
	Language      string    `json:"language"`
	Intent        string    `json:"intent"`
	Mode          string    `json:"mode"`
	Source        string    `json:"source"`
	LocalCount    int       `json:"local_count"`
	ExternalCount int       `json:"external_count"`
	DurationMs    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

// QueryCount is an aggregated row for top-query reporting
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}
