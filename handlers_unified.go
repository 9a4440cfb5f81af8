package main

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ludokb/ludokb-go/pkg/dbpedia"
	"github.com/ludokb/ludokb-go/pkg/fusion"
	"github.com/ludokb/ludokb-go/pkg/models"
	"github.com/ludokb/ludokb-go/utils"
)

// Search modes. Hybrid fuses both origins; local and dbpedia restrict
// the search to one of them.
const (
	ModeLocal   = "local"
	ModeDbpedia = "dbpedia"
	ModeHybrid  = "hybrid"
)

// handleUnifiedSearch answers the fused local+external search. Mode
// "local" never touches the external adapter, even when includeDbpedia
// is set; mode "dbpedia" skips the local graph scan.
func (s *Server) handleUnifiedSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query().Get("query")
	if query == "" {
		writeBadRequestResponse(w, "query parameter is required")
		return
	}

	mode := r.URL.Query().Get("mode")
	switch mode {
	case ModeLocal, ModeDbpedia, ModeHybrid:
	case "":
		mode = ModeHybrid
	default:
		writeBadRequestResponse(w, "mode must be one of local, dbpedia, hybrid")
		return
	}
	includeDbpedia := parseBoolParam(r, "includeDbpedia", true)
	maxResults := parseIntParam(r, "maxResults", fusion.DefaultMaxResults)
	preferOffline := parseBoolParam(r, "preferOffline", false)
	language := r.URL.Query().Get("language")

	understanding := s.nlu.ProcessQuery(query)
	if language == "" {
		language = understanding.Language
	}

	var local []models.Candidate
	if mode != ModeDbpedia {
		results, err := s.ontology.SearchByText(query)
		if err != nil {
			s.writeOntologyError(w, err)
			return
		}
		local = results
	}

	external := models.ExternalResult{Source: dbpedia.SourceEmpty}
	if mode != ModeLocal && includeDbpedia {
		external = s.external.SearchWithFallback(r.Context(), externalTerm(understanding.SearchTerms, understanding.Normalized), dbpedia.SearchOptions{
			PreferOffline: preferOffline,
			Language:      language,
		})
	}

	ranked, stats := s.fusion.CombineAndRank(local, external, query, maxResults)

	// The contextual answer belongs to the query, not to every match;
	// it is attached to the top result only.
	results := make([]models.UnifiedResult, 0, len(ranked))
	for i, cand := range ranked {
		answer := ""
		if i == 0 {
			answer = understanding.ContextualAnswer
		}
		results = append(results, cand.ToUnifiedResult(answer))
	}

	s.recordSearch(query, mode, understanding.Language, understanding.Intent, external.Source, stats, start)

	writeSuccessResponse(w, map[string]any{
		"query":   query,
		"mode":    mode,
		"results": results,
		"stats":   stats,
		"source":  external.Source,
		"nlu": map[string]any{
			"normalized":        understanding.Normalized,
			"language":          understanding.Language,
			"intent":            understanding.Intent,
			"keywords":          understanding.Keywords,
			"search_terms":      understanding.SearchTerms,
			"game":              understanding.Game,
			"sub_pattern":       understanding.SubPattern,
			"contextual_answer": understanding.ContextualAnswer,
		},
	})
}

// handleUnifiedDetail resolves one resource on demand, by id or URI
func (s *Server) handleUnifiedDetail(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	uri := r.URL.Query().Get("uri")
	if id == "" && uri == "" {
		writeBadRequestResponse(w, "id or uri parameter is required")
		return
	}
	language := r.URL.Query().Get("language")

	candidate, source, ok := s.external.GetDetailedInfo(r.Context(), id, uri, language)
	if !ok {
		writeNotFoundResponse(w, "resource not found")
		return
	}
	writeSuccessResponse(w, map[string]any{
		"result": candidate.ToUnifiedResult(""),
		"source": source,
	})
}

// handleUnifiedInit re-initializes the external adapter state
func (s *Server) handleUnifiedInit(w http.ResponseWriter, r *http.Request) {
	if err := s.external.ReloadDataset(); err != nil {
		writeInternalServerErrorResponse(w, err.Error())
		return
	}
	writeSuccessResponse(w, map[string]any{
		"message": "external adapter initialized",
		"stats":   s.external.Stats(),
	})
}

// handleUnifiedCleanCache purges expired cache entries
func (s *Server) handleUnifiedCleanCache(w http.ResponseWriter, r *http.Request) {
	removed, err := s.external.CleanCache()
	if err != nil {
		writeInternalServerErrorResponse(w, err.Error())
		return
	}
	writeSuccessResponse(w, map[string]any{
		"message": "cache cleaned",
		"removed": removed,
	})
}

// handleUnifiedReloadDataset reloads the bundled offline dataset
func (s *Server) handleUnifiedReloadDataset(w http.ResponseWriter, r *http.Request) {
	if err := s.external.ReloadDataset(); err != nil {
		writeInternalServerErrorResponse(w, err.Error())
		return
	}
	writeSuccessResponse(w, map[string]any{
		"message": "dataset reloaded",
	})
}

// handleUnifiedStats reports service-level diagnostics: adapter counters,
// ontology summary and search-log aggregates.
func (s *Server) handleUnifiedStats(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"external": s.external.Stats(),
		"ontology": s.ontology.Stats(),
	}

	// Search-log aggregates are best-effort diagnostics
	if total, err := s.searches.TotalSearches(); err == nil {
		data["total_searches"] = total
	}
	if counts, err := s.searches.CountsBySource(); err == nil {
		data["searches_by_source"] = counts
	}
	if top, err := s.searches.TopQueries(parseIntParam(r, "limit", 10)); err == nil {
		data["top_queries"] = top
	}

	writeSuccessResponse(w, data)
}

// recordSearch appends the search to the diagnostics log; failures are
// logged and never affect the response.
func (s *Server) recordSearch(query, mode, language, intent, source string, stats models.SearchStats, start time.Time) {
	record := &models.QueryRecord{
		ID:            uuid.NewString(),
		Query:         query,
		Language:      language,
		Intent:        intent,
		Mode:          mode,
		Source:        source,
		LocalCount:    stats.LocalCount,
		ExternalCount: stats.ExternalCount,
		DurationMs:    time.Since(start).Milliseconds(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.searches.RecordSearch(record); err != nil {
		s.logger.Warn("failed to record search",
			utils.String("detail", err.Error()),
			utils.Component("querylog"))
	}
}

// externalTerm picks the term sent to the external adapter: the first
// recognized keyword if any, otherwise the normalized query.
func externalTerm(searchTerms []string, normalized string) string {
	if len(searchTerms) > 0 {
		return searchTerms[0]
	}
	return normalized
}
