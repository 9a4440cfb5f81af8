package models

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// OriginKind identifies where a candidate was matched
type OriginKind string

const (
	// OriginLocal marks candidates matched in the bundled casino ontology
	OriginLocal OriginKind = "local"
	// OriginRemote marks candidates fetched from DBpedia (live or cached)
	OriginRemote OriginKind = "dbpedia"
)

// Candidate represents one matched entity from either origin.
//
// It is a tagged union over Origin: local candidates always carry URI and
// Properties (the full predicate map minus rdf:type); remote candidates
// always carry URI and Label-derived fields (Description, Abstract,
// Comment, Thumbnail) as returned by the lookup endpoint. Fields outside
// a variant's guarantee are left zero.
type Candidate struct {
	ID          string         `json:"id"`
	URI         string         `json:"uri"`
	DisplayName string         `json:"display_name"`
	Properties  map[string]any `json:"properties,omitempty"`
	Origin      OriginKind     `json:"origin"`
	Relevance   float64        `json:"relevance"`
	Language    string         `json:"language,omitempty"`

	// Remote variant fields
	Description string   `json:"description,omitempty"`
	Abstract    string   `json:"abstract,omitempty"`
	Comment     string   `json:"comment,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// NewLocalCandidate creates a candidate for an ontology subject
func NewLocalCandidate(uri, displayName string, properties map[string]any, relevance float64) Candidate {
	return Candidate{
		ID:          CandidateID(uri),
		URI:         uri,
		DisplayName: displayName,
		Properties:  properties,
		Origin:      OriginLocal,
		Relevance:   relevance,
		Language:    "es",
	}
}

// NewRemoteCandidate creates a candidate for a DBpedia resource
func NewRemoteCandidate(uri, label, language string) Candidate {
	return Candidate{
		ID:          CandidateID(uri),
		URI:         uri,
		DisplayName: label,
		Origin:      OriginRemote,
		Language:    language,
	}
}

// CandidateID derives a short opaque identifier from a URI. FNV-1a/32 is
// deliberately collision-tolerant; IDs are stable across restarts but not
// cryptographically unique.
func CandidateID(uri string) string {
	h := fnv.New32a()
	h.Write([]byte(uri))
	return fmt.Sprintf("%08x", h.Sum32())
}

// previewLength bounds the preview snippet on unified results
const previewLength = 200

// ToUnifiedResult projects a candidate into the outward-facing result
// shape. contextualAnswer is attached by the caller when the NLU produced
// one; it is optional and may be empty.
func (c Candidate) ToUnifiedResult(contextualAnswer string) UnifiedResult {
	return UnifiedResult{
		ID:               c.ID,
		URI:              c.URI,
		DisplayName:      c.DisplayName,
		Category:         c.category(),
		Preview:          truncatePreview(c.previewSource(), previewLength),
		ContextualAnswer: contextualAnswer,
		ResultType:       c.Origin,
		Relevance:        c.Relevance,
		Language:         c.Language,
		Properties:       c.Properties,
		Thumbnail:        c.Thumbnail,
	}
}

// previewSource picks the best descriptive text available for the variant
func (c Candidate) previewSource() string {
	if c.Origin == OriginRemote {
		if c.Abstract != "" {
			return c.Abstract
		}
		if c.Description != "" {
			return c.Description
		}
		return c.Comment
	}
	for _, key := range []string{"descripcion", "description", "reglas", "objetivo"} {
		if v, ok := c.Properties[key]; ok {
			switch s := v.(type) {
			case string:
				return s
			case []string:
				if len(s) > 0 {
					return s[0]
				}
			}
		}
	}
	return ""
}

// category derives a coarse display category for the result
func (c Candidate) category() string {
	if c.Origin == OriginRemote {
		if len(c.Categories) > 0 {
			return c.Categories[0]
		}
		return "Conocimiento externo"
	}
	if v, ok := c.Properties["tipo"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "Juego de casino"
}

func truncatePreview(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	// Break on the last word boundary so previews never end mid-word
	if i := strings.LastIndexFunc(cut, unicode.IsSpace); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
