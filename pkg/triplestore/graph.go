// Package triplestore holds the in-memory RDF graph of the casino
// ontology and the typed query adapter over it. The graph is immutable
// once built; reload swaps a pointer so readers never observe a partially
// loaded graph.
package triplestore

import (
	"strings"
	"sync/atomic"
)

// Well-known vocabulary URIs
const (
	RDFType  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	OWLClass = "http://www.w3.org/2002/07/owl#Class"
)

// Triple is one (subject, predicate, object) statement. Object is either
// a URI or a literal value; ObjectIsLiteral disambiguates.
type Triple struct {
	Subject         string
	Predicate       string
	Object          string
	ObjectIsLiteral bool
}

// Graph is an immutable set of triples with a subject index. Build it
// with NewGraph and never mutate it afterwards; replacement goes through
// Holder.Swap.
type Graph struct {
	triples   []Triple
	bySubject map[string][]Triple
}

// NewGraph builds an indexed graph from a triple slice
func NewGraph(triples []Triple) *Graph {
	g := &Graph{
		triples:   triples,
		bySubject: make(map[string][]Triple),
	}
	for _, t := range triples {
		g.bySubject[t.Subject] = append(g.bySubject[t.Subject], t)
	}
	return g
}

// Len returns the number of triples in the graph
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns all triples. Callers must not modify the slice.
func (g *Graph) Triples() []Triple {
	return g.triples
}

// TriplesFor returns the triples whose subject is the given URI
func (g *Graph) TriplesFor(subject string) []Triple {
	return g.bySubject[subject]
}

// SubjectsWithType returns the subjects carrying rdf:type of the given URI
func (g *Graph) SubjectsWithType(typeURI string) []string {
	var subjects []string
	seen := make(map[string]bool)
	for _, t := range g.triples {
		if t.Predicate == RDFType && t.Object == typeURI && !seen[t.Subject] {
			seen[t.Subject] = true
			subjects = append(subjects, t.Subject)
		}
	}
	return subjects
}

// Subjects returns every distinct subject URI in insertion order
func (g *Graph) Subjects() []string {
	var subjects []string
	seen := make(map[string]bool)
	for _, t := range g.triples {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			subjects = append(subjects, t.Subject)
		}
	}
	return subjects
}

// Predicates returns every distinct predicate URI in insertion order
func (g *Graph) Predicates() []string {
	var predicates []string
	seen := make(map[string]bool)
	for _, t := range g.triples {
		if !seen[t.Predicate] {
			seen[t.Predicate] = true
			predicates = append(predicates, t.Predicate)
		}
	}
	return predicates
}

// LocalName extracts the local name of a URI: the fragment after '#' or,
// failing that, the last path segment.
func LocalName(uri string) string {
	if i := strings.LastIndex(uri, "#"); i >= 0 && i < len(uri)-1 {
		return uri[i+1:]
	}
	if i := strings.LastIndex(uri, "/"); i >= 0 && i < len(uri)-1 {
		return uri[i+1:]
	}
	return uri
}

// Holder owns the current graph reference. Swap replaces the whole graph
// atomically; concurrent readers see either the old or the new graph,
// never a partial one.
type Holder struct {
	ptr atomic.Pointer[Graph]
}

// NewHolder returns an empty holder (not loaded)
func NewHolder() *Holder {
	return &Holder{}
}

// Graph returns the current graph or NotLoadedError before the first Swap
func (h *Holder) Graph() (*Graph, error) {
	g := h.ptr.Load()
	if g == nil {
		return nil, ErrNotLoaded
	}
	return g, nil
}

// Swap installs a new graph as the current one
func (h *Holder) Swap(g *Graph) {
	h.ptr.Store(g)
}

// Loaded reports whether a graph has been installed
func (h *Holder) Loaded() bool {
	return h.ptr.Load() != nil
}
