package main

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ludokb/ludokb-go/pkg/triplestore"
)

// handleOntologyClasses lists the classes declared in the ontology
func (s *Server) handleOntologyClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := s.ontology.GetClasses()
	if err != nil {
		s.writeOntologyError(w, err)
		return
	}
	writeSuccessResponse(w, map[string]any{
		"classes": classes,
		"total":   len(classes),
	})
}

// handleOntologyInstances lists the instances of one class
func (s *Server) handleOntologyInstances(w http.ResponseWriter, r *http.Request) {
	className := mux.Vars(r)["className"]
	if className == "" {
		writeBadRequestResponse(w, "className is required")
		return
	}

	instances, err := s.ontology.GetInstancesOfClass(className)
	if err != nil {
		s.writeOntologyError(w, err)
		return
	}
	writeSuccessResponse(w, map[string]any{
		"class":     className,
		"instances": instances,
		"total":     len(instances),
	})
}

// handleOntologySearch runs the local text search over the graph
func (s *Server) handleOntologySearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeBadRequestResponse(w, "query parameter is required")
		return
	}

	results, err := s.ontology.SearchByText(query)
	if err != nil {
		s.writeOntologyError(w, err)
		return
	}
	writeSuccessResponse(w, map[string]any{
		"query":   query,
		"results": results,
		"total":   len(results),
	})
}

// handleOntologyProperties lists the predicates used in the graph
func (s *Server) handleOntologyProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := s.ontology.GetProperties()
	if err != nil {
		s.writeOntologyError(w, err)
		return
	}
	writeSuccessResponse(w, map[string]any{
		"properties": properties,
		"total":      len(properties),
	})
}

// handleOntologyStats reports ontology summary counts
func (s *Server) handleOntologyStats(w http.ResponseWriter, r *http.Request) {
	writeSuccessResponse(w, s.ontology.Stats())
}

// handleOntologyReload re-reads the ontology file from disk
func (s *Server) handleOntologyReload(w http.ResponseWriter, r *http.Request) {
	triples, err := s.ReloadOntology()
	if err != nil {
		writeInternalServerErrorResponse(w, err.Error())
		return
	}
	writeSuccessResponse(w, map[string]any{
		"message": "ontology reloaded",
		"triples": triples,
	})
}

// writeOntologyError maps triple-store errors to HTTP statuses. An
// unloaded ontology is the only internal error this layer surfaces.
func (s *Server) writeOntologyError(w http.ResponseWriter, err error) {
	var notLoaded triplestore.NotLoadedError
	if errors.As(err, &notLoaded) {
		writeInternalServerErrorResponse(w, notLoaded.Error())
		return
	}
	writeInternalServerErrorResponse(w, err.Error())
}
