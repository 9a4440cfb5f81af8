package main

import (
	"net/http"

	"github.com/ludokb/ludokb-go/utils"
)

// setupRoutes sets up the HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.errorRecoveryMiddleware)
	s.router.Use(utils.SecurityHeadersMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/version", s.handleVersion).Methods("GET")

	// Local ontology endpoints
	api.HandleFunc("/ontology/classes", s.handleOntologyClasses).Methods("GET")
	api.HandleFunc("/ontology/instances/{className}", s.handleOntologyInstances).Methods("GET")
	api.HandleFunc("/ontology/search", s.handleOntologySearch).Methods("GET")
	api.HandleFunc("/ontology/properties", s.handleOntologyProperties).Methods("GET")
	api.HandleFunc("/ontology/stats", s.handleOntologyStats).Methods("GET")
	api.HandleFunc("/ontology/reload", s.handleOntologyReload).Methods("POST")

	// Unified search endpoints
	api.HandleFunc("/unified/search", s.handleUnifiedSearch).Methods("GET")
	api.HandleFunc("/unified/detail", s.handleUnifiedDetail).Methods("GET")
	api.HandleFunc("/unified/details", s.handleUnifiedDetail).Methods("GET")
	api.HandleFunc("/unified/init", s.handleUnifiedInit).Methods("POST")
	api.HandleFunc("/unified/clean-cache", s.handleUnifiedCleanCache).Methods("POST")
	api.HandleFunc("/unified/reload-dataset", s.handleUnifiedReloadDataset).Methods("POST")
	api.HandleFunc("/unified/stats", s.handleUnifiedStats).Methods("GET")
}

// handleHealth reports liveness plus whether the ontology is loaded
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"ontology_loaded": s.holder.Loaded(),
	})
}

// handleVersion reports the service version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeSuccessResponse(w, map[string]any{
		"service": "ludokb",
		"version": Version,
	})
}
