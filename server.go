package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"

	"github.com/ludokb/ludokb-go/pkg/config"
	"github.com/ludokb/ludokb-go/pkg/dbpedia"
	"github.com/ludokb/ludokb-go/pkg/fusion"
	"github.com/ludokb/ludokb-go/pkg/nlu"
	"github.com/ludokb/ludokb-go/pkg/querylog"
	"github.com/ludokb/ludokb-go/pkg/triplestore"
	"github.com/ludokb/ludokb-go/utils"
)

// Version is the service version reported by /api/version
const Version = "1.0.0"

// Server wires the ontology store, the NLU engine, the external
// knowledge adapter and the fusion engine behind the HTTP API.
type Server struct {
	router   *mux.Router
	config   *config.Config
	holder   *triplestore.Holder
	ontology *triplestore.Adapter
	watcher  *triplestore.Watcher
	nlu      *nlu.Engine
	external *dbpedia.Adapter
	fusion   *fusion.Engine
	searches querylog.Store
	sweeper  *cron.Cron
	logger   *utils.Logger
}

// NewServer builds a fully wired server from the configuration. The
// ontology file is loaded eagerly so the first request already sees a
// complete graph; a load failure is fatal at startup.
func NewServer(cfg *config.Config) (*Server, error) {
	logger := utils.GetLogger()

	nluEngine, err := nlu.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize language engine: %w", err)
	}

	holder := triplestore.NewHolder()
	graph, err := triplestore.LoadGraph(cfg.OntologyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ontology: %w", err)
	}
	holder.Swap(graph)
	logger.Info("ontology loaded",
		utils.String("path", cfg.OntologyPath),
		utils.Int("triples", graph.Len()),
		utils.Component("server"))

	cache, err := dbpedia.NewFileCache(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lookup cache: %w", err)
	}
	dataset, err := dbpedia.NewDataset()
	if err != nil {
		return nil, fmt.Errorf("failed to load offline dataset: %w", err)
	}
	if cfg.DatasetPath != "" {
		if err := dataset.Reload(cfg.DatasetPath); err != nil {
			logger.Warn("failed to load external dataset file, using embedded snapshot",
				utils.String("path", cfg.DatasetPath),
				utils.String("detail", err.Error()),
				utils.Component("server"))
		}
	}
	client := dbpedia.NewClient(dbpedia.ClientConfig{
		EnglishEndpoint:    cfg.DBpediaEnglishEndpoint,
		SpanishEndpoint:    cfg.DBpediaSpanishEndpoint,
		PerLanguageTimeout: cfg.RemoteLanguageTimeout,
		MaxResults:         cfg.RemoteMaxResults,
	})

	searches, err := querylog.NewSQLiteStore(cfg.QueryLogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open search log: %w", err)
	}

	s := &Server{
		router:   mux.NewRouter(),
		config:   cfg,
		holder:   holder,
		ontology: triplestore.NewAdapter(holder, cfg.OntologyNamespace, nluEngine),
		nlu:      nluEngine,
		external: dbpedia.NewAdapter(client, cache, dataset, cfg.DatasetPath, cfg.RemoteRequestTimeout),
		fusion:   fusion.NewEngine(),
		searches: searches,
		logger:   logger,
	}
	s.setupRoutes()

	if cfg.OntologyWatch {
		watcher, err := triplestore.WatchFile(cfg.OntologyPath, holder)
		if err != nil {
			logger.Warn("ontology watcher disabled",
				utils.String("detail", err.Error()),
				utils.Component("server"))
		} else {
			s.watcher = watcher
		}
	}
	s.startCacheSweeper()

	return s, nil
}

// startCacheSweeper schedules the periodic expired-entry sweep
func (s *Server) startCacheSweeper() {
	s.sweeper = cron.New()
	_, err := s.sweeper.AddFunc(s.config.CacheSweepEvery, func() {
		removed, err := s.external.CleanCache()
		if err != nil {
			s.logger.Warn("scheduled cache sweep failed",
				utils.String("detail", err.Error()),
				utils.Component("server"))
			return
		}
		if removed > 0 {
			s.logger.Info("scheduled cache sweep",
				utils.Int("removed", removed),
				utils.Component("server"))
		}
	})
	if err != nil {
		s.logger.Warn("invalid cache sweep schedule, sweeper disabled",
			utils.String("schedule", s.config.CacheSweepEvery),
			utils.String("detail", err.Error()),
			utils.Component("server"))
		s.sweeper = nil
		return
	}
	s.sweeper.Start()
}

// ReloadOntology rebuilds the graph from disk and swaps it in atomically.
// Readers keep the previous graph until the swap, and a failed parse
// leaves it installed.
func (s *Server) ReloadOntology() (int, error) {
	graph, err := triplestore.LoadGraph(s.config.OntologyPath)
	if err != nil {
		return 0, fmt.Errorf("failed to reload ontology: %w", err)
	}
	s.holder.Swap(graph)
	return graph.Len(), nil
}

// Handler returns the root HTTP handler, for tests and for main
func (s *Server) Handler() http.Handler {
	return s.router
}

// Shutdown releases background resources
func (s *Server) Shutdown(ctx context.Context) error {
	if s.sweeper != nil {
		sweepCtx := s.sweeper.Stop()
		select {
		case <-sweepCtx.Done():
		case <-ctx.Done():
		}
	}
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.logger.Warn("failed to stop ontology watcher",
				utils.String("detail", err.Error()),
				utils.Component("server"))
		}
	}
	if err := s.searches.Close(); err != nil {
		return fmt.Errorf("failed to close search log: %w", err)
	}
	return nil
}
