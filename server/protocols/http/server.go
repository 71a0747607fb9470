package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/gear6io/mallard/server/config"
	"github.com/gear6io/mallard/server/dataset"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Version reported by the root and health endpoints
const Version = "0.1.0"

// Server represents the HTTP protocol server. The catalog is an
// immutable value injected at construction; routing never rebuilds it.
type Server struct {
	config     *config.Config
	catalog    *catalog.Catalog
	service    *dataset.Service
	instanceID string
	logger     zerolog.Logger
	router     chi.Router
	server     *http.Server
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewServer creates a new HTTP server instance around an already-built
// catalog and dataset service.
func NewServer(cfg *config.Config, cat *catalog.Catalog, svc *dataset.Service, instanceID string, logger zerolog.Logger) (*Server, error) {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		config:     cfg,
		catalog:    cat,
		service:    svc,
		instanceID: instanceID,
		logger:     logger.With().Str("component", "http-server").Logger(),
		ctx:        ctx,
		cancel:     cancel,
	}
	s.router = s.buildRouter()

	return s, nil
}

// buildRouter wires the routes once. Every resource is served through
// the same handler; dispatch happens on the catalog lookup, not on
// per-resource closures.
func (s *Server) buildRouter() chi.Router {
	mux := chi.NewRouter()
	mux.Use(s.requestID)
	mux.Use(s.logRequests)

	mux.Get("/", s.handleRoot)
	mux.Get("/health", s.handleHealth)
	mux.Get("/data/{resource}", s.handleResource)

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeFailure(w, http.StatusNotFound, errors.Newf(ErrUnknownResource, "no endpoint for %s", r.URL.Path))
	})

	return mux
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := s.config.GetHTTPAddr()
	s.logger.Info().Str("address", addr).Int("resources", s.catalog.Len()).Msg("Starting HTTP server")

	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	s.logger.Info().Msg("HTTP server started successfully")
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	s.logger.Info().Msg("Stopping HTTP server")

	s.cancel()

	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
	}

	s.wg.Wait()

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// GetStatus returns server status
func (s *Server) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"address":   s.config.GetHTTPAddress(),
		"port":      s.config.GetHTTPPort(),
		"resources": s.catalog.Len(),
	}
}
