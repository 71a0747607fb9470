package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/gear6io/mallard/server/config"
	"github.com/gear6io/mallard/server/dataset"
	"github.com/gear6io/mallard/server/protocols/http"
	"github.com/gear6io/mallard/server/query"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Server wires the catalog, query engine, dataset service and the HTTP
// protocol server into one lifecycle.
type Server struct {
	config     *config.Config
	logger     zerolog.Logger
	instanceID string
	catalog    *catalog.Catalog
	engine     *query.Engine
	service    *dataset.Service
	httpServer *http.Server
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	startTime  time.Time
}

// New creates a new server instance. The data path is resolved and the
// catalog built here, before any listener exists, so an unusable data
// directory fails construction rather than the first request.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	ctx, cancel := context.WithCancel(context.Background())

	dataPath, err := catalog.ResolveDataPath(cfg.GetDataPath())
	if err != nil {
		cancel()
		return nil, err
	}

	cat, err := catalog.Build(dataPath, cfg.GetDataItems(), logger)
	if err != nil {
		cancel()
		return nil, err
	}
	if cat.Len() == 0 {
		cancel()
		catErr := errors.Newf(catalog.ErrEmpty, "no servable items found in %s", dataPath)
		if items := cfg.GetDataItems(); len(items) > 0 {
			catErr.AddContext("items", strings.Join(items, ", "))
		}
		return nil, catErr
	}

	instanceID := uuid.New().String()
	engine := query.NewEngine(query.DefaultEngineConfig(), logger)
	service := dataset.NewService(engine, logger)

	httpServer, err := http.NewServer(cfg, cat, service, instanceID, logger)
	if err != nil {
		cancel()
		return nil, err
	}

	return &Server{
		config:     cfg,
		logger:     logger.With().Str("component", "server").Logger(),
		instanceID: instanceID,
		catalog:    cat,
		engine:     engine,
		service:    service,
		httpServer: httpServer,
		ctx:        ctx,
		cancel:     cancel,
		startTime:  time.Now(),
	}, nil
}

// Start starts the protocol servers.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().
		Str("instance_id", s.instanceID).
		Str("data_path", s.catalog.DataPath()).
		Int("resources", s.catalog.Len()).
		Msg("Starting Mallard server...")

	if err := s.httpServer.Start(ctx); err != nil {
		return err
	}

	s.logger.Info().
		Str("http_address", s.config.GetHTTPAddr()).
		Msg("All servers started")

	return nil
}

// Shutdown gracefully shuts down all servers
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server...")

	s.cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Stop(); err != nil {
			s.logger.Error().Err(err).Msg("Error stopping HTTP server")
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Graceful shutdown completed")
	case <-time.After(30 * time.Second):
		s.logger.Warn().Msg("Shutdown timeout, forcing close")
	}

	return nil
}

// Catalog exposes the catalog the server was built around.
func (s *Server) Catalog() *catalog.Catalog {
	return s.catalog
}

// GetUptime returns the server uptime
func (s *Server) GetUptime() time.Duration {
	return time.Since(s.startTime)
}

// GetStatus returns the server status
func (s *Server) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"uptime":      s.GetUptime().String(),
		"start_time":  s.startTime,
		"instance_id": s.instanceID,
		"data_path":   s.catalog.DataPath(),
		"resources":   s.catalog.Len(),
		"http":        s.httpServer.GetStatus(),
	}
}
