// Package api exposes the recipe parsing pipeline over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"recipeparser/internal/config"
	"recipeparser/internal/monitor"
	"recipeparser/internal/monitoring"
	"recipeparser/internal/parser"
)

// Pinger is implemented by backing stores that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	parser     *parser.Service
	monitor    *monitor.Monitor
	pgStore    Pinger
	redisStore Pinger
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

// NewServer wires the handler graph. pgStore and redisStore may be nil
// when the corresponding backend is not configured; the health endpoint
// skips them.
func NewServer(cfg *config.Config, ps *parser.Service, mon *monitor.Monitor, pg, rd Pinger, m *monitoring.Metrics, l *zap.Logger) *Server {
	s := &Server{
		config:     cfg,
		parser:     ps,
		monitor:    mon,
		pgStore:    pg,
		redisStore: rd,
		metrics:    m,
		logger:     l,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
