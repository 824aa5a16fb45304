// Package server renders mazes on demand over HTTP.
//
// Routes:
//
//	GET /healthz          liveness probe
//	GET /maze/{format}    render one maze; query: height, width, seed, merge,
//	                      frame_width, frame_height, margin, wall, floor, labels
//
// Every response carries an X-Request-ID header. Maze responses also carry
// X-Maze-Seed so a random maze can be requested again. Requests that name a
// seed are answered from the artifact cache when possible; X-Cache reports
// hit or miss.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mazegen/pkg/cache"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/pipeline"
)

// Header names.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderSeed      = "X-Maze-Seed"
	HeaderCache     = "X-Cache"
)

// Config holds settings for creating a new Server.
type Config struct {
	Addr         string           // address to listen on
	MaxCells     int              // largest height*width served; 0 means maze.MaxCells
	WriteTimeout time.Duration    // per-response write deadline; 0 disables it
	Defaults     pipeline.Options // options used when a query parameter is absent
	Runner       *pipeline.Runner
	Cache        cache.Cache   // nil disables caching
	CacheTTL     time.Duration // lifetime of cached artifacts; 0 keeps them
	Logger       *log.Logger
}

// Server manages the HTTP listener and its routes.
type Server struct {
	cfg    Config
	router chi.Router
}

// New creates a Server with routes registered.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(cfg.Logger)
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.MaxCells <= 0 {
		cfg.MaxCells = maze.MaxCells
	}
	s := &Server{cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/maze/{format}", s.handleMaze)
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
