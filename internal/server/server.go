// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes article generation and humanization over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/content-engine/internal/archive"
	"github.com/pdiddy/content-engine/internal/article"
	"github.com/pdiddy/content-engine/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// Archive stores served articles. *archive.Store implements it.
type Archive interface {
	Save(ctx context.Context, art types.Article) (archive.Entry, error)
	Get(ctx context.Context, idOrSlug string) (archive.Entry, error)
}

// Server is the HTTP front end of a Writer.
type Server struct {
	cfg     types.ServerConfig
	writer  *article.Writer
	archive Archive
	logger  *slog.Logger
	router  *gin.Engine
}

// New builds a server for w. store may be nil, in which case articles are
// not archived and the lookup route answers 404.
func New(cfg types.ServerConfig, w *article.Writer, store Archive, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	setupSecurityMiddleware(router, cfg, logger)

	s := &Server{
		cfg:     cfg,
		writer:  w,
		archive: store,
		logger:  logger,
		router:  router,
	}
	s.setupRoutes()
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.POST("/articles", s.handleWrite)
		api.GET("/articles/:id", s.handleGet)
		api.POST("/humanize", s.handleHumanize)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "content-engine",
	})
}
