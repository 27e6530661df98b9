// Package server implements the HTTP relay in front of the text-generation
// provider.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/jmylchreest/cleanread/internal/config"
	"github.com/jmylchreest/cleanread/internal/logger"
	"github.com/jmylchreest/cleanread/pkg/cleaner"
	"github.com/jmylchreest/cleanread/pkg/summary"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 10 * time.Second

// Summarizer produces a summary for content.
type Summarizer interface {
	Summarize(ctx context.Context, content string, mode summary.Mode) (string, error)
}

// Server is the relay. It keeps no state between requests apart from the
// per-client rate limiters.
type Server struct {
	cfg        *config.Relay
	summarizer Summarizer
	stripper   cleaner.Cleaner
	limiters   *cache.Cache
	logger     *slog.Logger
	engine     *gin.Engine
}

// New builds the relay and its routes.
func New(cfg *config.Relay, summarizer Summarizer) *Server {
	s := &Server{
		cfg:        cfg,
		summarizer: summarizer,
		stripper:   cleaner.NewTagStripper(),
		limiters:   cache.New(limiterTTL, 2*limiterTTL),
		logger:     logger.With("component", "relay"),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(s.corsConfig()))

	r.GET("/health", s.handleHealth)

	api := r.Group(s.cfg.BasePath)
	api.Use(s.rateLimit(), s.limitBody())
	api.POST("/summarize", s.handleSummarize)
	api.POST("/clean", s.handleClean)
	api.POST("/extract", s.handleExtract)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(s.cfg.CORSOrigins) == 0 || slices.Contains(s.cfg.CORSOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.CORSOrigins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Content-Length", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	return cfg
}

// Handler returns the relay as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("relay listening",
			"addr", s.cfg.Addr,
			"base_path", s.cfg.BasePath,
			"provider", s.cfg.Provider,
			"model", s.cfg.Model,
			"max_body", s.cfg.MaxBodySizeString())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("relay: %w", err)
	case <-ctx.Done():
		s.logger.Info("relay shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("relay shutdown: %w", err)
		}
		return nil
	}
}
