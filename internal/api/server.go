// Package api exposes the analysis engine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"smc-analyst/internal/assistant"
	"smc-analyst/internal/config"
	"smc-analyst/internal/logging"
	"smc-analyst/internal/marketdata"
	"smc-analyst/internal/risk"
	"smc-analyst/internal/session"
)

// Server hosts the REST API.
type Server struct {
	http *http.Server
	log  zerolog.Logger
}

// Deps are the components the handlers delegate to.
type Deps struct {
	Assistant  *assistant.Assistant
	Provider   marketdata.Provider
	Calculator *risk.Calculator
	Sessions   *session.Store
	Snapshots  SnapshotTaker
}

// NewServer builds the router and wires all routes.
func NewServer(cfg config.ServerConfig, deps Deps, log zerolog.Logger) *Server {
	gin.SetMode(cfg.Mode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	h := &handlers{deps: deps, log: log.With().Str("component", "api").Logger()}

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/sessions", h.createSession)
		apiGroup.GET("/sessions/:id", h.getSession)
		apiGroup.PATCH("/sessions/:id", h.updateSession)
		apiGroup.POST("/analyze", h.analyze)
		apiGroup.GET("/market-data/:symbol", h.marketData)
		apiGroup.POST("/calculate-position", h.calculatePosition)
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.http.Addr).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info().Msg("shutting down http server")
	return s.http.Shutdown(shutdownCtx)
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := logging.WithLogger(c.Request.Context(), log)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	}
}
