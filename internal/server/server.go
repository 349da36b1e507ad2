// Package server exposes the transcription pipeline over HTTP: one
// synchronous transcribe endpoint, an output download endpoint, and a
// static index page.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ytscribe/internal/config"
	"ytscribe/internal/pipeline"
	"ytscribe/internal/usecase"
)

// Runner is the slice of the pipeline the handlers need.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (usecase.Result, error)
	OutDir() string
}

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	runner     Runner
	cfg        config.Config
	log        zerolog.Logger
}

var ginModeOnce sync.Once

func New(cfg config.Config, runner Runner, log zerolog.Logger) *Server {
	ginModeOnce.Do(func() {
		if cfg.LogLevel == "debug" || cfg.LogLevel == "trace" {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
	})

	engine := gin.New()
	s := &Server{
		engine: engine,
		runner: runner,
		cfg:    cfg,
		log:    log.With().Str("component", "server").Logger(),
	}

	engine.Use(RequestID(), Logging(s.log), Recovery(s.log))
	s.routes()

	s.httpServer = &http.Server{
		Addr:        cfg.Addr(),
		Handler:     engine,
		ReadTimeout: 30 * time.Second,
		// no write timeout: transcription responses are synchronous and
		// can take as long as the model needs
		IdleTimeout: 120 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.Static("/static", s.cfg.StaticDir)
	s.engine.POST("/api/transcribe", s.handleTranscribe)
	s.engine.GET("/download", s.handleDownload)
}

// Handler exposes the routed engine for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Start binds the listener and serves in the background. Returning after the
// bind lets the caller know the port is ready.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.httpServer.Addr, err)
	}
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("http server stopped")
		}
	}()
	return nil
}

// Stop drains in-flight requests with a deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
