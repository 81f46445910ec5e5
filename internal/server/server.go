package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/bootstrap"
	"github.com/edutech/studify/internal/config"
	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/logger"
)

// Server owns the HTTP listener and the database pool.
type Server struct {
	config *config.Config
	router *gin.Engine
	pool   *pgxpool.Pool
	http   *http.Server
}

// New loads configuration, connects the database and wires all
// dependencies into a ready-to-run server.
func New() (*Server, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	pool, err := bootstrap.SetupDatabase(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	deps := bootstrap.BuildDependencies(cfg, pool)

	return &Server{
		config: cfg,
		router: bootstrap.SetupRouter(deps),
		pool:   pool,
	}, nil
}

// Run starts the listener and blocks until a shutdown signal or a fatal
// listener error.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, 15*time.Second),
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting server: %w", err)
		}
	case sig := <-signals:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops the listener gracefully and closes the pool.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := helpers.ParseDuration(s.config.Server.ShutdownTimeout, 10*time.Second)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var shutdownErr error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = err
		}
	}

	if s.pool != nil {
		s.pool.Close()
	}

	logger.Info().Msg("Server stopped")
	return shutdownErr
}
