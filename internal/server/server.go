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

	"github.com/edupulse/edupulse/internal/bootstrap"
	"github.com/edupulse/edupulse/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server holds the state for the HTTP server.
type Server struct {
	config  *config.Config
	router  *gin.Engine
	storage *bootstrap.Storage
	deps    *bootstrap.Dependencies
	logger  zerolog.Logger
	http    *http.Server

	// stops the hub and the relay
	cancelBackground context.CancelFunc
	background       chan struct{}
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	storage, err := bootstrap.SetupStorage(context.Background(), cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup storage: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, storage, lgr)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config:  cfg,
		router:  bootstrap.SetupRouter(cfg, deps, lgr),
		storage: storage,
		deps:    deps,
		logger:  lgr,
	}, nil
}

// startBackground runs the chat hub and, when configured, the Redis relay
// subscriber until Shutdown
func (s *Server) startBackground() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelBackground = cancel
	s.background = make(chan struct{})

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		s.deps.Hub.Run(ctx)
	}()

	if s.deps.Relay == nil {
		go func() {
			<-hubDone
			close(s.background)
		}()
		return nil
	}

	ready := make(chan struct{})
	relayErr := make(chan error, 1)
	go func() {
		relayErr <- s.deps.Relay.Listen(ctx, ready)
	}()

	select {
	case <-ready:
	case err := <-relayErr:
		cancel()
		<-hubDone
		return fmt.Errorf("chat relay failed to subscribe: %w", err)
	}

	go func() {
		if err := <-relayErr; err != nil {
			s.logger.Error().Err(err).Msg("Chat relay stopped")
		}
		<-hubDone
		close(s.background)
	}()
	return nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	if err := s.startBackground(); err != nil {
		s.storage.Close()
		return err
	}

	s.logger.Info().
		Str("port", s.config.Server.Port).
		Str("storage", s.config.Storage.Driver).
		Str("relay", s.config.Chat.Relay).
		Str("host", bootstrap.Hostname()).
		Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = s.Shutdown(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	// Hijacked WebSocket connections are not covered by http.Shutdown; the hub closes them
	if s.cancelBackground != nil {
		s.cancelBackground()
		select {
		case <-s.background:
			s.logger.Info().Msg("Chat hub stopped.")
		case <-ctx.Done():
			s.logger.Error().Msg("Timed out waiting for the chat hub to stop")
			shutdownError = true
		}
	}

	if s.storage != nil {
		s.logger.Info().Msg("Closing storage connections...")
		s.storage.Close()
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
