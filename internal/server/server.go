package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/handler"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

type server struct {
	httpServer      *httpServer
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	ln, err := s.httpServer.listen()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve(ln)
	}()

	select {
	case err = <-serveErr:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err = s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err = <-serveErr; err != nil {
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return errors.New("no servers to shut down")
	}
	return s.httpServer.shutdown(ctx)
}
