package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: cfg.RequestTimeout,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      cfg.RequestTimeout,
			IdleTimeout:       2 * cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// listen binds the configured address; bind errors are returned from
// RunServer directly.
func (h *httpServer) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", h.server.Addr, err)
	}
	return ln, nil
}

func (h *httpServer) serve(ln net.Listener) error {
	h.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP server listening")

	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server serve: %w", err)
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) error {
	start := time.Now()
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	h.logger.Info().Dur("took", time.Since(start)).Msg("HTTP server stopped")
	return nil
}
