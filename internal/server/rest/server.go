// Package rest exposes the PhotoTranslate HTTP API on top of gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/phototranslate/internal/logging"
	"github.com/gin-gonic/gin"
)

// ShutdownTimeout bounds how long in-flight requests may run after the
// server has been asked to stop.
const ShutdownTimeout = 10 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	engine  *gin.Engine
}

func NewServer(address string, l logging.Logger, h *Handlers) *Server {
	logger := l.With("module", "http_server")
	return &Server{
		address: address,
		logger:  logger,
		engine:  NewRouter(h, logger),
	}
}

// Handler returns the underlying router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
