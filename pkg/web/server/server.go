// Package server hosts the embedded HTTP server: it binds the listener, dispatches
// requests to the registered controllers and stops gracefully with the application.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/tigerroll/pipelines/pkg/web/core/config"
	"github.com/tigerroll/pipelines/pkg/web/support/util/exception"
	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

const moduleName = "server"

// Server wraps an http.Server whose listener is bound synchronously in Start,
// so that an unavailable address fails application startup instead of a background goroutine.
type Server struct {
	cfg        *config.ServerConfig
	httpServer *http.Server
	listener   net.Listener
	serveErr   chan error
}

// New creates a Server serving handler with the timeouts from cfg.
func New(cfg *config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
			IdleTimeout:       time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
		},
		serveErr: make(chan error, 1),
	}
}

// Start binds the configured address and begins serving in a new goroutine.
// If the address is already bound the returned error wraps exception.ErrAddressInUse.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Address, strconv.Itoa(s.cfg.Port))

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		if isAddressInUse(err) {
			return exception.NewAppErrorf(moduleName, "failed to listen on %s", addr, errors.Join(exception.ErrAddressInUse, err))
		}
		return exception.NewAppErrorf(moduleName, "failed to listen on %s", addr, err)
	}
	s.listener = ln
	logger.Infof("HTTP server listening on %s", ln.Addr())

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("HTTP server on %s stopped unexpectedly: %v", ln.Addr(), err)
			s.serveErr <- exception.NewAppError(moduleName, "serve failed", err)
		}
		close(s.serveErr)
	}()
	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight requests for at
// most the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}
	if timeout := time.Duration(s.cfg.ShutdownTimeoutSeconds) * time.Second; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Infof("Shutting down HTTP server on %s", s.listener.Addr())
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return exception.NewAppError(moduleName, "graceful shutdown failed", err)
	}
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.cfg.Address, strconv.Itoa(s.cfg.Port))
}

// Done returns a channel that receives the error that ended Serve, if any,
// and is closed once Serve has returned.
func (s *Server) Done() <-chan error {
	return s.serveErr
}

func isAddressInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	// Windows reports WSAEADDRINUSE, which does not match syscall.EADDRINUSE.
	return strings.Contains(strings.ToLower(err.Error()), "address already in use") ||
		strings.Contains(strings.ToLower(err.Error()), "only one usage of each socket address")
}
