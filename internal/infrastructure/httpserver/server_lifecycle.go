package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to drain before returning. A listener failure is returned immediately.
func (s *Server) Run(ctx context.Context, drain time.Duration) error {
	s.LogMetricsInitialization()

	addr := net.JoinHostPort(s.config.Host, s.config.Port)
	srv := &http.Server{
		Addr:              addr,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if s.config.TLSCertFile != "" && s.config.TLSKeyFile != "" {
			s.logger.WithField("addr", addr).Info("serving HTTPS")
			err = s.echo.StartTLS(addr, s.config.TLSCertFile, s.config.TLSKeyFile)
		} else {
			s.logger.WithField("addr", addr).Info("serving HTTP")
			if s.config.Environment == "production" {
				s.logger.Warn("TLS not configured; expecting a terminating proxy in front")
			}
			err = s.echo.StartServer(srv)
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Echo exposes the router for in-process tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
