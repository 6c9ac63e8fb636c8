package httpserver

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) Start() error {
	s.LogMetricsInitialization()

	server, err := s.httpServer()
	if err != nil {
		return err
	}

	if server.TLSConfig != nil {
		s.logger.WithField("environment", s.config.Environment).Infof("Starting HTTPS server on %s", server.Addr)
	} else {
		s.logger.WithField("environment", s.config.Environment).Infof("Starting HTTP server on %s", server.Addr)
	}
	return s.echo.StartServer(server)
}

// httpServer applies the configured timeouts to both plain and TLS listeners.
func (s *Server) httpServer() (*http.Server, error) {
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	if s.config.TLSCertFile == "" || s.config.TLSKeyFile == "" {
		return server, nil
	}

	cert, err := tls.LoadX509KeyPair(s.config.TLSCertFile, s.config.TLSKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS key pair: %w", err)
	}
	server.TLSConfig = &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
	return server, nil
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
