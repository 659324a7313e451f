// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package graphql

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/samber/oops"

	"github.com/quillboard/quillboard/internal/observability"
)

// ServerConfig configures the GraphQL HTTP server.
type ServerConfig struct {
	Addr       string
	CORSOrigin string
}

// Server serves the GraphQL API over HTTP at /graphql.
type Server struct {
	cfg        ServerConfig
	handler    http.Handler
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer parses the schema against the resolver and assembles the
// middleware chain: recovery, request logging/metrics, CORS, session.
func NewServer(cfg ServerConfig, resolver *Resolver, sessions *SessionManager, metrics *observability.Metrics, logger *slog.Logger) (*Server, error) {
	if resolver == nil {
		return nil, oops.Errorf("resolver is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("session manager is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	schema, err := graphqlgo.ParseSchema(Schema, resolver)
	if err != nil {
		return nil, oops.Code("SCHEMA_PARSE_FAILED").Wrap(err)
	}

	var handler http.Handler = &relay.Handler{Schema: schema}
	handler = sessions.Middleware(handler)
	handler = CORS(cfg.CORSOrigin)(handler)
	handler = RequestLogging(logger, metrics)(handler)
	handler = Recovery(logger)(handler)

	mux := http.NewServeMux()
	mux.Handle("/graphql", handler)

	return &Server{cfg: cfg, handler: mux}, nil
}

// Handler returns the assembled HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving the API. It returns an error channel that receives
// any error from the HTTP server after startup; the channel is closed on
// graceful stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("graphql server already running")
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.cfg.Addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("graphql server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("graphql server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the server, letting in-flight requests
// finish.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_graphql_server").Wrap(err)
		}
	}

	slog.Info("graphql server stopped")
	return nil
}

// Addr returns the address the server is listening on, or empty if not
// running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
