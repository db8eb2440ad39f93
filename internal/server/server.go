// Package server implements the billing protocol listener and the
// per-connection handler. One goroutine per accepted connection, unbounded;
// handlers share only the read-only pricing tables and the store gateway.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gyeh/medibill/internal/metrics"
	"github.com/gyeh/medibill/internal/pricing"
	"github.com/gyeh/medibill/internal/store"
)

// Server accepts billing connections and dispatches one handler goroutine
// per connection.
type Server struct {
	gateway store.Gateway
	tables  *pricing.Tables
	log     zerolog.Logger
	metrics *metrics.Metrics

	lis net.Listener
	wg  sync.WaitGroup
}

// New creates a server. m may be nil, in which case metrics are registered
// on a private registry.
func New(gateway store.Gateway, tables *pricing.Tables, log zerolog.Logger, m *metrics.Metrics) *Server {
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	return &Server{
		gateway: gateway,
		tables:  tables,
		log:     log,
		metrics: m,
	}
}

// Listen binds the billing listener. A bind failure is fatal for startup and
// is returned to the caller.
func (s *Server) Listen(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}
	s.lis = lis
	s.log.Info().Str("addr", lis.Addr().String()).Msg("billing server listening")
	return nil
}

// Addr returns the bound listener address. Valid after Listen.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}

// Serve runs the accept loop until ctx is canceled or the listener fails.
// Each accepted connection is handled on its own goroutine; a handler
// failure never takes down the loop or other in-flight handlers.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.lis.Close()
	}()

	for {
		conn, err := s.lis.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.wg.Add(1)
		go s.handle(ctx, conn)
	}
}

// Shutdown closes the listener and waits for in-flight handlers to finish,
// or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.lis != nil {
		s.lis.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown: %w", ctx.Err())
	}
}
