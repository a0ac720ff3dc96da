package server

import (
	"errors"
	"fmt"
	"net"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DavidBarbosag/taller2AREP/internal/request"
	"github.com/DavidBarbosag/taller2AREP/internal/response"
)

// ErrServerClosed is returned by Serve once Shutdown has been called.
var ErrServerClosed = errors.New("server closed")

// Handler produces the response for one parsed request.
type Handler interface {
	ServeRequest(w *response.Writer, req *request.Request) error
}

// Config holds the listener and connection settings.
type Config struct {
	Addr string

	// Workers bounds how many connections are served at once. Accepted
	// connections beyond that wait in a queue.
	Workers int

	// ReadTimeout bounds how long a client may take to send its request.
	// Zero means no limit.
	ReadTimeout time.Duration

	// MaxBodySize caps Content-Length. Zero or less means no limit.
	MaxBodySize int64

	Logger Logger
}

// DefaultConfig returns a config listening on port 35000 with one worker
// per CPU.
func DefaultConfig() Config {
	return Config{
		Addr:        ":35000",
		Workers:     runtime.NumCPU(),
		MaxBodySize: request.DefaultMaxBodySize,
	}
}

// Server accepts TCP connections and serves one request on each.
type Server struct {
	cfg     Config
	handler ContextHandler
	logger  Logger
	metrics *Metrics
	pool    *pool

	mu       sync.Mutex
	listener net.Listener

	running atomic.Bool
	closed  atomic.Bool
}

// New creates a server. Its workers start right away and wait for Serve to
// hand them connections.
func New(cfg Config, h Handler) *Server {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = &NullLogger{}
	}

	s := &Server{
		cfg:     cfg,
		logger:  cfg.Logger,
		metrics: NewMetrics(),
	}
	s.handler = Chain(handlerOf(h),
		LoggingMiddleware(s.logger),
		MetricsMiddleware(s.metrics),
		RequestIDMiddleware(),
		RecoveryMiddleware(s.logger),
	)
	s.pool = newPool(cfg.Workers, s.serveConn)
	return s
}

// Listen binds the configured address without accepting yet.
func (s *Server) Listen() (net.Listener, error) {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", s.cfg.Addr, err)
	}

	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
	return l, nil
}

// ListenAndServe binds the configured address and serves on it.
func (s *Server) ListenAndServe() error {
	l, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve accepts connections on l until Shutdown is called, handing each to
// the worker pool. It always returns a non-nil error; after Shutdown that
// error is ErrServerClosed.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		l.Close()
		return ErrServerClosed
	}
	s.listener = l
	s.running.Store(true)
	s.mu.Unlock()

	s.logger.Info("server listening",
		Field{"addr", l.Addr().String()},
		Field{"workers", s.cfg.Workers},
	)

	for s.running.Load() {
		conn, err := l.Accept()
		if err != nil {
			if !s.running.Load() {
				break
			}
			if errors.Is(err, net.ErrClosed) {
				s.running.Store(false)
				return err
			}
			s.logger.Error("accept failed", Field{"error", err})
			continue
		}

		if !s.pool.submit(conn) {
			conn.Close()
		}
	}
	return ErrServerClosed
}

// Addr returns the bound address, or nil before Listen or Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stats returns a snapshot of the request counters.
func (s *Server) Stats() MetricsSnapshot {
	return s.metrics.Snapshot()
}
