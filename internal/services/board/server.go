// Package board serves the drawing board: an HTML surface where every cell is
// a toggle form and the grid lives in the URL, plus a small JSON API over the
// same grids and the puzzle catalog.
package board

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/gram/internal/core/gram"
	"github.com/louisbranch/gram/internal/core/gram/catalog"
	platformgrpc "github.com/louisbranch/gram/internal/platform/grpc"
	"github.com/louisbranch/gram/internal/platform/httpx"
	"github.com/louisbranch/gram/internal/platform/timeouts"
	"go.opentelemetry.io/otel/trace"
)

// HealthService is the gRPC health service name the board reports.
const HealthService = "gram.board"

// DefaultBoardSize is the side of a fresh board. It is the largest blank
// board the compact format can carry.
const DefaultBoardSize = gram.MaxRunLength

// Config defines startup inputs for the board service.
type Config struct {
	HTTPAddr string
	GRPCAddr string
	// DefaultSize is the side of blank boards; zero means DefaultBoardSize.
	DefaultSize int
	// Catalog defaults to the embedded puzzles.
	Catalog *catalog.Catalog
	// Logger receives one line per request; nil means log.Default().
	Logger *log.Logger
	// Tracer defaults to the global provider's board tracer.
	Tracer trace.Tracer
}

// Server hosts the board HTTP surface and its gRPC health endpoint.
type Server struct {
	httpAddr   string
	grpcAddr   string
	httpServer *http.Server
	health     *platformgrpc.HealthServer
}

// NewHandler builds the board routes wrapped in the request middleware.
func NewHandler(cfg Config) (http.Handler, error) {
	size := cfg.DefaultSize
	if size == 0 {
		size = DefaultBoardSize
	}
	if size < 1 || size > gram.MaxRunLength {
		return nil, fmt.Errorf("default size must be between 1 and %d, got %d", gram.MaxRunLength, size)
	}
	blank, err := gram.NewBlank(size)
	if err != nil {
		return nil, fmt.Errorf("build default board: %w", err)
	}
	blankEncoded, err := blank.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode default board: %w", err)
	}
	h := &handlers{
		defaultSize:  size,
		blankGrid:    blank,
		blankEncoded: blankEncoded,
		catalog:      cfg.Catalog,
		tracer:      cfg.Tracer,
	}
	if h.catalog == nil {
		h.catalog = catalog.Default()
	}
	if h.tracer == nil {
		h.tracer = newTracer()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.view)
	mux.HandleFunc("POST /toggle", h.toggle)
	mux.HandleFunc("GET /new", h.newBoard)
	mux.HandleFunc("GET /puzzles", h.puzzles)
	mux.HandleFunc("GET /puzzles/{name}", h.openPuzzle)
	mux.HandleFunc("GET /api/gram", h.apiGram)
	mux.HandleFunc("GET /api/puzzles", h.apiPuzzles)

	return httpx.Chain(mux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		httpx.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs a board server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	grpcAddr := strings.TrimSpace(cfg.GRPCAddr)
	if grpcAddr == "" {
		return nil, errors.New("grpc address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose board handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		grpcAddr: grpcAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		health: platformgrpc.NewHealthServer(HealthService),
	}, nil
}

// Run listens on both addresses and serves until ctx ends or either server
// fails. The health endpoint reports SERVING only while HTTP is accepting.
func (s *Server) Run(ctx context.Context) error {
	if s == nil {
		return errors.New("board server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	httpLis, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen http on %s: %w", s.httpAddr, err)
	}
	grpcLis, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		_ = httpLis.Close()
		return fmt.Errorf("listen grpc on %s: %w", s.grpcAddr, err)
	}
	return s.serve(ctx, httpLis, grpcLis)
}

func (s *Server) serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	healthErr := make(chan error, 1)
	go func() {
		healthErr <- s.health.Serve(ctx, grpcLis)
	}()
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- s.httpServer.Serve(httpLis)
	}()

	s.health.SetServing(true, HealthService)
	log.Printf("board listening http=%s grpc=%s", httpLis.Addr(), grpcLis.Addr())

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-httpErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("serve board http: %w", err)
		}
	case err := <-healthErr:
		healthErr = nil
		runErr = err
	}

	s.health.SetServing(false, HealthService)
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancelShutdown()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("shutdown board http: %w", err)
	}
	cancel()
	if healthErr != nil {
		if err := <-healthErr; err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
