package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/louisbranch/sonundrum/internal/platform/timeouts"
	"github.com/louisbranch/sonundrum/internal/services/mcp/domain"
)

const (
	// serverName identifies the MCP server implementation.
	serverName = "sonundrum"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// defaultHTTPAddr keeps the HTTP transport local unless configured.
	defaultHTTPAddr = "localhost:8081"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs streamable MCP over HTTP, next to /metrics.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP server address. Defaults to localhost:8081.
	// Gatherer is served on /metrics by the HTTP transport. Defaults to the
	// default prometheus gatherer.
	Gatherer prometheus.Gatherer
}

// Server hosts the MCP server for one module and its bomb.
type Server struct {
	mcpServer *mcp.Server
}

// New creates an MCP server whose tools drive m and b.
func New(m domain.Module, b domain.Bomb) (*Server, error) {
	if m == nil {
		return nil, errors.New("module is required")
	}
	if b == nil {
		return nil, errors.New("bomb is required")
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(server, m, b)
	return &Server{mcpServer: server}, nil
}

func registerTools(server *mcp.Server, m domain.Module, b domain.Bomb) {
	mcp.AddTool(server, domain.PressTool(), domain.PressHandler(m, b))
	mcp.AddTool(server, domain.ForceSolveTool(), domain.ForceSolveHandler(m, b))
	mcp.AddTool(server, domain.StatusTool(), domain.StatusHandler(m, b))
	mcp.AddTool(server, domain.SolveModuleTool(), domain.SolveModuleHandler(m, b))
}

// Run serves MCP until ctx is cancelled. It is transport-agnostic so startup
// can choose stdio for local tools and HTTP for remote integrations.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return s.runWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return s.runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithTransport serves one session over transport. Cancellation is a clean
// stop.
func (s *Server) runWithTransport(ctx context.Context, transport mcp.Transport) error {
	if err := s.mcpServer.Run(ctx, transport); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}

// Handler returns the HTTP routes: streamable MCP on /mcp and prometheus
// metrics on /metrics.
func (s *Server) Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil))
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/mcp/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) runWithHTTPTransport(ctx context.Context, cfg Config) error {
	// Default to localhost-only binding for security
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = defaultHTTPAddr
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.serveHTTP(ctx, listener, cfg.Gatherer)
}

func (s *Server) serveHTTP(ctx context.Context, listener net.Listener, gatherer prometheus.Gatherer) error {
	httpServer := &http.Server{
		Handler:           s.Handler(gatherer),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	log.Printf("Starting MCP HTTP server on %s", listener.Addr())

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		<-errChan
		return nil
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		return fmt.Errorf("HTTP server error: %w", err)
	}
}
