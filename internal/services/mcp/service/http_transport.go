package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/gram/internal/platform/httpx"
	"github.com/louisbranch/gram/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// sessionIdleTimeout closes streamable sessions that stop sending requests.
const sessionIdleTimeout = time.Hour

// HTTPHandler returns the streamable HTTP handler for the MCP server. It
// serves MCP on /mcp and a health probe on /mcp/health.
func (s *Server) HTTPHandler(allowedHosts []string) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, &mcp.StreamableHTTPOptions{SessionTimeout: sessionIdleTimeout})

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	mux.HandleFunc("GET /mcp/health", func(w http.ResponseWriter, _ *http.Request) {
		_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return httpx.Chain(mux,
		httpx.RecoverPanic(s.logger),
		httpx.RequestID(),
		httpx.RequestLogger(s.logger),
		localOnly(parseAllowedHosts(allowedHosts)),
	)
}

// ServeHTTP listens on addr and serves MCP until ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string, allowedHosts []string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.serveHTTP(ctx, lis, allowedHosts)
}

func (s *Server) serveHTTP(ctx context.Context, lis net.Listener, allowedHosts []string) error {
	httpServer := &http.Server{
		Handler:           s.HTTPHandler(allowedHosts),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(lis)
	}()
	s.logger.Printf("mcp http listening at %s", lis.Addr())

	select {
	case <-ctx.Done():
		s.logger.Printf("shutting down mcp http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown mcp http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve mcp http: %w", err)
	}
}

// localOnly rejects requests whose Host or Origin header is neither loopback
// nor explicitly allowed, which blocks DNS rebinding from remote pages.
func localOnly(allowed map[string]struct{}) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := validateLocalRequest(r, allowed); err != nil {
				http.Error(w, err.Error(), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validateLocalRequest(r *http.Request, allowed map[string]struct{}) error {
	if !isAllowedHostHeader(r.Host, allowed) {
		return fmt.Errorf("invalid host")
	}

	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return nil
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("invalid origin")
	}
	if !isAllowedHostHeader(parsed.Host, allowed) {
		return fmt.Errorf("invalid origin")
	}
	return nil
}

// isAllowedHostHeader reports whether a Host/Origin header resolves to an allowed host.
func isAllowedHostHeader(host string, allowed map[string]struct{}) bool {
	resolved, ok := normalizeHost(host)
	if !ok {
		return false
	}
	if isLoopbackHost(resolved) {
		return true
	}
	_, ok = allowed[strings.ToLower(resolved)]
	return ok
}

func isLoopbackHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}

func parseAllowedHosts(hosts []string) map[string]struct{} {
	result := make(map[string]struct{}, len(hosts))
	for _, entry := range hosts {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		result[strings.ToLower(trimmed)] = struct{}{}
	}
	return result
}

// normalizeHost extracts the hostname portion from Host/Origin headers.
func normalizeHost(host string) (string, bool) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", false
	}

	if strings.HasPrefix(host, "[") {
		if splitHost, _, err := net.SplitHostPort(host); err == nil {
			return splitHost, true
		}
		if strings.HasSuffix(host, "]") {
			return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]"), true
		}
		return "", false
	}

	if strings.Count(host, ":") > 1 {
		return host, true
	}

	if strings.Contains(host, ":") {
		splitHost, _, err := net.SplitHostPort(host)
		if err != nil {
			return "", false
		}
		return splitHost, true
	}

	return host, true
}
