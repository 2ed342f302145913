// Package service hosts the MCP server for the card table: it wires the
// table services into tools and resources and serves them over stdio or HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/cardtable/internal/mcp/conformance"
	"github.com/louisbranch/cardtable/internal/services/table/app"
	"github.com/louisbranch/cardtable/internal/services/table/containers"
	"github.com/louisbranch/cardtable/internal/services/table/storage"
	"github.com/louisbranch/cardtable/internal/services/table/transfer"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Card Table MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// conformanceEnvVar enables MCP conformance fixtures when set to "1" or "true" (case-insensitive).
	conformanceEnvVar = "MCP_CONFORMANCE"
	// defaultLocale renders the table feed when no locale is configured.
	defaultLocale = "en-US"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over an HTTP JSON-RPC endpoint.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP server address (e.g., "localhost:8081"). Defaults to localhost:8081 for HTTP transport.
	Locale    string // locale used to render the table feed, defaults to en-US
}

// Deps are the table services the MCP surface is built on.
type Deps struct {
	App       *app.Service
	Transfers *transfer.Service
	Table     *containers.Table
	Audit     storage.AuditEventStore
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server over the table services.
func New(deps Deps, locale string) (*Server, error) {
	if deps.App == nil || deps.Transfers == nil || deps.Table == nil || deps.Audit == nil {
		return nil, fmt.Errorf("MCP server dependencies are incomplete")
	}
	if locale == "" {
		locale = defaultLocale
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler: completionHandler,
	})

	registerConfigTools(mcpServer, deps.App, locale)
	registerCardTools(mcpServer, deps.App, deps.Table, locale)
	registerTransferTools(mcpServer, deps.Transfers, deps.Table, locale)
	registerConfigResources(mcpServer, deps.App)
	registerTableResources(mcpServer, deps.Table, deps.Audit, locale)
	if conformanceEnabled() {
		conformance.Register(mcpServer)
	}

	return &Server{mcpServer: mcpServer}, nil
}

// completionHandler handles completion/complete requests with empty results.
// TODO: Complete core_key and signature arguments from the registry.
func completionHandler(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, deps Deps, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(deps, cfg.Locale)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// serveHTTP serves the MCP server behind the HTTP gateway.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	gateway := newHTTPGateway(addr, s.mcpServer)
	return gateway.Start(ctx)
}

// conformanceEnabled reports whether conformance fixtures should be registered.
func conformanceEnabled() bool {
	value := strings.TrimSpace(os.Getenv(conformanceEnvVar))
	if value == "" {
		return false
	}
	return value == "1" || strings.EqualFold(value, "true")
}
