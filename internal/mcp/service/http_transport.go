package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const sessionHeader = "X-MCP-Session-ID"

// httpGateway serves MCP over HTTP: JSON-RPC messages over POST requests and
// Server-Sent Events for streaming responses. Each HTTP client gets its own
// session with a dedicated server run loop.
//
// TODO: Add API key authentication before exposing beyond localhost.
type httpGateway struct {
	addr       string
	server     *mcp.Server
	httpServer *http.Server

	sessionsMu sync.RWMutex
	sessions   map[string]*gatewaySession

	runCtx    context.Context
	runCancel context.CancelFunc
}

// gatewaySession pairs one HTTP client with its MCP connection.
type gatewaySession struct {
	id       string
	conn     *gatewayConnection
	started  sync.Once
	lastUsed time.Time
}

// gatewayConnection implements mcp.Connection over paired channels.
type gatewayConnection struct {
	sessionID string
	requests  chan jsonrpc.Message
	responses chan jsonrpc.Message
	done      chan struct{}
	mu        sync.Mutex
	closed    bool
}

func newHTTPGateway(addr string, server *mcp.Server) *httpGateway {
	if addr == "" {
		addr = "localhost:8081"
	}
	return &httpGateway{
		addr:     addr,
		server:   server,
		sessions: map[string]*gatewaySession{},
	}
}

// Start runs the HTTP server until the context ends.
func (g *httpGateway) Start(ctx context.Context) error {
	g.runCtx, g.runCancel = context.WithCancel(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp/messages", g.handleMessages)
	mux.HandleFunc("/mcp/sse", g.handleSSE)
	mux.HandleFunc("/mcp/health", g.handleHealth)

	g.httpServer = &http.Server{Addr: g.addr, Handler: mux}

	log.Printf("starting MCP HTTP server on %s", g.addr)

	errChan := make(chan error, 1)
	go func() {
		if err := g.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		g.runCancel()
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

// session resolves an existing session or creates a fresh one.
func (g *httpGateway) session(sessionID string) *gatewaySession {
	if sessionID != "" {
		g.sessionsMu.RLock()
		session, ok := g.sessions[sessionID]
		g.sessionsMu.RUnlock()
		if ok {
			return session
		}
	}

	conn := &gatewayConnection{
		sessionID: fmt.Sprintf("session_%d", time.Now().UnixNano()),
		requests:  make(chan jsonrpc.Message, 10),
		responses: make(chan jsonrpc.Message, 10),
		done:      make(chan struct{}),
	}
	session := &gatewaySession{id: conn.sessionID, conn: conn, lastUsed: time.Now()}

	g.sessionsMu.Lock()
	g.sessions[session.id] = session
	g.sessionsMu.Unlock()
	return session
}

// startServing runs the MCP server loop for this session exactly once.
func (g *httpGateway) startServing(session *gatewaySession) {
	if g.server == nil {
		return
	}
	session.started.Do(func() {
		transport := &connTransport{conn: session.conn}
		go func() {
			_ = g.server.Run(g.runCtx, transport)
		}()
	})
}

// handleMessages handles POST /mcp/messages for JSON-RPC requests.
func (g *httpGateway) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := g.session(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, session.id)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read request: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var msg jsonrpc.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON-RPC message: %v", err), http.StatusBadRequest)
		return
	}

	g.sessionsMu.Lock()
	session.lastUsed = time.Now()
	g.sessionsMu.Unlock()

	g.startServing(session)

	select {
	case session.conn.requests <- msg:
	case <-r.Context().Done():
		http.Error(w, "Request cancelled", http.StatusRequestTimeout)
		return
	}

	// Requests carry an ID and expect a reply; notifications do not.
	var isRequest bool
	switch v := msg.(type) {
	case *jsonrpc.Request:
		isRequest = v.ID != jsonrpc.ID{}
	case *jsonrpc.Response:
		http.Error(w, "Invalid message type: response", http.StatusBadRequest)
		return
	default:
		isRequest = true
	}

	if !isRequest {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	select {
	case resp := <-session.conn.responses:
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("failed to encode MCP response: %v", err)
		}
	case <-r.Context().Done():
		http.Error(w, "Request cancelled", http.StatusRequestTimeout)
	}
}

// handleSSE handles GET /mcp/sse for Server-Sent Events streaming.
func (g *httpGateway) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := g.session(r.URL.Query().Get("session"))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set(sessionHeader, session.id)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-session.conn.done:
			return
		case msg := <-session.conn.responses:
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("failed to marshal SSE message: %v", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

// handleHealth handles GET /mcp/health for health checks.
func (g *httpGateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Read implements mcp.Connection.Read.
func (c *gatewayConnection) Read(ctx context.Context) (jsonrpc.Message, error) {
	select {
	case msg := <-c.requests:
		return msg, nil
	case <-c.done:
		return nil, fmt.Errorf("connection closed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Write implements mcp.Connection.Write.
func (c *gatewayConnection) Write(ctx context.Context, msg jsonrpc.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("connection closed")
	}
	select {
	case c.responses <- msg:
		return nil
	case <-c.done:
		return fmt.Errorf("connection closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements mcp.Connection.Close.
func (c *gatewayConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	return nil
}

// SessionID implements mcp.Connection.SessionID.
func (c *gatewayConnection) SessionID() string {
	return c.sessionID
}

// connTransport hands a pre-existing connection to Server.Run.
type connTransport struct {
	conn mcp.Connection
}

// Connect implements mcp.Transport.Connect.
func (t *connTransport) Connect(ctx context.Context) (mcp.Connection, error) {
	return t.conn, nil
}
