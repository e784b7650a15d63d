package provider

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/go_func_utils"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

const wsWriteTimeout = 2 * time.Second

// WebSocketProvider serves /ws. A browser-side detector pushes frames over the
// connection and every connection receives the trainer view via Broadcast.
type WebSocketProvider struct {
	logger   *log.Logger
	addr     string
	upgrader websocket.Upgrader
	frame    latestFrame

	mu     sync.Mutex
	conns  map[*wsClient]struct{}
	server *http.Server
}

type wsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewWebSocketProvider(addr string, logger *log.Logger) *WebSocketProvider {
	if logger == nil {
		panic("WebSocketProvider: logger cannot be nil")
	}
	return &WebSocketProvider{
		logger: logger,
		addr:   addr,
		upgrader: websocket.Upgrader{
			// detector pages are served from anywhere on the local network
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*wsClient]struct{}),
	}
}

// Handler returns the HTTP handler exposing /ws
func (p *WebSocketProvider) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", p.serveWS)
	return mux
}

// Start listens on the configured address and serves in the background
func (p *WebSocketProvider) Start() error {
	ln, err := net.Listen("tcp", p.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", p.addr, err)
	}

	server := &http.Server{Handler: p.Handler(), ReadHeaderTimeout: 5 * time.Second}
	p.mu.Lock()
	p.server = server
	p.mu.Unlock()

	p.logger.Printf("WebSocketProvider: Listening on %s", ln.Addr())
	go_func_utils.SafeGo(p.logger, func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Printf("WebSocketProvider: Server stopped: %v", err)
		}
	})
	return nil
}

func (p *WebSocketProvider) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.logger.Printf("WebSocketProvider: Upgrade error: %v", err)
		return
	}

	client := &wsClient{conn: conn}
	p.mu.Lock()
	p.conns[client] = struct{}{}
	p.mu.Unlock()
	p.logger.Printf("WebSocketProvider: Client connected from %s", r.RemoteAddr)

	defer p.drop(client)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Printf("WebSocketProvider: Read error: %v", err)
			}
			return
		}
		if err := p.frame.accept(payload); err != nil {
			p.logger.Printf("WebSocketProvider: Dropping frame: %v", err)
		}
	}
}

func (p *WebSocketProvider) drop(client *wsClient) {
	p.mu.Lock()
	_, ok := p.conns[client]
	delete(p.conns, client)
	p.mu.Unlock()

	if ok {
		client.conn.Close()
		p.logger.Printf("WebSocketProvider: Client disconnected")
	}
}

// EstimatePoses returns the newest frame pushed since the previous call
func (p *WebSocketProvider) EstimatePoses(ctx context.Context) ([]pose.Pose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.frame.take(), nil
}

// Broadcast sends v as JSON to every connected client. Clients that fail the
// write are disconnected.
func (p *WebSocketProvider) Broadcast(v any) {
	p.mu.Lock()
	clients := make([]*wsClient, 0, len(p.conns))
	for c := range p.conns {
		clients = append(clients, c)
	}
	p.mu.Unlock()

	for _, c := range clients {
		c.writeMu.Lock()
		c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		err := c.conn.WriteJSON(v)
		c.writeMu.Unlock()
		if err != nil {
			p.logger.Printf("WebSocketProvider: Write failed: %v", err)
			p.drop(c)
		}
	}
}

// ClientCount returns the number of open connections
func (p *WebSocketProvider) ClientCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.conns)
}

func (p *WebSocketProvider) Stats() Stats {
	return p.frame.stats()
}

// Close stops the server and drops every client
func (p *WebSocketProvider) Close(ctx context.Context) error {
	p.mu.Lock()
	server := p.server
	clients := make([]*wsClient, 0, len(p.conns))
	for c := range p.conns {
		clients = append(clients, c)
	}
	p.mu.Unlock()

	for _, c := range clients {
		p.drop(c)
	}
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}
