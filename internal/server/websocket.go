package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vkopitsa/vtx-emulator/internal/emulator"
	"github.com/vkopitsa/vtx-emulator/internal/logging"
	"github.com/vkopitsa/vtx-emulator/internal/smartaudio"
)

// WSBridge exposes the byte stream over WebSocket binary messages, for
// harnesses that cannot open a raw TCP socket (browser-based tooling mostly).
// Incoming binary messages are fed to the engine byte by byte; each response
// frame goes out as one binary message. Like the TCP listener, the bridge
// serves a single client at a time.
type WSBridge struct {
	host     string
	port     int
	settings *smartaudio.Settings
	server   *http.Server

	mu   sync.Mutex
	busy bool
}

var upgrader = websocket.Upgrader{
	// The emulator answers local test harnesses; there is no origin policy
	CheckOrigin: func(*http.Request) bool { return true },
}

// NewWSBridge creates a bridge serving ws://host:port/smartaudio
func NewWSBridge(host string, port int, settings *smartaudio.Settings) *WSBridge {
	b := &WSBridge{host: host, port: port, settings: settings}

	mux := http.NewServeMux()
	mux.HandleFunc("/smartaudio", b.handleUpgrade)
	b.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: mux,
	}
	return b
}

// Start serves the bridge and blocks until Shutdown
func (b *WSBridge) Start() error {
	logging.Info("WebSocket bridge listening",
		zap.String("addr", b.server.Addr),
		zap.String("path", "/smartaudio"),
	)
	if err := b.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("websocket bridge failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully
func (b *WSBridge) Shutdown(ctx context.Context) error {
	return b.server.Shutdown(ctx)
}

func (b *WSBridge) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	if b.busy {
		b.mu.Unlock()
		http.Error(w, "emulator busy", http.StatusServiceUnavailable)
		return
	}
	b.busy = true
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.busy = false
		b.mu.Unlock()
	}()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	defer conn.Close()

	remoteAddr := conn.RemoteAddr().String()
	logging.LogConnection(remoteAddr, "websocket_connected")
	defer logging.LogConnection(remoteAddr, "websocket_closed")

	engine := emulator.New(b.settings)
	if err := engine.Run(&wsStream{conn: conn}, remoteAddr); err != nil {
		logging.Warn("WebSocket session ended with error",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
	}
}

// wsStream adapts a WebSocket connection to the engine's io.ReadWriter
// contract: reads drain binary messages, writes send one message per frame.
type wsStream struct {
	conn *websocket.Conn
	rest []byte
}

func (s *wsStream) Read(p []byte) (int, error) {
	for len(s.rest) == 0 {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		// Text and control messages carry no protocol bytes
		if msgType == websocket.BinaryMessage {
			s.rest = data
		}
	}
	n := copy(p, s.rest)
	s.rest = s.rest[n:]
	return n, nil
}

func (s *wsStream) Write(p []byte) (int, error) {
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
