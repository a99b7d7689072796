package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/vkopitsa/vtx-emulator/internal/discovery"
	"github.com/vkopitsa/vtx-emulator/internal/emulator"
	"github.com/vkopitsa/vtx-emulator/internal/logging"
	"github.com/vkopitsa/vtx-emulator/internal/smartaudio"
)

// Config holds the listener configuration
type Config struct {
	Host     string
	Port     int
	WSPort   int  // WebSocket bridge port (0 = disabled)
	Announce bool // advertise the listener over mDNS
	LogLevel string
}

// Server accepts SmartAudio clients over TCP and answers as the emulated VTX.
// Connections are served one at a time: the device is a half-duplex serial
// peer and does not fan out. Each connection gets a fresh engine; the device
// settings persist across connections for the process lifetime.
type Server struct {
	config   *Config
	settings *smartaudio.Settings
	listener net.Listener

	mu         sync.Mutex
	activeConn net.Conn
}

// New creates a new Server instance
func New(config *Config, settings *smartaudio.Settings) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return &Server{config: config, settings: settings}, nil
}

// Start listens on the configured address and blocks until shutdown. A
// SIGINT or SIGTERM stops the server gracefully.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	logging.Info("VTX emulator listening",
		zap.String("addr", addr),
		zap.String("device", s.settings.String()),
	)

	if s.config.Announce {
		announcer, err := discovery.Announce(s.config.Port)
		if err != nil {
			// A broken mDNS stack should not keep the emulator from serving
			logging.Warn("mDNS announcement failed", zap.Error(err))
		} else {
			defer announcer.Shutdown()
		}
	}

	var ws *WSBridge
	if s.config.WSPort > 0 {
		ws = NewWSBridge(s.config.Host, s.config.WSPort, s.settings)
		go func() {
			if err := ws.Start(); err != nil {
				logging.Error("WebSocket bridge failed", zap.Error(err))
			}
		}()
		defer ws.Shutdown(context.Background())
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(listener)
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping emulator...")
		return s.Shutdown()
	case err := <-errChan:
		return err
	}
}

// Serve accepts connections from ln until the listener is closed. Clients are
// served sequentially; a second client connecting while one is active waits in
// the accept queue.
func (s *Server) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			logging.Error("Failed to accept connection", zap.Error(err))
			continue
		}
		s.handleConnection(conn)
	}
}

// handleConnection drives one protocol engine over a single client connection
func (s *Server) handleConnection(conn net.Conn) {
	remoteAddr := conn.RemoteAddr().String()

	s.mu.Lock()
	s.activeConn = conn
	s.mu.Unlock()

	defer func() {
		_ = conn.Close()
		s.mu.Lock()
		s.activeConn = nil
		s.mu.Unlock()
		logging.LogConnection(remoteAddr, "connection_closed")
	}()

	logging.LogConnection(remoteAddr, "connection_accepted")

	engine := emulator.New(s.settings)
	if err := engine.Run(conn, remoteAddr); err != nil {
		logging.Warn("Connection ended with error",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
	}
}

// Shutdown closes the listener and any active connection
func (s *Server) Shutdown() error {
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.mu.Lock()
	if s.activeConn != nil {
		_ = s.activeConn.Close()
	}
	s.mu.Unlock()
	logging.Sync()
	return nil
}
