package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
)

// Bridge is the daemon surface the IPC server exposes. All methods are
// invoked from connection-handling goroutines and must be safe for
// concurrent use.
type Bridge interface {
	Status() StatusData
	ListDisplays() DisplaysData
	OpenDisplay(name string) (DisplaysData, error)
	CloseDisplay(name string) error
	ListFrames() FramesData
	ResolveColor(name string) (ColorData, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath string
	listener   net.Listener
	bridge     Bridge
	logger     *slog.Logger

	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on socketPath.
func NewServer(socketPath string, bridge Bridge, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	// Remove stale socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		bridge:     bridge,
		logger:     logger,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()
	return nil
}

// Stop closes the listener and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Error("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Expect one JSON request per line
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Error("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.send(conn, ErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	s.send(conn, s.handleCommand(req))
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.ok(s.bridge.Status())

	case CommandListDisplays:
		return s.ok(s.bridge.ListDisplays())

	case CommandOpenDisplay:
		var payload DisplayPayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return ErrorResponse(err.Error())
		}
		data, err := s.bridge.OpenDisplay(payload.Name)
		if err != nil {
			return ErrorResponse(err.Error())
		}
		return s.ok(data)

	case CommandCloseDisplay:
		var payload DisplayPayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return ErrorResponse(err.Error())
		}
		if err := s.bridge.CloseDisplay(payload.Name); err != nil {
			return ErrorResponse(err.Error())
		}
		return s.ok(s.bridge.ListDisplays())

	case CommandListFrames:
		return s.ok(s.bridge.ListFrames())

	case CommandResolveColor:
		var payload ColorPayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return ErrorResponse(err.Error())
		}
		data, err := s.bridge.ResolveColor(payload.Name)
		if err != nil {
			return ErrorResponse(err.Error())
		}
		return s.ok(data)

	default:
		return ErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) ok(data any) *Response {
	resp, err := OKResponse(data)
	if err != nil {
		return ErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) send(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.logger.Error("IPC marshal error", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.logger.Error("IPC write error", "error", err)
	}
}

func unmarshalPayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
