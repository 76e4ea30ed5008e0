// Package mcp exposes the bridge daemon to MCP clients over stdio. Every
// tool proxies to the running daemon through the IPC client; the MCP process
// itself holds no display state.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/glyphbridge/internal/ipc"
)

const (
	ServerName    = "glyphbridge"
	ServerVersion = "0.1.0"
)

// DaemonClient is the IPC surface the tools call. *ipc.Client implements it.
type DaemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	ListDisplays() (*ipc.DisplaysData, error)
	OpenDisplay(name string) (*ipc.DisplaysData, error)
	CloseDisplay(name string) error
	ListFrames() (*ipc.FramesData, error)
	ResolveColor(name string) (*ipc.ColorData, error)
}

var _ DaemonClient = (*ipc.Client)(nil)

// Server is the MCP server for the bridge daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	client    DaemonClient
}

// NewServer creates a new MCP server proxying to the given daemon client.
func NewServer(client DaemonClient) *Server {
	s := &Server{
		client: client,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "daemon_status",
		Description: "Show bridge daemon status: engine backend, toolkit, open display count, bound frame count, and uptime.",
	}, s.handleDaemonStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List open display connections, newest first, with geometry and reference counts.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_display",
		Description: "Open a new display connection on the daemon. Always creates a new connection, even under a name already in use; the new connection becomes the most recent.",
	}, s.handleOpenDisplay)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_display",
		Description: "Close a display connection by name. Fails while frames are still bound to it.",
	}, s.handleCloseDisplay)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_frames",
		Description: "List frames bound on the daemon with their grid and pixel geometry.",
	}, s.handleListFrames)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resolve_color",
		Description: "Resolve a color name or #RRGGBB spec to 16-bit channels and a 24-bit pixel value, the way the display engine sees it.",
	}, s.handleResolveColor)
}
