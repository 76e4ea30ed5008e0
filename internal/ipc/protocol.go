package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/glyphbridge/internal/display"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandListDisplays CommandType = "LIST_DISPLAYS"
	CommandOpenDisplay  CommandType = "OPEN_DISPLAY"
	CommandCloseDisplay CommandType = "CLOSE_DISPLAY"
	CommandListFrames   CommandType = "LIST_FRAMES"
	CommandResolveColor CommandType = "RESOLVE_COLOR"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	EngineBackend string `json:"engine_backend"`
	Toolkit       string `json:"toolkit"`
	DisplayCount  int    `json:"display_count"`
	FrameCount    int    `json:"frame_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// DisplaysData represents the data returned by LIST_DISPLAYS, newest first
type DisplaysData struct {
	Displays []display.Info `json:"displays"`
}

// DisplayPayload names a display for OPEN_DISPLAY / CLOSE_DISPLAY
type DisplayPayload struct {
	Name string `json:"name"`
}

// FrameInfo represents one frame binding
type FrameInfo struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Display     string `json:"display"`
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
	PixelWidth  int    `json:"pixel_width"`
	PixelHeight int    `json:"pixel_height"`
	Focused     bool   `json:"focused"`
}

// FramesData represents the data returned by LIST_FRAMES
type FramesData struct {
	Frames []FrameInfo `json:"frames"`
}

// ColorPayload names a color for RESOLVE_COLOR
type ColorPayload struct {
	Name string `json:"name"`
}

// ColorData represents one resolved color
type ColorData struct {
	Red   uint16 `json:"red"`
	Green uint16 `json:"green"`
	Blue  uint16 `json:"blue"`
	Pixel uint32 `json:"pixel"`
}

// ParseRequest decodes a request from raw JSON
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid request JSON: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("request has no command")
	}
	return &req, nil
}

// Marshal encodes the response as JSON
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// OKResponse builds an OK response with the given data payload
func OKResponse(data any) (*Response, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}
	return &Response{Status: "OK", Data: raw}, nil
}

// ErrorResponse builds an ERROR response
func ErrorResponse(msg string) *Response {
	return &Response{Status: "ERROR", Error: msg}
}
