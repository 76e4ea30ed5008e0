package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/glyphbridge/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// NewClientWithSocket creates a client talking to an explicit socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// ListDisplays retrieves the open display connections, newest first
func (c *Client) ListDisplays() (*DisplaysData, error) {
	req := &Request{
		Command: CommandListDisplays,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data DisplaysData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse displays data: %w", err)
	}

	return &data, nil
}

// OpenDisplay opens a new display connection on the daemon.
func (c *Client) OpenDisplay(name string) (*DisplaysData, error) {
	payload, err := json.Marshal(DisplayPayload{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal display payload: %w", err)
	}

	req := &Request{
		Command: CommandOpenDisplay,
		Payload: payload,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data DisplaysData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse displays data: %w", err)
	}

	return &data, nil
}

// CloseDisplay closes a display connection by name.
func (c *Client) CloseDisplay(name string) error {
	payload, err := json.Marshal(DisplayPayload{Name: name})
	if err != nil {
		return fmt.Errorf("failed to marshal display payload: %w", err)
	}

	req := &Request{
		Command: CommandCloseDisplay,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// ListFrames retrieves the frames bound on the daemon
func (c *Client) ListFrames() (*FramesData, error) {
	req := &Request{
		Command: CommandListFrames,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data FramesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse frames data: %w", err)
	}

	return &data, nil
}

// ResolveColor asks the daemon to resolve a color name or #RRGGBB spec.
func (c *Client) ResolveColor(name string) (*ColorData, error) {
	payload, err := json.Marshal(ColorPayload{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal color payload: %w", err)
	}

	req := &Request{
		Command: CommandResolveColor,
		Payload: payload,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data ColorData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse color data: %w", err)
	}

	return &data, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
