// Package display owns the process-wide set of display connections. Each
// connection holds exactly one engine handle plus display-wide defaults, and
// counts the live frames bound to it; the registry tracks open connections in
// most-recently-opened-first order.
package display

import (
	"errors"
	"fmt"

	"github.com/1broseidon/glyphbridge/internal/engine"
)

// Lifecycle errors.
var (
	// ErrEngineInit means engine handle creation failed. The open attempt
	// is abandoned and the registry is left untouched.
	ErrEngineInit = errors.New("display: engine initialization failed")

	// ErrBusy means close was attempted while frames are still bound.
	// Callers must unbind every frame first.
	ErrBusy = errors.New("display: frames still attached")

	// ErrClosed means a connection's engine was used after close.
	ErrClosed = errors.New("display: connection closed")

	// ErrNotATarget means a frame or terminal that does not belong to this
	// backend was passed to a bridge operation.
	ErrNotATarget = errors.New("display: not a glyphbridge target")

	// ErrNotFound means no connection matched a lookup.
	ErrNotFound = errors.New("display: no such display")
)

// Terminal is the back-reference to the host terminal object that owns a
// connection conceptually. The bridge stores it but never frees it.
type Terminal struct {
	ID   int
	Type string
	Name string
}

// TerminalType is the backend tag host terminals carry when they belong to
// this bridge.
const TerminalType = "glyphbridge"

// Connection is one open session with the display engine. It exclusively
// owns its engine handle: the handle is created on open, handed out only
// through Engine, and invalidated exactly once on close.
type Connection struct {
	name   string
	eng    engine.Engine // nil once closed
	closed bool

	// Display-wide defaults, set at open time.
	Width              int
	Height             int
	Planes             int
	BlackPixel         uint32
	WhitePixel         uint32
	BackgroundPixel    uint32
	SmallestCellWidth  int
	SmallestCellHeight int
	SupportsARGB       bool

	refCount     int
	terminal     *Terminal
	focusFrameID int // 0 = no frame focused
}

// Default display capabilities reported before a real engine negotiation.
const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultPlanes     = 24
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

func newConnection(name string, eng engine.Engine) *Connection {
	return &Connection{
		name:               name,
		eng:                eng,
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		Planes:             DefaultPlanes,
		BlackPixel:         0x000000,
		WhitePixel:         0xffffff,
		BackgroundPixel:    0xffffff,
		SmallestCellWidth:  DefaultCellWidth,
		SmallestCellHeight: DefaultCellHeight,
		SupportsARGB:       true,
	}
}

// Name returns the name the connection was opened under.
func (c *Connection) Name() string { return c.name }

// Engine returns the engine handle, or ErrClosed once the connection has
// been shut down. Callers must not cache the handle across a close.
func (c *Connection) Engine() (engine.Engine, error) {
	if c.closed {
		return nil, fmt.Errorf("%w: %s", ErrClosed, c.name)
	}
	return c.eng, nil
}

// RefCount returns the number of live frames bound to this connection.
func (c *Connection) RefCount() int { return c.refCount }

// Retain records one more frame bound to the connection. Called by frame
// binding under the input-blocked guard.
func (c *Connection) Retain() { c.refCount++ }

// Release records one frame unbound from the connection. Called exactly once
// per dying frame under the input-blocked guard.
func (c *Connection) Release() {
	if c.refCount > 0 {
		c.refCount--
	}
}

// Terminal returns the owning host terminal, or nil.
func (c *Connection) Terminal() *Terminal { return c.terminal }

// SetTerminal links the host terminal that owns this connection.
func (c *Connection) SetTerminal(t *Terminal) { c.terminal = t }

// FocusFrame returns the ID of the frame holding input focus, 0 for none.
func (c *Connection) FocusFrame() int { return c.focusFrameID }

// SetFocusFrame records which frame holds input focus.
func (c *Connection) SetFocusFrame(frameID int) { c.focusFrameID = frameID }

// close shuts the engine down and marks the handle invalid. The registry is
// the only caller; busy checks happen there under the guard.
func (c *Connection) close() {
	if c.closed {
		return
	}
	c.eng.Shutdown()
	c.eng = nil
	c.closed = true
}

// Info is one registry entry as reported to clients.
type Info struct {
	Name       string `json:"name"`
	Backend    string `json:"backend"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Planes      int    `json:"planes"`
	ColorCells  int    `json:"color_cells"`
	VisualClass string `json:"visual_class"`
	RefCount    int    `json:"ref_count"`
}

// Info snapshots the connection for status reporting.
func (c *Connection) Info() Info {
	info := Info{
		Name:        c.name,
		Width:       c.Width,
		Height:      c.Height,
		Planes:      c.Planes,
		ColorCells:  1 << c.Planes,
		VisualClass: "true-color",
		RefCount:    c.refCount,
	}
	if !c.closed {
		info.Backend = c.eng.Name()
	}
	return info
}
