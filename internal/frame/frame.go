// Package frame models the host editor's on-screen editing surfaces as seen
// by the bridge: per-frame geometry, the binding to a display connection, and
// the toolkit-driven resize and close-request paths.
package frame

import (
	"fmt"

	"github.com/1broseidon/glyphbridge/internal/blockinput"
	"github.com/1broseidon/glyphbridge/internal/display"
)

// Host is the editor side of the bridge. The bridge signals the host; it
// never tears frames down itself.
type Host interface {
	// ReflowFrame tells the host the frame's logical grid changed size and
	// its contents need to be laid out again.
	ReflowFrame(f *Frame, cols, rows int)

	// CloseRequested tells the host the user asked to close the frame.
	// The host decides whether the frame actually dies.
	CloseRequested(f *Frame)
}

// Frame is one host editing surface.
type Frame struct {
	id    int
	title string
	host  Host

	Cols int
	Rows int

	PixelWidth  int
	PixelHeight int
	CellWidth   int
	CellHeight  int

	garbaged bool
	binding  *Binding
}

// New creates an unbound frame.
func New(id int, title string, host Host) *Frame {
	return &Frame{id: id, title: title, host: host}
}

// ID returns the frame identifier assigned by the host.
func (f *Frame) ID() int { return f.id }

// Title returns the frame title.
func (f *Frame) Title() string { return f.title }

// SetTitle updates the stored title. Forwarding to the toolkit is the
// owner's job; the bridge only keeps the value.
func (f *Frame) SetTitle(title string) { f.title = title }

// Binding returns the frame's display binding, or nil while unbound.
func (f *Frame) Binding() *Binding { return f.binding }

// Garbaged reports whether the frame needs a full redraw (e.g. after an
// expose event).
func (f *Frame) Garbaged() bool { return f.garbaged }

// MarkGarbaged flags the frame for a full redraw.
func (f *Frame) MarkGarbaged() { f.garbaged = true }

// ClearGarbaged resets the redraw flag once the host has redisplayed.
func (f *Frame) ClearGarbaged() { f.garbaged = false }

// LineHeight returns the frame's cell height. Cursor and stretch drawing use
// it as the line height.
func (f *Frame) LineHeight() int { return f.CellHeight }

// Connection returns the frame's display connection, or ErrNotATarget when
// the frame is not bound to this backend.
func (f *Frame) Connection() (*display.Connection, error) {
	if f.binding == nil {
		return nil, fmt.Errorf("%w: frame %d is not bound", display.ErrNotATarget, f.id)
	}
	return f.binding.conn, nil
}

// Binding links a frame to its display connection. The connection reference
// is non-owning; the binding only moves the reference count. Widget and
// surface handles are opaque to the bridge: they are created, owned, and
// eventually destroyed by the toolkit layer, the bridge merely stores them.
type Binding struct {
	conn    *display.Connection
	widget  any
	surface any

	CursorPixel           uint32
	CursorForegroundPixel uint32
}

// Connection returns the bound display connection.
func (b *Binding) Connection() *display.Connection { return b.conn }

// Widget returns the opaque toolkit widget handle.
func (b *Binding) Widget() any { return b.widget }

// Surface returns the opaque toolkit drawing-surface handle.
func (b *Binding) Surface() any { return b.surface }

// SetWidgets stores the toolkit handles for the frame.
func (b *Binding) SetWidgets(widget, surface any) {
	b.widget = widget
	b.surface = surface
}

// Bind attaches f to conn and establishes provisional geometry: requested
// columns and rows times the display's smallest cell size. Real font metrics
// correct the cell size later; until then the provisional 8x16 cell keeps
// the pixel geometry usable. Increments the connection's reference count
// under the guard.
func Bind(f *Frame, conn *display.Connection, cols, rows int, guard *blockinput.Guard) (*Binding, error) {
	if f.binding != nil {
		return nil, fmt.Errorf("frame %d already bound to %s", f.id, f.binding.conn.Name())
	}
	if _, err := conn.Engine(); err != nil {
		return nil, err
	}

	b := &Binding{
		conn:                  conn,
		CursorPixel:           conn.BlackPixel,
		CursorForegroundPixel: conn.WhitePixel,
	}

	guard.With(func() {
		conn.Retain()
		f.binding = b
		f.Cols = cols
		f.Rows = rows
		f.CellWidth = conn.SmallestCellWidth
		f.CellHeight = conn.SmallestCellHeight
		f.PixelWidth = cols * f.CellWidth
		f.PixelHeight = rows * f.CellHeight
	})
	return b, nil
}

// Unbind releases the frame's hold on its connection. Called exactly once
// when the frame dies; the toolkit handles stay untouched because their
// destruction belongs to the toolkit layer.
func (f *Frame) Unbind(guard *blockinput.Guard) {
	if f.binding == nil {
		return
	}
	guard.With(func() {
		f.binding.conn.Release()
		f.binding = nil
	})
}

// HandleResize reacts to a toolkit surface-size change: the engine learns the
// new pixel size, and the host is asked to reflow only when the derived
// column or row count actually changed. Pixel-only resizes (same cell grid)
// must not trigger redundant reflows.
func (f *Frame) HandleResize(pixelWidth, pixelHeight int) error {
	conn, err := f.Connection()
	if err != nil {
		return err
	}
	eng, err := conn.Engine()
	if err != nil {
		return err
	}

	eng.Resize(pixelWidth, pixelHeight)
	f.PixelWidth = pixelWidth
	f.PixelHeight = pixelHeight

	if f.CellWidth <= 0 || f.CellHeight <= 0 {
		return fmt.Errorf("frame %d has no cell size", f.id)
	}

	newCols := pixelWidth / f.CellWidth
	newRows := pixelHeight / f.CellHeight
	if newCols != f.Cols || newRows != f.Rows {
		f.Cols = newCols
		f.Rows = newRows
		f.host.ReflowFrame(f, newCols, newRows)
	}
	return nil
}

// HandleCloseRequest forwards a toolkit close request to the host. The
// return value is always true: the toolkit must treat the request as handled
// so its default close path never runs and the host stays the single
// authority over frame teardown.
func (f *Frame) HandleCloseRequest() bool {
	f.host.CloseRequested(f)
	return true
}
