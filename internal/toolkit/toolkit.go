// Package toolkit abstracts the windowing layer that hosts frame surfaces.
// The bridge owns opaque widget handles but never interprets or destroys
// them: window creation, event delivery, and destruction ordering belong to
// the toolkit and the host. Implementations deliver resize, close-request,
// expose, and focus notifications through FrameEvents callbacks.
package toolkit

import "context"

// FrameEvents is the callback set a frame registers at widget creation.
// Callbacks run on the toolkit's event thread and must not block.
type FrameEvents struct {
	// OnResize is called with the new surface size in device pixels.
	OnResize func(pixelWidth, pixelHeight int)

	// OnCloseRequest is called when the user asks to close the window.
	// The return value must be true ("handled") so the toolkit never runs
	// its own default close; teardown stays with the host.
	OnCloseRequest func() bool

	// OnExpose is called when the surface needs a full redraw.
	OnExpose func()

	// OnFocus is called when the window gains (in=true) or loses focus.
	OnFocus func(in bool)
}

// Widgets carries the opaque handles for one frame. The bridge stores them
// on the frame binding and hands them back to the toolkit for operations
// like SetTitle.
type Widgets struct {
	Window  any
	Surface any
}

// Toolkit creates and manages frame widgets.
type Toolkit interface {
	// Name returns the toolkit identifier (e.g. "headless", "x11").
	Name() string

	// CreateFrameWidgets creates the window and drawing surface for one
	// frame and wires ev to its events.
	CreateFrameWidgets(title string, pixelWidth, pixelHeight int, ev FrameEvents) (Widgets, error)

	// SetTitle updates the window title.
	SetTitle(w Widgets, title string) error

	// Run delivers events until ctx is cancelled.
	Run(ctx context.Context) error

	// Close disconnects from the window system. Frame widgets are not
	// destroyed here; their teardown is driven by the host.
	Close()
}
