// Package hooks is the dispatch surface the host editor's redisplay calls
// into. The hook table is a capability record: Base supplies default no-op
// implementations so a backend only overrides what it supports, and Bridge is
// the table wired to the display engine.
package hooks

import (
	"log/slog"

	"github.com/1broseidon/glyphbridge/internal/blockinput"
	"github.com/1broseidon/glyphbridge/internal/frame"
	"github.com/1broseidon/glyphbridge/internal/render"
)

// Rect is a pixel rectangle on a frame.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ScrollRegion describes a scrolled window run: the affected rectangle and
// its vertical displacement in pixels.
type ScrollRegion struct {
	Rect
	Dy int
}

// Table is the set of redisplay hooks the host calls. Every method must be
// safe to invoke synchronously from the host's single UI thread and must not
// block.
type Table interface {
	// UpdateBegin opens the frame's update bracket. Every successful
	// UpdateBegin must be matched by exactly one UpdateEnd; the host
	// guarantees pairing via scoped acquisition.
	UpdateBegin(f *frame.Frame) error

	// UpdateEnd closes the frame's update bracket. The engine may submit
	// the accumulated draw commands here.
	UpdateEnd(f *frame.Frame) error

	// FlushDisplay hints that pending output should reach the screen. It
	// is only a hint: outside an update bracket the engine may coalesce
	// and is not obligated to flush synchronously.
	FlushDisplay(f *frame.Frame)

	// DrawGlyphRun translates one glyph run into engine commands,
	// preserving input order. Returns the number of commands emitted.
	DrawGlyphRun(f *frame.Frame, run render.Run) (int, error)

	// DrawCursor replaces the frame's cursor. kind none or on=false draws
	// nothing. active distinguishes focused from unfocused rendering.
	DrawCursor(f *frame.Frame, kind render.CursorKind, x, y, width int, on, active bool) (bool, error)

	// Scroll shifts a window region. Backends without scroll support
	// accept and ignore it.
	Scroll(f *frame.Frame, region ScrollRegion) error

	// ClearArea clears a frame rectangle. Backends may ignore it when the
	// engine clears internally.
	ClearArea(f *frame.Frame, area Rect) error

	// FocusFrame records f as the focused frame on its connection.
	FocusFrame(f *frame.Frame, raise bool)
}

// Base is the default hook table: every operation is accepted and does
// nothing. Concrete tables embed Base and override the hooks they implement.
type Base struct{}

var _ Table = Base{}

func (Base) UpdateBegin(*frame.Frame) error  { return nil }
func (Base) UpdateEnd(*frame.Frame) error    { return nil }
func (Base) FlushDisplay(*frame.Frame)       {}
func (Base) DrawGlyphRun(*frame.Frame, render.Run) (int, error) {
	return 0, nil
}
func (Base) DrawCursor(*frame.Frame, render.CursorKind, int, int, int, bool, bool) (bool, error) {
	return false, nil
}
func (Base) Scroll(*frame.Frame, ScrollRegion) error { return nil }
func (Base) ClearArea(*frame.Frame, Rect) error      { return nil }
func (Base) FocusFrame(*frame.Frame, bool)           {}

// Bridge is the engine-wired hook table.
type Bridge struct {
	Base

	guard  *blockinput.Guard
	logger *slog.Logger
}

// NewBridge builds the hook table. logger may be nil.
func NewBridge(guard *blockinput.Guard, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bridge{guard: guard, logger: logger}
}

var _ Table = (*Bridge)(nil)

// UpdateBegin implements Table.
func (b *Bridge) UpdateBegin(f *frame.Frame) error {
	conn, err := f.Connection()
	if err != nil {
		return err
	}
	eng, err := conn.Engine()
	if err != nil {
		return err
	}
	eng.BeginFrame()
	return nil
}

// UpdateEnd implements Table.
func (b *Bridge) UpdateEnd(f *frame.Frame) error {
	conn, err := f.Connection()
	if err != nil {
		return err
	}
	eng, err := conn.Engine()
	if err != nil {
		return err
	}
	eng.EndFrame()
	return nil
}

// FlushDisplay implements Table. The engine flushes internally; the hint is
// only logged.
func (b *Bridge) FlushDisplay(f *frame.Frame) {
	b.logger.Debug("flush hint", "frame", f.ID())
}

// DrawGlyphRun implements Table.
func (b *Bridge) DrawGlyphRun(f *frame.Frame, run render.Run) (int, error) {
	conn, err := f.Connection()
	if err != nil {
		return 0, err
	}
	eng, err := conn.Engine()
	if err != nil {
		return 0, err
	}
	return render.TranslateRun(eng, run, f.LineHeight()), nil
}

// DrawCursor implements Table. The cursor color comes from the frame
// binding; geometry defaults come from the frame's cell metrics.
func (b *Bridge) DrawCursor(f *frame.Frame, kind render.CursorKind, x, y, width int, on, active bool) (bool, error) {
	conn, err := f.Connection()
	if err != nil {
		return false, err
	}
	eng, err := conn.Engine()
	if err != nil {
		return false, err
	}
	p := render.CursorParams{
		Kind:   kind,
		X:      x,
		Y:      y,
		Width:  width,
		On:     on,
		Active: active,
		Color:  f.Binding().CursorPixel,
	}
	return render.DrawCursor(eng, p, f.CellWidth, f.LineHeight()), nil
}

// Scroll implements Table. The engine repaints scrolled regions itself, so
// the run is accepted and dropped.
func (b *Bridge) Scroll(f *frame.Frame, region ScrollRegion) error {
	if _, err := f.Connection(); err != nil {
		return err
	}
	b.logger.Debug("scroll accepted", "frame", f.ID(), "dy", region.Dy)
	return nil
}

// ClearArea implements Table. Clearing happens inside the engine.
func (b *Bridge) ClearArea(f *frame.Frame, area Rect) error {
	_, err := f.Connection()
	return err
}

// FocusFrame implements Table.
func (b *Bridge) FocusFrame(f *frame.Frame, raise bool) {
	conn, err := f.Connection()
	if err != nil {
		b.logger.Warn("focus on unbound frame", "frame", f.ID())
		return
	}
	b.guard.With(func() {
		conn.SetFocusFrame(f.ID())
	})
}
