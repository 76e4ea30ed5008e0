package render

import "github.com/1broseidon/glyphbridge/internal/engine"

// CursorKind is the host's logical cursor shape.
type CursorKind int

const (
	CursorDefault CursorKind = iota
	CursorFilledBox
	CursorBar
	CursorHBar
	CursorHollowBox
	CursorNone
)

// Engine style codes for each cursor kind.
const (
	styleFilledBox = 0
	styleBar       = 1
	styleHBar      = 2
	styleHollowBox = 3
)

// CursorParams describes one cursor draw request from the host.
type CursorParams struct {
	Kind CursorKind
	X    int
	Y    int

	// Width is the explicit cursor width in pixels; zero or negative means
	// "use the frame's cell width".
	Width int

	// On is the blink phase: when false nothing is drawn.
	On bool

	// Active distinguishes the focused frame's cursor from unfocused ones
	// (e.g. solid vs. outline). Forwarded to the engine untouched.
	Active bool

	// Color is the resolved cursor pixel.
	Color uint32
}

// cursorStyle maps a kind to its engine style code. The second return is
// false for CursorNone and unknown kinds.
func cursorStyle(kind CursorKind) (int, bool) {
	switch kind {
	case CursorDefault, CursorFilledBox:
		return styleFilledBox, true
	case CursorBar:
		return styleBar, true
	case CursorHBar:
		return styleHBar, true
	case CursorHollowBox:
		return styleHollowBox, true
	default:
		return 0, false
	}
}

// DrawCursor emits at most one SetCursor command: nothing for CursorNone or
// a blinked-off cursor, otherwise a single command that fully replaces the
// engine's previous cursor state for the surface. Height is always the
// frame's line height. Returns whether a command was emitted.
func DrawCursor(eng engine.Engine, p CursorParams, cellWidth, lineHeight int) bool {
	if !p.On {
		return false
	}
	style, ok := cursorStyle(p.Kind)
	if !ok {
		return false
	}

	width := p.Width
	if width <= 0 {
		width = cellWidth
	}

	eng.SetCursor(float32(p.X), float32(p.Y),
		float32(width), float32(lineHeight),
		style, p.Color, p.Active)
	return true
}
