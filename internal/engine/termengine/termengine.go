// Package termengine renders the editor grid into a terminal via tcell. It
// is the cheapest real surface the bridge can drive: character glyphs land
// in terminal cells, stretch glyphs become blank runs, and the cursor maps
// onto the terminal cursor.
package termengine

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/1broseidon/glyphbridge/internal/engine"
)

func init() {
	engine.Register(engine.BackendTcell, func(cfg engine.Config) (engine.Engine, error) {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("tcell screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, fmt.Errorf("tcell init: %w", err)
		}
		return NewWithScreen(screen, cfg), nil
	})
}

// Engine drives one tcell screen. Pixel coordinates from the bridge are
// divided by the provisional cell size to find terminal cells; the engine
// owns the pen, which BeginFrame resets to the grid origin and each glyph
// advances left to right.
type Engine struct {
	screen tcell.Screen
	logger *slog.Logger

	cellWidth  int
	cellHeight int

	penCol int
	penRow int

	cursorCol     int
	cursorRow     int
	cursorVisible bool

	closed bool
}

var _ engine.Engine = (*Engine)(nil)

// NewWithScreen wraps an initialized screen. Tests pass a tcell
// SimulationScreen here.
func NewWithScreen(screen tcell.Screen, cfg engine.Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		screen:     screen,
		logger:     logger,
		cellWidth:  8,
		cellHeight: 16,
	}
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return engine.BackendTcell }

// BeginFrame implements engine.Engine.
func (e *Engine) BeginFrame() {
	if e.closed {
		return
	}
	e.penCol = 0
	e.penRow = 0
}

// EndFrame implements engine.Engine. The accumulated cells reach the
// terminal here.
func (e *Engine) EndFrame() {
	if e.closed {
		return
	}
	e.screen.Show()
}

// AddCharGlyph implements engine.Engine.
func (e *Engine) AddCharGlyph(ch rune, faceID, pixelWidth, ascent, descent int) {
	if e.closed {
		return
	}
	e.screen.SetContent(e.penCol, e.penRow, ch, nil, tcell.StyleDefault)
	e.penCol += e.cells(pixelWidth)
}

// AddStretchGlyph implements engine.Engine. The stretch becomes a run of
// blank cells.
func (e *Engine) AddStretchGlyph(pixelWidth, height, faceID int) {
	if e.closed {
		return
	}
	for i := 0; i < e.cells(pixelWidth); i++ {
		e.screen.SetContent(e.penCol, e.penRow, ' ', nil, tcell.StyleDefault)
		e.penCol++
	}
}

// SetCursor implements engine.Engine. The terminal has one cursor, so each
// call fully replaces the previous state.
func (e *Engine) SetCursor(x, y, width, height float32, style int, color uint32, active bool) {
	if e.closed {
		return
	}
	e.cursorCol = int(x) / e.cellWidth
	e.cursorRow = int(y) / e.cellHeight
	e.cursorVisible = true
	e.screen.ShowCursor(e.cursorCol, e.cursorRow)
	e.screen.SetCursorStyle(cursorStyle(style, active))
}

// Cursor returns the last cursor cell and whether a cursor is shown.
func (e *Engine) Cursor() (col, row int, visible bool) {
	return e.cursorCol, e.cursorRow, e.cursorVisible
}

// Resize implements engine.Engine. The terminal dictates its own size; the
// request is only logged.
func (e *Engine) Resize(width, height int) {
	e.logger.Debug("terminal ignores surface resize", "width", width, "height", height)
}

// Shutdown implements engine.Engine.
func (e *Engine) Shutdown() {
	if e.closed {
		return
	}
	e.closed = true
	e.screen.Fini()
}

// cells converts a pixel advance to a cell count, at least one cell per
// glyph so ordering survives rounding.
func (e *Engine) cells(pixelWidth int) int {
	n := pixelWidth / e.cellWidth
	if n < 1 {
		n = 1
	}
	return n
}

func cursorStyle(style int, active bool) tcell.CursorStyle {
	switch style {
	case 1:
		if active {
			return tcell.CursorStyleBlinkingBar
		}
		return tcell.CursorStyleSteadyBar
	case 2:
		if active {
			return tcell.CursorStyleBlinkingUnderline
		}
		return tcell.CursorStyleSteadyUnderline
	default:
		// Filled and hollow box both map to the block cursor; terminals
		// have no hollow variant.
		if active {
			return tcell.CursorStyleBlinkingBlock
		}
		return tcell.CursorStyleSteadyBlock
	}
}
