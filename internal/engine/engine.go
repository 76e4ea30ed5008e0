// Package engine defines the boundary to the external display engine. The
// bridge treats an engine as an opaque handle accepting a small command set;
// implementations live behind a backend registry so the daemon can select a
// terminal, image, or recording engine at startup.
package engine

import (
	"errors"
	"log/slog"
)

// Common engine errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or cannot run in this environment.
	ErrBackendNotAvailable = errors.New("engine: backend not available")

	// ErrInitFailed is returned when a backend fails to produce a handle.
	ErrInitFailed = errors.New("engine: initialization failed")
)

// Engine is one live engine handle. A handle is exclusively owned by a single
// display connection: it is created by a backend factory, driven by the
// redisplay hooks, and destroyed exactly once by Shutdown. None of the calls
// block; the engine is free to coalesce work internally until EndFrame.
type Engine interface {
	// Name returns the backend identifier (e.g. "record", "tcell").
	Name() string

	// BeginFrame opens an update bracket. Draw commands issued until the
	// matching EndFrame belong to one batch.
	BeginFrame()

	// EndFrame closes the update bracket. The engine may submit the
	// accumulated batch here.
	EndFrame()

	// AddCharGlyph appends one character glyph to the current batch.
	// Glyphs accumulate left to right; the engine owns layout.
	AddCharGlyph(ch rune, faceID, pixelWidth, ascent, descent int)

	// AddStretchGlyph appends one stretch (whitespace/background fill)
	// glyph to the current batch.
	AddStretchGlyph(pixelWidth, height, faceID int)

	// SetCursor replaces the cursor state for the surface. It is not
	// additive: each call fully supersedes the previous cursor.
	SetCursor(x, y, width, height float32, style int, color uint32, active bool)

	// Resize tells the engine the surface pixel size changed.
	Resize(width, height int)

	// Shutdown destroys the handle. The handle must not be used after
	// Shutdown returns.
	Shutdown()
}

// Config carries the parameters a backend factory needs to build a handle.
type Config struct {
	// Width and Height are the initial surface size in device pixels.
	Width  int
	Height int

	// Logger receives backend diagnostics. Nil disables logging.
	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
