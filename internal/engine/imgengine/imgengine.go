// Package imgengine renders frames into an RGBA image via the gg vector
// graphics library. Glyph rasterization belongs to the real display engine;
// this backend visualizes cell occupancy (glyph boxes, stretch fills, the
// cursor), which makes it the debugging surface for headless machines: every
// frame can be snapshotted to a PNG.
package imgengine

import (
	"image"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/1broseidon/glyphbridge/internal/engine"
)

func init() {
	engine.Register(engine.BackendImage, func(cfg engine.Config) (engine.Engine, error) {
		return New(cfg), nil
	})
}

// Colors for the occupancy view.
var (
	background = gg.RGB(1, 1, 1)
	glyphBox   = gg.RGB(0.82, 0.82, 0.9)
	stretchBox = gg.RGB(0.94, 0.94, 0.94)
)

// Engine draws one frame at a time into a gg context.
type Engine struct {
	ctx    *gg.Context
	logger *slog.Logger

	width  int
	height int

	penX       float64
	baseline   float64
	lineHeight float64

	closed bool
}

var _ engine.Engine = (*Engine)(nil)

// New builds an image engine sized per cfg. Zero dimensions fall back to
// 800x600.
func New(cfg engine.Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		width, height = 800, 600
	}
	return &Engine{
		ctx:        gg.NewContext(width, height),
		logger:     logger,
		width:      width,
		height:     height,
		lineHeight: 16,
	}
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return engine.BackendImage }

// Image returns the current frame contents.
func (e *Engine) Image() image.Image { return e.ctx.Image() }

// SavePNG writes the current frame contents to path.
func (e *Engine) SavePNG(path string) error { return e.ctx.SavePNG(path) }

// BeginFrame implements engine.Engine.
func (e *Engine) BeginFrame() {
	if e.closed {
		return
	}
	e.ctx.ClearWithColor(background)
	e.penX = 0
	e.baseline = e.lineHeight
}

// EndFrame implements engine.Engine. The raster is already complete; the
// frame stays available through Image and SavePNG until the next
// BeginFrame.
func (e *Engine) EndFrame() {}

// AddCharGlyph implements engine.Engine. The glyph's advance box is filled
// from ascent above the baseline to descent below it.
func (e *Engine) AddCharGlyph(ch rune, faceID, pixelWidth, ascent, descent int) {
	if e.closed {
		return
	}
	h := float64(ascent + descent)
	if h > e.lineHeight {
		e.lineHeight = h
	}
	e.ctx.SetColor(glyphBox.Color())
	e.ctx.DrawRectangle(e.penX, e.baseline-float64(ascent), float64(pixelWidth), h)
	_ = e.ctx.Fill()
	e.penX += float64(pixelWidth)
}

// AddStretchGlyph implements engine.Engine.
func (e *Engine) AddStretchGlyph(pixelWidth, height, faceID int) {
	if e.closed {
		return
	}
	e.ctx.SetColor(stretchBox.Color())
	e.ctx.DrawRectangle(e.penX, e.baseline-e.lineHeight, float64(pixelWidth), float64(height))
	_ = e.ctx.Fill()
	e.penX += float64(pixelWidth)
}

// SetCursor implements engine.Engine. Styles: 0 filled box, 1 bar, 2
// horizontal bar, 3 hollow box.
func (e *Engine) SetCursor(x, y, width, height float32, style int, color uint32, active bool) {
	if e.closed {
		return
	}
	e.ctx.SetRGB(
		float64(color>>16&0xff)/255,
		float64(color>>8&0xff)/255,
		float64(color&0xff)/255,
	)

	fx, fy := float64(x), float64(y)
	fw, fh := float64(width), float64(height)

	switch style {
	case 1: // bar
		e.ctx.DrawRectangle(fx, fy, 2, fh)
		_ = e.ctx.Fill()
	case 2: // horizontal bar
		e.ctx.DrawRectangle(fx, fy+fh-2, fw, 2)
		_ = e.ctx.Fill()
	case 3: // hollow box
		e.ctx.SetLineWidth(1)
		e.ctx.DrawRectangle(fx, fy, fw, fh)
		_ = e.ctx.Stroke()
	default: // filled box; an unfocused cursor renders hollow
		e.ctx.DrawRectangle(fx, fy, fw, fh)
		if active {
			_ = e.ctx.Fill()
		} else {
			e.ctx.SetLineWidth(1)
			_ = e.ctx.Stroke()
		}
	}
}

// Resize implements engine.Engine: the raster is rebuilt at the new size.
func (e *Engine) Resize(width, height int) {
	if e.closed || width <= 0 || height <= 0 {
		return
	}
	_ = e.ctx.Close()
	e.ctx = gg.NewContext(width, height)
	e.width = width
	e.height = height
}

// Shutdown implements engine.Engine.
func (e *Engine) Shutdown() {
	if e.closed {
		return
	}
	e.closed = true
	if err := e.ctx.Close(); err != nil {
		e.logger.Warn("image engine close", "error", err)
	}
}
