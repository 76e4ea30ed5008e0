package engine

import "log/slog"

// Op identifies one recorded engine command.
type Op string

const (
	OpBeginFrame Op = "begin_frame"
	OpEndFrame   Op = "end_frame"
	OpCharGlyph  Op = "add_char_glyph"
	OpStretch    Op = "add_stretch_glyph"
	OpSetCursor  Op = "set_cursor"
	OpResize     Op = "resize"
	OpShutdown   Op = "shutdown"
)

// Command is one engine call with its full parameters, in issue order.
type Command struct {
	Op Op

	Ch      rune
	FaceID  int
	Width   int
	Height  int
	Ascent  int
	Descent int

	X, Y   float32
	W, H   float32
	Style  int
	Color  uint32
	Active bool
}

// Recorder is the in-memory engine backend. It retains every command in
// order, which makes it both the headless default and the reference engine
// for tests: ordering and parameter assertions run against its log.
type Recorder struct {
	width  int
	height int
	logger *slog.Logger

	commands []Command
	closed   bool
}

var _ Engine = (*Recorder)(nil)

// NewRecorder builds a recording engine sized per cfg.
func NewRecorder(cfg Config) *Recorder {
	return &Recorder{
		width:  cfg.Width,
		height: cfg.Height,
		logger: cfg.logger(),
	}
}

// Name implements Engine.
func (r *Recorder) Name() string { return BackendRecord }

// Commands returns the recorded command log.
func (r *Recorder) Commands() []Command { return r.commands }

// Reset clears the recorded log. Sizing and liveness are untouched.
func (r *Recorder) Reset() { r.commands = nil }

// Closed reports whether Shutdown ran.
func (r *Recorder) Closed() bool { return r.closed }

// Size returns the last surface size the engine was told about.
func (r *Recorder) Size() (width, height int) { return r.width, r.height }

func (r *Recorder) BeginFrame() {
	r.record(Command{Op: OpBeginFrame})
}

func (r *Recorder) EndFrame() {
	r.record(Command{Op: OpEndFrame})
}

func (r *Recorder) AddCharGlyph(ch rune, faceID, pixelWidth, ascent, descent int) {
	r.record(Command{
		Op:      OpCharGlyph,
		Ch:      ch,
		FaceID:  faceID,
		Width:   pixelWidth,
		Ascent:  ascent,
		Descent: descent,
	})
}

func (r *Recorder) AddStretchGlyph(pixelWidth, height, faceID int) {
	r.record(Command{
		Op:     OpStretch,
		Width:  pixelWidth,
		Height: height,
		FaceID: faceID,
	})
}

func (r *Recorder) SetCursor(x, y, width, height float32, style int, color uint32, active bool) {
	r.record(Command{
		Op:     OpSetCursor,
		X:      x,
		Y:      y,
		W:      width,
		H:      height,
		Style:  style,
		Color:  color,
		Active: active,
	})
}

func (r *Recorder) Resize(width, height int) {
	r.width = width
	r.height = height
	r.record(Command{Op: OpResize, Width: width, Height: height})
}

func (r *Recorder) Shutdown() {
	if r.closed {
		return
	}
	r.record(Command{Op: OpShutdown})
	r.closed = true
	r.logger.Debug("record engine shut down", "commands", len(r.commands))
}

func (r *Recorder) record(cmd Command) {
	if r.closed {
		return
	}
	r.commands = append(r.commands, cmd)
}
