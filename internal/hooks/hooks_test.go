package hooks

import (
	"errors"
	"testing"

	"github.com/1broseidon/glyphbridge/internal/blockinput"
	"github.com/1broseidon/glyphbridge/internal/display"
	"github.com/1broseidon/glyphbridge/internal/engine"
	"github.com/1broseidon/glyphbridge/internal/frame"
	"github.com/1broseidon/glyphbridge/internal/render"
)

type silentHost struct{}

func (silentHost) ReflowFrame(*frame.Frame, int, int) {}
func (silentHost) CloseRequested(*frame.Frame)        {}

func boundFrame(t *testing.T) (*frame.Frame, *engine.Recorder, *Bridge) {
	t.Helper()
	guard := &blockinput.Guard{}
	reg := display.NewRegistry(display.RegistryConfig{
		Guard: guard,
		OpenEngine: func() (engine.Engine, error) {
			return engine.NewRecorder(engine.Config{}), nil
		},
	})
	conn, err := reg.Open(":0")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	f := frame.New(1, "scratch", silentHost{})
	if _, err := frame.Bind(f, conn, 80, 36, guard); err != nil {
		t.Fatalf("bind: %v", err)
	}
	eng, _ := conn.Engine()
	return f, eng.(*engine.Recorder), NewBridge(guard, nil)
}

func TestUpdateBracketForwardedInOrder(t *testing.T) {
	f, rec, b := boundFrame(t)

	if err := b.UpdateBegin(f); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := b.DrawGlyphRun(f, render.Run{
		FaceID: 1,
		Glyphs: []render.Glyph{{Kind: render.GlyphChar, Ch: 'x', PixelWidth: 8}},
	}); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := b.UpdateEnd(f); err != nil {
		t.Fatalf("end: %v", err)
	}

	want := []engine.Op{engine.OpBeginFrame, engine.OpCharGlyph, engine.OpEndFrame}
	cmds := rec.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(cmds))
	}
	for i, op := range want {
		if cmds[i].Op != op {
			t.Errorf("command %d: expected %s, got %s", i, op, cmds[i].Op)
		}
	}
}

func TestDrawCursorUsesBindingColorAndCellGeometry(t *testing.T) {
	f, rec, b := boundFrame(t)
	f.Binding().CursorPixel = 0xbada55

	emitted, err := b.DrawCursor(f, render.CursorBar, 24, 48, 0, true, true)
	if err != nil {
		t.Fatalf("cursor: %v", err)
	}
	if !emitted {
		t.Fatal("expected a cursor command")
	}
	cmd := rec.Commands()[0]
	if cmd.Color != 0xbada55 {
		t.Fatalf("expected binding cursor color, got %#06x", cmd.Color)
	}
	if cmd.W != float32(f.CellWidth) || cmd.H != float32(f.LineHeight()) {
		t.Fatalf("expected cell geometry %dx%d, got %gx%g",
			f.CellWidth, f.LineHeight(), cmd.W, cmd.H)
	}
	if cmd.Style != 1 {
		t.Fatalf("expected bar style 1, got %d", cmd.Style)
	}
}

func TestDrawCursorNoneEmitsNothing(t *testing.T) {
	f, rec, b := boundFrame(t)

	emitted, err := b.DrawCursor(f, render.CursorNone, 0, 0, 0, true, true)
	if err != nil {
		t.Fatalf("cursor: %v", err)
	}
	if emitted || len(rec.Commands()) != 0 {
		t.Fatal("cursor none must not reach the engine")
	}
}

func TestHooksRejectUnboundFrame(t *testing.T) {
	_, _, b := boundFrame(t)
	stray := frame.New(99, "stray", silentHost{})

	if err := b.UpdateBegin(stray); !errors.Is(err, display.ErrNotATarget) {
		t.Fatalf("begin: expected ErrNotATarget, got %v", err)
	}
	if _, err := b.DrawGlyphRun(stray, render.Run{}); !errors.Is(err, display.ErrNotATarget) {
		t.Fatalf("draw: expected ErrNotATarget, got %v", err)
	}
	if err := b.Scroll(stray, ScrollRegion{}); !errors.Is(err, display.ErrNotATarget) {
		t.Fatalf("scroll: expected ErrNotATarget, got %v", err)
	}
}

func TestScrollAndClearAreaAreAcceptedNoOps(t *testing.T) {
	f, rec, b := boundFrame(t)

	if err := b.Scroll(f, ScrollRegion{Rect: Rect{Y: 16, Width: 640, Height: 320}, Dy: -16}); err != nil {
		t.Fatalf("scroll: %v", err)
	}
	if err := b.ClearArea(f, Rect{Width: 640, Height: 16}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(rec.Commands()) != 0 {
		t.Fatalf("stub hooks must not emit engine commands, saw %d", len(rec.Commands()))
	}
}

func TestFocusFrameRecordsFocus(t *testing.T) {
	f, _, b := boundFrame(t)

	b.FocusFrame(f, false)
	conn, _ := f.Connection()
	if conn.FocusFrame() != f.ID() {
		t.Fatalf("expected focus frame %d, got %d", f.ID(), conn.FocusFrame())
	}
}
