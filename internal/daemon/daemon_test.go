package daemon

import (
	"errors"
	"testing"

	"github.com/1broseidon/glyphbridge/internal/config"
	"github.com/1broseidon/glyphbridge/internal/display"
	"github.com/1broseidon/glyphbridge/internal/toolkit"
)

func testCore(t *testing.T) (*Core, *toolkit.Headless) {
	t.Helper()
	cfg := config.Default()
	tk := toolkit.NewHeadless()
	return NewCore(cfg, tk, nil), tk
}

func TestCreateFrameBindsDefaultGeometry(t *testing.T) {
	core, _ := testCore(t)

	f, err := core.CreateFrame("scratch", "")
	if err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}
	if f.Cols != 80 || f.Rows != 36 {
		t.Errorf("grid = %dx%d, want 80x36", f.Cols, f.Rows)
	}
	if f.PixelWidth != 640 || f.PixelHeight != 576 {
		t.Errorf("pixels = %dx%d, want 640x576", f.PixelWidth, f.PixelHeight)
	}

	conn, err := f.Connection()
	if err != nil {
		t.Fatalf("Connection() error: %v", err)
	}
	if conn.Name() != ":0" {
		t.Errorf("display = %q, want %q", conn.Name(), ":0")
	}
	if conn.RefCount() != 1 {
		t.Errorf("RefCount = %d, want 1", conn.RefCount())
	}
	if f.Binding().Widget() == nil {
		t.Error("frame has no toolkit widget")
	}
}

func TestStatusCounts(t *testing.T) {
	core, _ := testCore(t)

	if _, err := core.CreateFrame("a", ""); err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}
	if _, err := core.CreateFrame("b", ""); err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}

	status := core.Status()
	if status.EngineBackend != "record" {
		t.Errorf("EngineBackend = %q, want %q", status.EngineBackend, "record")
	}
	if status.Toolkit != "headless" {
		t.Errorf("Toolkit = %q, want %q", status.Toolkit, "headless")
	}
	if status.DisplayCount != 1 {
		t.Errorf("DisplayCount = %d, want 1 (both frames share the default)", status.DisplayCount)
	}
	if status.FrameCount != 2 {
		t.Errorf("FrameCount = %d, want 2", status.FrameCount)
	}
}

func TestCloseDisplayBusyUntilFramesGone(t *testing.T) {
	core, _ := testCore(t)

	f, err := core.CreateFrame("scratch", "")
	if err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}

	err = core.CloseDisplay(":0")
	if !errors.Is(err, display.ErrBusy) {
		t.Fatalf("CloseDisplay() = %v, want ErrBusy", err)
	}

	core.DeleteFrame(f)
	if err := core.CloseDisplay(":0"); err != nil {
		t.Fatalf("CloseDisplay() after delete error: %v", err)
	}
	if core.Registry().Len() != 0 {
		t.Errorf("registry len = %d, want 0", core.Registry().Len())
	}
}

func TestOpenDisplayAlwaysCreatesNew(t *testing.T) {
	core, _ := testCore(t)

	if _, err := core.OpenDisplay(":0"); err != nil {
		t.Fatalf("OpenDisplay() error: %v", err)
	}
	data, err := core.OpenDisplay(":0")
	if err != nil {
		t.Fatalf("OpenDisplay() error: %v", err)
	}
	if len(data.Displays) != 2 {
		t.Errorf("got %d displays, want 2 independent connections", len(data.Displays))
	}
}

func TestCreateFrameReusesNamedDisplay(t *testing.T) {
	core, _ := testCore(t)

	f1, err := core.CreateFrame("a", ":1")
	if err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}
	f2, err := core.CreateFrame("b", ":1")
	if err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}

	c1, _ := f1.Connection()
	c2, _ := f2.Connection()
	if c1 != c2 {
		t.Error("frames on the same named display got different connections")
	}
	if core.Registry().Len() != 1 {
		t.Errorf("registry len = %d, want 1", core.Registry().Len())
	}
}

func TestToolkitResizeReachesFrame(t *testing.T) {
	core, tk := testCore(t)

	f, err := core.CreateFrame("scratch", "")
	if err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}
	id := f.Binding().Widget().(int)

	tk.DeliverResize(id, 648, 576)
	if f.Cols != 81 {
		t.Errorf("Cols = %d after resize, want 81", f.Cols)
	}
	if f.PixelWidth != 648 {
		t.Errorf("PixelWidth = %d, want 648", f.PixelWidth)
	}
}

func TestToolkitCloseRequestDeletesFrame(t *testing.T) {
	core, tk := testCore(t)

	f, err := core.CreateFrame("scratch", "")
	if err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}
	conn, _ := f.Connection()
	id := f.Binding().Widget().(int)

	if handled := tk.DeliverCloseRequest(id); !handled {
		t.Error("close request not reported handled")
	}
	if core.FrameByID(f.ID()) != nil {
		t.Error("frame still in table after close request")
	}
	if conn.RefCount() != 0 {
		t.Errorf("RefCount = %d after close, want 0", conn.RefCount())
	}
}

func TestToolkitExposeMarksGarbaged(t *testing.T) {
	core, tk := testCore(t)

	f, err := core.CreateFrame("scratch", "")
	if err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}
	id := f.Binding().Widget().(int)

	if f.Garbaged() {
		t.Fatal("new frame already garbaged")
	}
	tk.DeliverExpose(id)
	if !f.Garbaged() {
		t.Error("frame not garbaged after expose")
	}
}

func TestFocusTracking(t *testing.T) {
	core, tk := testCore(t)

	f, err := core.CreateFrame("scratch", "")
	if err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}
	conn, _ := f.Connection()
	id := f.Binding().Widget().(int)

	tk.DeliverFocus(id, true)
	if conn.FocusFrame() != f.ID() {
		t.Errorf("FocusFrame = %d, want %d", conn.FocusFrame(), f.ID())
	}

	frames := core.ListFrames()
	if len(frames.Frames) != 1 || !frames.Frames[0].Focused {
		t.Error("ListFrames does not report the frame focused")
	}

	tk.DeliverFocus(id, false)
	if conn.FocusFrame() != 0 {
		t.Errorf("FocusFrame = %d after focus out, want 0", conn.FocusFrame())
	}
}

func TestSetFrameTitle(t *testing.T) {
	core, tk := testCore(t)

	f, err := core.CreateFrame("old", "")
	if err != nil {
		t.Fatalf("CreateFrame() error: %v", err)
	}
	if err := core.SetFrameTitle(f, "new"); err != nil {
		t.Fatalf("SetFrameTitle() error: %v", err)
	}
	if f.Title() != "new" {
		t.Errorf("Title = %q, want %q", f.Title(), "new")
	}
	id := f.Binding().Widget().(int)
	if got := tk.Title(id); got != "new" {
		t.Errorf("toolkit title = %q, want %q", got, "new")
	}
}

func TestResolveColor(t *testing.T) {
	core, _ := testCore(t)

	col, err := core.ResolveColor("#ff0000")
	if err != nil {
		t.Fatalf("ResolveColor() error: %v", err)
	}
	if col.Pixel != 0xff0000 {
		t.Errorf("Pixel = %#06x, want 0xff0000", col.Pixel)
	}
	if col.Red != 0xffff || col.Green != 0 {
		t.Errorf("channels = %#04x/%#04x, want ffff/0000", col.Red, col.Green)
	}

	if _, err := core.ResolveColor("definitely-not-a-color"); err == nil {
		t.Fatal("expected error for unknown color, got nil")
	}
}
