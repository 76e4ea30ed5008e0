// Package daemon owns the long-running bridge state: the display registry,
// the frame table, the redisplay hook bridge, and the view the IPC server
// exposes to clients.
package daemon

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/1broseidon/glyphbridge/internal/blockinput"
	"github.com/1broseidon/glyphbridge/internal/colorres"
	"github.com/1broseidon/glyphbridge/internal/config"
	"github.com/1broseidon/glyphbridge/internal/display"
	"github.com/1broseidon/glyphbridge/internal/engine"
	"github.com/1broseidon/glyphbridge/internal/frame"
	"github.com/1broseidon/glyphbridge/internal/hooks"
	"github.com/1broseidon/glyphbridge/internal/ipc"
	"github.com/1broseidon/glyphbridge/internal/toolkit"
)

// Core ties the bridge components together and implements the IPC bridge
// surface. All frame-table mutation is serialized on mu; registry and
// connection state is additionally serialized by the shared input guard.
type Core struct {
	cfg    *config.Config
	guard  *blockinput.Guard
	reg    *display.Registry
	tk     toolkit.Toolkit
	hooks  *hooks.Bridge
	colors *colorres.Resolver
	logger *slog.Logger

	mu          sync.Mutex
	frames      map[int]*frame.Frame
	nextFrameID int

	startTime time.Time
}

// NewCore builds a Core against the given toolkit. logger may be nil.
func NewCore(cfg *config.Config, tk toolkit.Toolkit, logger *slog.Logger) *Core {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	guard := &blockinput.Guard{}
	c := &Core{
		cfg:         cfg,
		guard:       guard,
		tk:          tk,
		hooks:       hooks.NewBridge(guard, logger),
		colors:      colorres.New(),
		logger:      logger,
		frames:      make(map[int]*frame.Frame),
		nextFrameID: 1,
		startTime:   time.Now(),
	}

	c.reg = display.NewRegistry(display.RegistryConfig{
		Guard:       guard,
		DefaultName: cfg.Display.DefaultName,
		OpenEngine: func() (engine.Engine, error) {
			return engine.Open(cfg.Engine.Backend, engine.Config{
				Width:  cfg.Display.Width,
				Height: cfg.Display.Height,
				Logger: logger,
			})
		},
	})
	return c
}

// Guard returns the shared input-blocked guard.
func (c *Core) Guard() *blockinput.Guard { return c.guard }

// Registry returns the display registry.
func (c *Core) Registry() *display.Registry { return c.reg }

// Hooks returns the redisplay hook table wired to the engine.
func (c *Core) Hooks() *hooks.Bridge { return c.hooks }

// Colors returns the color resolver.
func (c *Core) Colors() *colorres.Resolver { return c.colors }

// CreateFrame binds a new frame on the named display (empty means the
// default), creates its toolkit widgets, and registers it in the frame table.
func (c *Core) CreateFrame(title, displayName string) (*frame.Frame, error) {
	conn, err := c.connectionFor(displayName)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	id := c.nextFrameID
	c.nextFrameID++
	c.mu.Unlock()

	f := frame.New(id, title, c)
	b, err := frame.Bind(f, conn, c.cfg.Frame.DefaultCols, c.cfg.Frame.DefaultRows, c.guard)
	if err != nil {
		return nil, fmt.Errorf("failed to bind frame: %w", err)
	}

	widgets, err := c.tk.CreateFrameWidgets(title, f.PixelWidth, f.PixelHeight, toolkit.FrameEvents{
		OnResize: func(pw, ph int) {
			if err := f.HandleResize(pw, ph); err != nil {
				c.logger.Warn("resize failed", "frame", f.ID(), "error", err)
			}
		},
		OnCloseRequest: f.HandleCloseRequest,
		OnExpose: func() {
			f.MarkGarbaged()
		},
		OnFocus: func(in bool) {
			c.handleFocus(f, in)
		},
	})
	if err != nil {
		f.Unbind(c.guard)
		return nil, fmt.Errorf("failed to create frame widgets: %w", err)
	}
	b.SetWidgets(widgets.Window, widgets.Surface)

	c.mu.Lock()
	c.frames[id] = f
	c.mu.Unlock()

	c.logger.Info("frame created",
		"frame", id,
		"title", title,
		"display", conn.Name(),
		"cols", f.Cols,
		"rows", f.Rows)
	return f, nil
}

// DeleteFrame unbinds f and drops it from the frame table. Toolkit widget
// destruction stays with the toolkit.
func (c *Core) DeleteFrame(f *frame.Frame) {
	if conn, err := f.Connection(); err == nil && conn.FocusFrame() == f.ID() {
		c.guard.With(func() { conn.SetFocusFrame(0) })
	}
	f.Unbind(c.guard)

	c.mu.Lock()
	delete(c.frames, f.ID())
	c.mu.Unlock()

	c.logger.Info("frame deleted", "frame", f.ID())
}

// SetFrameTitle stores the title and forwards it to the toolkit window.
func (c *Core) SetFrameTitle(f *frame.Frame, title string) error {
	f.SetTitle(title)
	b := f.Binding()
	if b == nil {
		return nil
	}
	return c.tk.SetTitle(toolkit.Widgets{Window: b.Widget(), Surface: b.Surface()}, title)
}

// FrameByID returns the frame with the given id, or nil.
func (c *Core) FrameByID(id int) *frame.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames[id]
}

// ReflowFrame implements frame.Host. The daemon has no buffer contents to lay
// out; a real host editor hangs its relayout here.
func (c *Core) ReflowFrame(f *frame.Frame, cols, rows int) {
	c.logger.Info("frame reflow", "frame", f.ID(), "cols", cols, "rows", rows)
}

// CloseRequested implements frame.Host. The daemon acts as its own host and
// tears the frame down.
func (c *Core) CloseRequested(f *frame.Frame) {
	c.logger.Info("close requested", "frame", f.ID())
	c.DeleteFrame(f)
}

func (c *Core) handleFocus(f *frame.Frame, in bool) {
	if in {
		c.hooks.FocusFrame(f, false)
		return
	}
	conn, err := f.Connection()
	if err != nil {
		return
	}
	c.guard.With(func() {
		if conn.FocusFrame() == f.ID() {
			conn.SetFocusFrame(0)
		}
	})
}

// connectionFor resolves a display name to a connection, opening one when
// none exists under that name.
func (c *Core) connectionFor(name string) (*display.Connection, error) {
	if name == "" {
		return c.reg.Default()
	}
	conn, err := c.reg.ByName(name)
	if err == nil {
		return conn, nil
	}
	if !errors.Is(err, display.ErrNotFound) {
		return nil, err
	}
	return c.reg.Open(name)
}

// Status implements ipc.Bridge.
func (c *Core) Status() ipc.StatusData {
	c.mu.Lock()
	frameCount := len(c.frames)
	c.mu.Unlock()

	backend := c.cfg.Engine.Backend
	if conn := c.reg.First(); conn != nil {
		if eng, err := conn.Engine(); err == nil {
			backend = eng.Name()
		}
	}

	return ipc.StatusData{
		EngineBackend: backend,
		Toolkit:       c.tk.Name(),
		DisplayCount:  c.reg.Len(),
		FrameCount:    frameCount,
		UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
	}
}

// ListDisplays implements ipc.Bridge.
func (c *Core) ListDisplays() ipc.DisplaysData {
	return ipc.DisplaysData{Displays: c.reg.List()}
}

// OpenDisplay implements ipc.Bridge. Opening always creates a new
// connection, even under a name already in use.
func (c *Core) OpenDisplay(name string) (ipc.DisplaysData, error) {
	conn, err := c.reg.Open(name)
	if err != nil {
		return ipc.DisplaysData{}, err
	}
	c.logger.Info("display opened", "display", conn.Name())
	return c.ListDisplays(), nil
}

// CloseDisplay implements ipc.Bridge. Fails while frames are bound.
func (c *Core) CloseDisplay(name string) error {
	conn, err := c.reg.ByName(name)
	if err != nil {
		return err
	}
	if err := c.reg.Close(conn); err != nil {
		return err
	}
	c.logger.Info("display closed", "display", name)
	return nil
}

// ListFrames implements ipc.Bridge.
func (c *Core) ListFrames() ipc.FramesData {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := ipc.FramesData{Frames: make([]ipc.FrameInfo, 0, len(c.frames))}
	for _, f := range c.frames {
		info := ipc.FrameInfo{
			ID:          f.ID(),
			Title:       f.Title(),
			Cols:        f.Cols,
			Rows:        f.Rows,
			PixelWidth:  f.PixelWidth,
			PixelHeight: f.PixelHeight,
		}
		if conn, err := f.Connection(); err == nil {
			info.Display = conn.Name()
			info.Focused = conn.FocusFrame() == f.ID()
		}
		data.Frames = append(data.Frames, info)
	}
	sort.Slice(data.Frames, func(i, j int) bool {
		return data.Frames[i].ID < data.Frames[j].ID
	})
	return data
}

// ResolveColor implements ipc.Bridge.
func (c *Core) ResolveColor(name string) (ipc.ColorData, error) {
	col, err := c.colors.Resolve(name)
	if err != nil {
		return ipc.ColorData{}, err
	}
	return ipc.ColorData{
		Red:   col.Red,
		Green: col.Green,
		Blue:  col.Blue,
		Pixel: col.Pixel,
	}, nil
}

var _ ipc.Bridge = (*Core)(nil)
var _ frame.Host = (*Core)(nil)
