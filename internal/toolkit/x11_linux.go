//go:build linux

package toolkit

import (
	"context"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// X11 hosts frame surfaces as top-level X windows.
type X11 struct {
	xu *xgbutil.XUtil
}

var _ Toolkit = (*X11)(nil)

// NewX11 connects to the X server named by DISPLAY.
func NewX11() (*X11, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11{xu: xu}, nil
}

// Name implements Toolkit.
func (x *X11) Name() string { return "x11" }

// CreateFrameWidgets implements Toolkit. The window id is the opaque widget
// handle; the *xwindow.Window wrapper is the surface handle.
func (x *X11) CreateFrameWidgets(title string, pixelWidth, pixelHeight int, ev FrameEvents) (Widgets, error) {
	win, err := xwindow.Generate(x.xu)
	if err != nil {
		return Widgets{}, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(x.xu.RootWin(), 0, 0, pixelWidth, pixelHeight,
		xproto.CwBackPixel|xproto.CwEventMask,
		0xffffff,
		uint32(xproto.EventMaskStructureNotify|
			xproto.EventMaskExposure|
			xproto.EventMaskFocusChange))
	if err != nil {
		return Widgets{}, fmt.Errorf("failed to create window: %w", err)
	}

	if err := ewmh.WmNameSet(x.xu, win.Id, title); err != nil {
		// Title is cosmetic; the window is still usable.
	}

	// Route WM close through the frame callback. Reporting "handled" is
	// implicit here: we never destroy the window ourselves, the host
	// decides whether the frame dies.
	win.WMGracefulClose(func(w *xwindow.Window) {
		if ev.OnCloseRequest != nil {
			ev.OnCloseRequest()
		}
	})

	xevent.ConfigureNotifyFun(
		func(xu *xgbutil.XUtil, e xevent.ConfigureNotifyEvent) {
			if ev.OnResize != nil {
				ev.OnResize(int(e.Width), int(e.Height))
			}
		}).Connect(x.xu, win.Id)

	xevent.ExposeFun(
		func(xu *xgbutil.XUtil, e xevent.ExposeEvent) {
			if ev.OnExpose != nil && e.Count == 0 {
				ev.OnExpose()
			}
		}).Connect(x.xu, win.Id)

	xevent.FocusInFun(
		func(xu *xgbutil.XUtil, e xevent.FocusInEvent) {
			if ev.OnFocus != nil {
				ev.OnFocus(true)
			}
		}).Connect(x.xu, win.Id)

	xevent.FocusOutFun(
		func(xu *xgbutil.XUtil, e xevent.FocusOutEvent) {
			if ev.OnFocus != nil {
				ev.OnFocus(false)
			}
		}).Connect(x.xu, win.Id)

	win.Map()

	return Widgets{Window: win.Id, Surface: win}, nil
}

// SetTitle implements Toolkit.
func (x *X11) SetTitle(w Widgets, title string) error {
	id, ok := w.Window.(xproto.Window)
	if !ok {
		return fmt.Errorf("not an X11 widget: %v", w.Window)
	}
	if err := ewmh.WmNameSet(x.xu, id, title); err != nil {
		return fmt.Errorf("failed to set window title: %w", err)
	}
	return nil
}

// Run implements Toolkit: the blocking X event loop, stopped when ctx is
// cancelled.
func (x *X11) Run(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		xevent.Main(x.xu)
		close(done)
	}()

	select {
	case <-ctx.Done():
		xevent.Quit(x.xu)
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Close implements Toolkit.
func (x *X11) Close() {
	x.xu.Conn().Close()
}
