//go:build !linux

package toolkit

import (
	"context"
	"fmt"
)

// X11 is unavailable off linux; NewX11 exists so callers build everywhere.
type X11 struct{}

// NewX11 always fails on this platform.
func NewX11() (*X11, error) {
	return nil, fmt.Errorf("x11 toolkit is only available on linux")
}

func (x *X11) Name() string { return "x11" }
func (x *X11) CreateFrameWidgets(string, int, int, FrameEvents) (Widgets, error) {
	return Widgets{}, fmt.Errorf("x11 toolkit is only available on linux")
}
func (x *X11) SetTitle(Widgets, string) error {
	return fmt.Errorf("x11 toolkit is only available on linux")
}
func (x *X11) Run(context.Context) error {
	return fmt.Errorf("x11 toolkit is only available on linux")
}
func (x *X11) Close() {}
