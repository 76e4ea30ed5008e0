package toolkit

import (
	"context"
	"fmt"
	"sync"
)

// Headless is the no-window toolkit used by the daemon on machines without a
// window system and by tests. Events are injected programmatically with the
// Deliver methods.
type Headless struct {
	mu     sync.Mutex
	nextID int
	frames map[int]FrameEvents
	titles map[int]string
}

var _ Toolkit = (*Headless)(nil)

// NewHeadless creates an empty headless toolkit.
func NewHeadless() *Headless {
	return &Headless{
		frames: make(map[int]FrameEvents),
		titles: make(map[int]string),
	}
}

// Name implements Toolkit.
func (h *Headless) Name() string { return "headless" }

// CreateFrameWidgets implements Toolkit. The widget handle is an integer id
// usable with the Deliver methods.
func (h *Headless) CreateFrameWidgets(title string, pixelWidth, pixelHeight int, ev FrameEvents) (Widgets, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.frames[id] = ev
	h.titles[id] = title
	return Widgets{Window: id, Surface: id}, nil
}

// SetTitle implements Toolkit.
func (h *Headless) SetTitle(w Widgets, title string) error {
	id, ok := w.Window.(int)
	if !ok {
		return fmt.Errorf("not a headless widget: %v", w.Window)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.frames[id]; !ok {
		return fmt.Errorf("unknown headless widget %d", id)
	}
	h.titles[id] = title
	return nil
}

// Title returns the stored title for a widget id.
func (h *Headless) Title(id int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.titles[id]
}

// Run implements Toolkit. Headless has no event source of its own; it only
// waits for cancellation.
func (h *Headless) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Close implements Toolkit.
func (h *Headless) Close() {}

// DeliverResize injects a resize event for a widget id.
func (h *Headless) DeliverResize(id, pixelWidth, pixelHeight int) {
	if ev, ok := h.events(id); ok && ev.OnResize != nil {
		ev.OnResize(pixelWidth, pixelHeight)
	}
}

// DeliverCloseRequest injects a close request and returns whether the frame
// reported it handled.
func (h *Headless) DeliverCloseRequest(id int) bool {
	if ev, ok := h.events(id); ok && ev.OnCloseRequest != nil {
		return ev.OnCloseRequest()
	}
	return false
}

// DeliverExpose injects an expose event.
func (h *Headless) DeliverExpose(id int) {
	if ev, ok := h.events(id); ok && ev.OnExpose != nil {
		ev.OnExpose()
	}
}

// DeliverFocus injects a focus change.
func (h *Headless) DeliverFocus(id int, in bool) {
	if ev, ok := h.events(id); ok && ev.OnFocus != nil {
		ev.OnFocus(in)
	}
}

func (h *Headless) events(id int) (FrameEvents, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ev, ok := h.frames[id]
	return ev, ok
}
