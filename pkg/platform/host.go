// Package platform hosts a dwidget window in a native desktop window.
//
// [Host] implements [window.Surface] on top of the software raster
// backend. The ebiten game loop drives it: Layout reports size and device
// scale changes, Update translates pointer input and runs dispatched
// callbacks, Draw paints the window when it is dirty and presents the
// raster image. Build with the noebiten tag to drop the native loop; the
// host then only runs headless.
package platform

import (
	"context"
	"image"
	"sync"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/rendering"
	"github.com/go-drift/dwidget/pkg/rendering/raster"
	"github.com/go-drift/dwidget/pkg/window"
)

// errDone ends the game loop after the window closed.
var errDone = errors.New("platform: window closed")

// Options configures a Host.
type Options struct {
	Title string
	// Width and Height are the initial window size in device independent
	// pixels. Zero values default to 640x480.
	Width, Height int
	// Factory is shared with other hosts when set.
	Factory *raster.Factory
}

// Host is a native window surface. Create it with NewHost and block in Run.
type Host struct {
	device    *raster.Device
	window    *window.Window
	lifecycle *Lifecycle
	pointer   pointerTracker
	ctx       context.Context

	width, height int
	scale         float64
	title         string
	applyTitle    func(string)
	notRaster     bool

	mu    sync.Mutex
	dirty bool
}

// NewHost creates a host and the window it presents.
func NewHost(opts Options) *Host {
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}
	h := &Host{
		device:    raster.NewDevice(opts.Factory),
		lifecycle: NewLifecycle(),
		width:     opts.Width,
		height:    opts.Height,
		scale:     1,
		dirty:     true,
	}
	h.window = window.New(h)
	h.window.SetTitle(opts.Title)
	return h
}

// Window returns the hosted window.
func (h *Host) Window() *window.Window {
	return h.window
}

// Lifecycle returns the focus state tracker of the host.
func (h *Host) Lifecycle() *Lifecycle {
	return h.lifecycle
}

func (h *Host) Factory() rendering.Factory {
	return h.device.Factory()
}

func (h *Host) CreateTarget(pixels graphics.Size) (rendering.Target, error) {
	return h.device.CreateTarget(pixels)
}

// ClientSize returns the drawable area in pixels.
func (h *Host) ClientSize() graphics.Size {
	return graphics.Size{Width: float32(h.width), Height: float32(h.height)}
}

func (h *Host) DPI() float32 {
	return float32(h.scale * window.DefaultDPI)
}

func (h *Host) SetTitle(title string) {
	h.title = title
	if h.applyTitle != nil {
		h.applyTitle(title)
	}
}

// Title returns the last title set by the window.
func (h *Host) Title() string {
	return h.title
}

func (h *Host) Validate() {
	h.mu.Lock()
	h.dirty = false
	h.mu.Unlock()
}

// Invalidate requests a paint on the next frame. It is safe to call from any
// goroutine.
func (h *Host) Invalidate() {
	h.mu.Lock()
	h.dirty = true
	h.mu.Unlock()
}

// Dirty reports whether a paint is pending.
func (h *Host) Dirty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dirty
}

// resize applies the pixel size and device scale reported by the native
// window. A scale change is delivered before the resize.
func (h *Host) resize(width, height int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if scale != h.scale {
		h.scale = scale
		h.window.HandleEvent(window.Event{Type: window.EventDPIChanged})
	}
	if width != h.width || height != h.height {
		h.width, h.height = width, height
		h.window.HandleEvent(window.Event{Type: window.EventResize})
	}
}

func (h *Host) input(s pointerSample) {
	for _, ev := range h.pointer.events(s) {
		h.window.HandleEvent(ev)
	}
}

// tick runs once per game update.
func (h *Host) tick(focused bool) error {
	if h.ctx != nil {
		select {
		case <-h.ctx.Done():
			return ErrTerminated
		default:
		}
	}
	h.lifecycle.setFocused(focused)
	h.window.Update()
	if h.window.Closed() {
		return errDone
	}
	return nil
}

// frame paints the window if it is dirty and returns the image to present.
func (h *Host) frame() (*image.RGBA, bool) {
	if h.Dirty() {
		h.window.HandleEvent(window.Event{Type: window.EventPaint})
	}
	t := h.window.Target()
	if t == nil {
		return nil, false
	}
	rt, ok := t.(*raster.Target)
	if !ok {
		if !h.notRaster {
			h.notRaster = true
			errors.ReportErr("platform.Host.frame", errors.KindDevice, ErrNotRaster)
		}
		return nil, false
	}
	return rt.Image(), true
}

// close delivers the native close request and detaches the lifecycle.
func (h *Host) close() {
	h.window.HandleEvent(window.Event{Type: window.EventClose})
	h.lifecycle.update(LifecycleStateDetached)
}
