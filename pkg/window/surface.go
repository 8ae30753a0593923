package window

import (
	"sync"

	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/rendering"
)

// DefaultDPI is the DPI of a surface with a scale of one.
const DefaultDPI = 96

// Surface is the native window a [Window] renders into.
//
// Validate and Invalidate may be called from the UI goroutine only, except
// for Invalidate which the dispatch queue also calls from other goroutines.
type Surface interface {
	rendering.Device

	// ClientSize returns the drawable area in pixels.
	ClientSize() graphics.Size

	// DPI returns the current dots per inch.
	DPI() float32

	// SetTitle changes the window caption.
	SetTitle(title string)

	// Validate marks the surface content as up to date.
	Validate()

	// Invalidate requests a repaint.
	Invalidate()
}

// Headless is an in-memory [Surface]. It is used by tests and by offscreen
// rendering.
type Headless struct {
	rendering.Device

	mu            sync.Mutex
	size          graphics.Size
	dpi           float32
	title         string
	dirty         bool
	invalidations int
}

// NewHeadless returns a surface of the given pixel size whose targets are
// created by device.
func NewHeadless(device rendering.Device, width, height int) *Headless {
	return &Headless{
		Device: device,
		size:   graphics.Size{Width: float32(width), Height: float32(height)},
		dpi:    DefaultDPI,
		dirty:  true,
	}
}

func (h *Headless) ClientSize() graphics.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// SetClientSize changes the reported pixel size. Follow it with
// [Window.Resize].
func (h *Headless) SetClientSize(width, height int) {
	h.mu.Lock()
	h.size = graphics.Size{Width: float32(width), Height: float32(height)}
	h.mu.Unlock()
}

func (h *Headless) DPI() float32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dpi
}

// SetDPI changes the reported DPI. Follow it with [Window.DPIChanged].
func (h *Headless) SetDPI(dpi float32) {
	h.mu.Lock()
	h.dpi = dpi
	h.mu.Unlock()
}

func (h *Headless) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

func (h *Headless) SetTitle(title string) {
	h.mu.Lock()
	h.title = title
	h.mu.Unlock()
}

func (h *Headless) Validate() {
	h.mu.Lock()
	h.dirty = false
	h.mu.Unlock()
}

func (h *Headless) Invalidate() {
	h.mu.Lock()
	h.dirty = true
	h.invalidations++
	h.mu.Unlock()
}

// Dirty reports whether a repaint was requested since the last Validate.
func (h *Headless) Dirty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dirty
}

// Invalidations returns how many times Invalidate was called.
func (h *Headless) Invalidations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.invalidations
}
