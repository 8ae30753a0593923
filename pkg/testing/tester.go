package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/platform"
	"github.com/go-drift/dwidget/pkg/rendering/recording"
	"github.com/go-drift/dwidget/pkg/widgets"
	"github.com/go-drift/dwidget/pkg/window"
)

const (
	// DefaultTestWidth is the default surface width in pixels.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default surface height in pixels.
	DefaultTestHeight = 600
	// DefaultScale is the default pixels per point.
	DefaultScale = 1.0
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its frame budget.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: window did not settle")

// WidgetTester hosts a widget tree in a window on a headless surface with a
// recording backend. It drives the same pipeline as a native host.
type WidgetTester struct {
	window  *window.Window
	surface *window.Headless
	device  *recording.Device
}

// NewWidgetTester creates a tester with the default surface size and scale.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	dev := recording.NewDevice()
	s := window.NewHeadless(dev, DefaultTestWidth, DefaultTestHeight)
	t := &WidgetTester{
		window:  window.New(s),
		surface: s,
		device:  dev,
	}
	// Register this tester's dispatch function with the platform package
	// so that platform.Dispatch works during tests.
	platform.RegisterDispatch(t.Dispatch)
	return t
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup destroys the window and its tree and unregisters dispatch.
func (t *WidgetTester) Cleanup() {
	platform.RegisterDispatch(nil)
	t.window.Destroy()
}

// Window returns the window hosting the tree.
func (t *WidgetTester) Window() *window.Window {
	return t.window
}

// Surface returns the headless surface of the window.
func (t *WidgetTester) Surface() *window.Headless {
	return t.surface
}

// Device returns the recording device the window draws with.
func (t *WidgetTester) Device() *recording.Device {
	return t.device
}

// Target returns the current recording target, or nil before the first
// frame.
func (t *WidgetTester) Target() *recording.Target {
	rt, _ := t.window.Target().(*recording.Target)
	return rt
}

// SetSize resizes the surface in pixels.
func (t *WidgetTester) SetSize(width, height int) {
	t.surface.SetClientSize(width, height)
	t.window.HandleEvent(window.Event{Type: window.EventResize})
}

// SetScale sets the pixels per point.
func (t *WidgetTester) SetScale(scale float32) {
	t.surface.SetDPI(scale * window.DefaultDPI)
	t.window.HandleEvent(window.Event{Type: window.EventDPIChanged})
}

// PumpWidget makes w the root widget and runs one frame.
func (t *WidgetTester) PumpWidget(w widgets.Widget) error {
	t.window.SetRoot(w)
	return t.Pump()
}

// Root returns the root widget.
func (t *WidgetTester) Root() widgets.Widget {
	return t.window.Root()
}

// Pump runs dispatched callbacks and paints one frame.
func (t *WidgetTester) Pump() error {
	return t.window.Paint()
}

// PumpAndSettle paints until nothing is dispatched and the surface is
// clean, or maxFrames frames were painted.
func (t *WidgetTester) PumpAndSettle(maxFrames int) error {
	for range maxFrames {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.NeedsWork() {
			return nil
		}
	}
	return ErrSettleTimeout
}

// NeedsWork reports whether a frame would change anything.
func (t *WidgetTester) NeedsWork() bool {
	return t.surface.Dirty() || t.window.Pending()
}

// Dispatch queues a callback for the next frame, mirroring Window.Dispatch.
func (t *WidgetTester) Dispatch(fn func()) {
	t.window.Dispatch(fn)
}

// Find evaluates a finder against the current widget tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	root := t.window.Root()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		widgets: finder.Evaluate(root),
		finder:  finder,
	}
}

// widgetCenter returns the center of w's render bounds in points.
func widgetCenter(w widgets.Widget) graphics.Point {
	return w.WidgetBase().RenderBounds().Center()
}
