// Package window hosts a widget tree on a native surface.
//
// A [Window] owns the values every widget inherits (device scale, backend
// factory, debug flag) and the render target the tree draws into. It turns
// surface events into pipeline operations: resizes become new root
// constraints, paints issue a frame, pointer input is converted from pixels
// to points and dispatched to the root widget.
//
// All methods must be called from the UI goroutine except [Window.Dispatch].
package window

import (
	"sync"

	"github.com/go-drift/dwidget/pkg/core"
	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/rendering"
	"github.com/go-drift/dwidget/pkg/widgets"
)

// ErrClosed is returned by Paint after Close.
var ErrClosed = errors.New("window closed")

var (
	TitleProperty      = core.NewProperty("Title", "", core.SkipUnchanged[string]())
	RootWidgetProperty = core.NewProperty[widgets.Widget]("RootWidget", nil)

	// ClientRectResource is the drawable area in pixels.
	ClientRectResource = core.NewResource("ClientRect", func(o core.Owner) (graphics.Bounds, error) {
		size := o.(*Window).surface.ClientSize()
		return graphics.BoundsFromLTWH(0, 0, size.Width, size.Height), nil
	})

	// RenderTargetResource is the target the root widget is attached to. A
	// scale change recreates it; a resize resizes it in place.
	RenderTargetResource = core.NewResource("RenderTarget",
		func(o core.Owner) (rendering.Target, error) {
			return o.(*Window).createTarget()
		},
		core.WithDiscard(func(o core.Owner, t rendering.Target) {
			if w, ok := o.(*Window); ok {
				w.releaseTarget(t)
			}
		}),
	).Bind(widgets.ScaleResource)
)

func init() {
	TitleProperty.AddListener(core.NewListener(func(n core.Notification) {
		if n.Type != core.Updated {
			return
		}
		if w, ok := n.Owner.(*Window); ok {
			w.surface.SetTitle(w.Title())
		}
	}))
}

// Window is the root of an element tree.
type Window struct {
	core.Element

	surface  Surface
	attached rendering.Target
	listener *core.ListenerFunc
	closed   bool
	onClose  []func()

	dispatchMu    sync.Mutex
	dispatchQueue []func()

	debug debugServer
}

// New returns a window rendering into surface.
func New(surface Surface) *Window {
	w := &Window{surface: surface}
	w.SetSelf(w)
	w.RegisterDependency(
		TitleProperty,
		RootWidgetProperty,
		widgets.DebugProperty,
		widgets.ClearColorProperty,
		ClientRectResource,
		widgets.ScaleResource,
		widgets.FactoryResource,
		RenderTargetResource,
	)
	widgets.ClearColorProperty.SetValue(w, graphics.ColorWhite)
	w.listener = core.NewListener(w.onRootContent)
	widgets.RenderContentResource.AddListener(w.listener)
	return w
}

// Surface returns the surface passed to New.
func (w *Window) Surface() Surface {
	return w.surface
}

// DeviceScale implements widgets.ScaleSource.
func (w *Window) DeviceScale() float32 {
	dpi := w.surface.DPI()
	if dpi <= 0 {
		return 1
	}
	return dpi / DefaultDPI
}

// Factory implements widgets.FactorySource.
func (w *Window) Factory() rendering.Factory {
	return w.surface.Factory()
}

func (w *Window) Title() string {
	return TitleProperty.Value(w)
}

func (w *Window) SetTitle(title string) {
	TitleProperty.SetValue(w, title)
}

// Debug reports whether debug bounds are drawn.
func (w *Window) Debug() bool {
	return widgets.DebugProperty.Value(w)
}

// SetDebug toggles drawing of layout and render bounds for every widget.
func (w *Window) SetDebug(debug bool) {
	widgets.DebugProperty.SetValue(w, debug)
}

// Background returns the color the target is cleared with each frame.
func (w *Window) Background() graphics.Color {
	return widgets.ClearColorProperty.Value(w)
}

// SetBackground sets the clear color. Transparent disables clearing.
func (w *Window) SetBackground(c graphics.Color) {
	widgets.ClearColorProperty.SetValue(w, c)
}

// Scale returns the pixels per point of the window.
func (w *Window) Scale() float32 {
	return widgets.ScaleResource.Value(w)
}

// Root returns the root widget, or nil.
func (w *Window) Root() widgets.Widget {
	return RootWidgetProperty.Value(w)
}

// SetRoot replaces the root widget. The previous root is detached from the
// render target and stops inheriting window values. root must not have a
// parent widget.
func (w *Window) SetRoot(root widgets.Widget) {
	old := w.Root()
	if old == root {
		return
	}
	if old != nil {
		if w.attached != nil {
			old.WidgetBase().DetachRenderTarget()
			w.attached = nil
		}
		w.DetachChild(&old.WidgetBase().Element)
	}
	RootWidgetProperty.SetValue(w, root)
	if root != nil {
		w.RegisterChild(&root.WidgetBase().Element)
		w.layoutRoot()
	}
	w.surface.Invalidate()
}

// PointSize returns the client area in points.
func (w *Window) PointSize() graphics.Size {
	rect, err := ClientRectResource.Get(w)
	if err != nil {
		errors.ReportErr("Window.PointSize", errors.KindDevice, err)
		return graphics.Size{}
	}
	s := w.Scale()
	return graphics.Size{Width: rect.Width() / s, Height: rect.Height() / s}
}

// Target returns the current render target, or nil.
func (w *Window) Target() rendering.Target {
	t, _ := RenderTargetResource.Peek(w)
	return t
}

// OnClose registers fn to run when the window is closed.
func (w *Window) OnClose(fn func()) {
	w.onClose = append(w.onClose, fn)
}

// Closed reports whether Close was called.
func (w *Window) Closed() bool {
	return w.closed
}

// Paint runs pending dispatched callbacks and issues a frame. A lost device
// releases the render target; the next Paint recreates it.
func (w *Window) Paint() error {
	w.Update()
	if w.closed {
		return ErrClosed
	}
	root := w.Root()
	if root == nil {
		w.surface.Validate()
		return nil
	}
	if err := w.ensureDevice(root); err != nil {
		return err
	}
	err := root.WidgetBase().IssueFrame()
	if errors.Is(err, errors.ErrDeviceLost) {
		errors.Logger().Warn("render target lost, recreating", "window", w.Title())
		RenderTargetResource.Invalidate(w)
		w.surface.Invalidate()
	}
	return err
}

// Resize reads the new client size from the surface, resizes the render
// target and lays out the root again.
func (w *Window) Resize() {
	ClientRectResource.Invalidate(w)
	if t, ok := RenderTargetResource.Peek(w); ok {
		if err := t.Resize(w.surface.ClientSize()); err != nil {
			errors.ReportErr("Window.Resize", errors.KindDevice, err)
			RenderTargetResource.Invalidate(w)
		}
	}
	w.layoutRoot()
	if root := w.Root(); root != nil {
		root.WidgetBase().DiscardFrame()
	}
	w.surface.Invalidate()
}

// DPIChanged reads the new DPI from the surface. The render target is
// recreated at the new scale on the next Paint.
func (w *Window) DPIChanged() {
	widgets.ScaleResource.Invalidate(w)
	w.layoutRoot()
	w.surface.Invalidate()
}

// PointerMove dispatches a hover at pixel coordinates x, y.
func (w *Window) PointerMove(x, y int) bool {
	root := w.Root()
	if root == nil {
		return false
	}
	return root.HandlePointerHover(root.WidgetBase().PixelToPoint(x, y))
}

// PointerPress dispatches a press at pixel coordinates x, y.
func (w *Window) PointerPress(x, y int) bool {
	root := w.Root()
	if root == nil {
		return false
	}
	return root.HandlePointerPress(root.WidgetBase().PixelToPoint(x, y))
}

// PointerRelease dispatches a release at pixel coordinates x, y.
func (w *Window) PointerRelease(x, y int) bool {
	root := w.Root()
	if root == nil {
		return false
	}
	return root.HandlePointerRelease(root.WidgetBase().PixelToPoint(x, y))
}

// PointerLeave tells the tree the pointer left the window.
func (w *Window) PointerLeave() {
	if root := w.Root(); root != nil {
		root.HandlePointerLeave()
	}
}

// Close releases device resources and runs the OnClose callbacks. The
// window cannot be painted afterwards.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.discardDevice()
	for _, fn := range w.onClose {
		fn()
	}
}

// Destroy closes the window and releases every slot held by it and its
// widget tree.
func (w *Window) Destroy() {
	w.Close()
	w.StopDebugServer()
	widgets.RenderContentResource.RemoveListener(w.listener)
	if root := w.Root(); root != nil {
		root.WidgetBase().Destroy()
	}
	w.Element.Destroy()
}

// Dispatch schedules fn to run on the UI goroutine before the next frame.
// It is safe to call from any goroutine.
func (w *Window) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	w.dispatchMu.Lock()
	w.dispatchQueue = append(w.dispatchQueue, fn)
	w.dispatchMu.Unlock()
	w.surface.Invalidate()
}

// Pending reports whether dispatched callbacks are waiting.
func (w *Window) Pending() bool {
	w.dispatchMu.Lock()
	defer w.dispatchMu.Unlock()
	return len(w.dispatchQueue) > 0
}

// Update runs the dispatched callbacks. Paint calls it; hosts with a
// separate update step call it there too.
func (w *Window) Update() {
	for _, fn := range w.drainDispatchQueue() {
		w.runDispatched(fn)
	}
}

func (w *Window) drainDispatchQueue() []func() {
	w.dispatchMu.Lock()
	callbacks := append([]func(){}, w.dispatchQueue...)
	w.dispatchQueue = nil
	w.dispatchMu.Unlock()
	return callbacks
}

func (w *Window) runDispatched(fn func()) {
	defer errors.Recover("Window.Dispatch")
	fn()
}

func (w *Window) createTarget() (rendering.Target, error) {
	rect, err := ClientRectResource.Get(w)
	if err != nil {
		return nil, err
	}
	scale, err := widgets.ScaleResource.Get(w)
	if err != nil {
		return nil, err
	}
	t, err := w.surface.CreateTarget(rect.Size())
	if err != nil {
		return nil, err
	}
	t.SetScale(scale)
	return t, nil
}

// releaseTarget detaches the root from t before t is dropped.
func (w *Window) releaseTarget(t rendering.Target) {
	if w.attached != t {
		return
	}
	w.attached = nil
	if root := w.Root(); root != nil {
		root.WidgetBase().DetachRenderTarget()
	}
}

// ensureDevice attaches the root to a live render target.
func (w *Window) ensureDevice(root widgets.Widget) error {
	t, err := RenderTargetResource.Get(w)
	if err != nil {
		return err
	}
	if w.attached != t {
		w.attached = t
		root.WidgetBase().AttachRenderTarget(t)
		root.CreateResources()
	}
	w.layoutRoot()
	return nil
}

func (w *Window) discardDevice() {
	RenderTargetResource.Invalidate(w)
	if root := w.Root(); root != nil {
		root.WidgetBase().DiscardFrame()
	}
}

// layoutRoot sizes the root to the client area.
func (w *Window) layoutRoot() {
	root := w.Root()
	if root == nil {
		return
	}
	size := w.PointSize()
	b := root.WidgetBase()
	b.SetMaxSize(size)
	b.SetConstraints(graphics.BoundsFromLTWH(0, 0, size.Width, size.Height))
}

// onRootContent mirrors the root's paint state onto the surface.
func (w *Window) onRootContent(n core.Notification) {
	root := w.Root()
	if root == nil || n.Owner != core.Owner(root) {
		return
	}
	switch n.Type {
	case core.Initialized:
		w.surface.Validate()
	case core.Invalidated:
		w.surface.Invalidate()
	}
}
