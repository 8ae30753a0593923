package widgets_test

import (
	"testing"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/rendering"
	"github.com/go-drift/dwidget/pkg/rendering/recording"
	"github.com/go-drift/dwidget/pkg/widgets"
)

// host stands in for a window: it owns the factory, scale and debug values
// inherited by the widgets below it.
type host struct {
	widgets.Composite
	factory rendering.Factory
	scale   float32
}

func newHost(factory rendering.Factory, children ...widgets.Widget) *host {
	h := &host{factory: factory, scale: 1}
	h.InitComposite(h)
	h.RegisterDependency(widgets.FactoryResource, widgets.ScaleResource, widgets.DebugProperty)
	h.SetHorizontalAlignment(layout.Stretch)
	h.SetVerticalAlignment(layout.Stretch)
	h.AddChild(children...)
	return h
}

func (h *host) Factory() rendering.Factory { return h.factory }
func (h *host) DeviceScale() float32       { return h.scale }

// scene is a host of the given size attached to a recording target.
type scene struct {
	host    *host
	target  *recording.Target
	factory *recording.Factory
}

func newScene(t *testing.T, size graphics.Size, children ...widgets.Widget) *scene {
	t.Helper()
	f := recording.NewFactory()
	target := recording.NewTarget(size, f)
	h := newHost(f, children...)
	h.SetMaxSize(size)
	h.SetConstraints(graphics.BoundsFromLTWH(0, 0, size.Width, size.Height))
	h.AttachRenderTarget(target)
	t.Cleanup(h.Destroy)
	return &scene{host: h, target: target, factory: f}
}

type captured struct {
	errs []*errors.Error
}

func (c *captured) HandleError(err *errors.Error)      { c.errs = append(c.errs, err) }
func (c *captured) HandlePanic(err *errors.PanicError) {}

func captureErrors(t *testing.T) *captured {
	t.Helper()
	c := &captured{}
	errors.SetHandler(c)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return c
}
