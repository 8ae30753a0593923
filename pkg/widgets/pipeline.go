package widgets

import (
	"github.com/go-drift/dwidget/pkg/core"
	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/rendering"
)

var errNoTarget = errors.New("widget is not attached to a render target")

// Debug overlay colors.
var (
	debugRenderColor = graphics.ColorRed
	debugLayoutColor = graphics.ColorBlue
)

// LayoutContext is the result of laying out a widget. Arrange hooks receive
// it with LayoutBounds already aligned inside Constraints and may adjust it.
type LayoutContext struct {
	// Measure is the measured size including margin.
	Measure graphics.Size
	// Constraints are the bounds the parent offered.
	Constraints graphics.Bounds
	Margin      graphics.Bounds
	// LayoutBounds is the space taken including margin.
	LayoutBounds graphics.Bounds
	// Background is handed to children laid out through this context.
	Background Widget
}

// RenderBounds returns the layout bounds minus the margin.
func (c *LayoutContext) RenderBounds() graphics.Bounds {
	return c.LayoutBounds.Deflate(c.Margin)
}

// LayoutChild constrains child to constraints and returns its resolved
// layout. The child inherits the context's background widget.
func (c *LayoutContext) LayoutChild(child Widget, constraints graphics.Bounds) LayoutContext {
	return c.LayoutChildWithBackground(child, constraints, c.Background)
}

// LayoutChildWithBackground is LayoutChild with an explicit background.
func (c *LayoutContext) LayoutChildWithBackground(child Widget, constraints graphics.Bounds, background Widget) LayoutContext {
	cb := child.WidgetBase()
	if cb.background != background {
		cb.background = background
		LayoutResource.Invalidate(child)
	}
	ConstraintsProperty.SetValue(child, constraints)
	return LayoutResource.Value(child)
}

func (b *Base) computeMeasure() (graphics.Size, error) {
	if !b.Visible() {
		return graphics.Size{}, nil
	}
	margin := b.Margin()
	fixed := b.Size()
	available := b.MaxSize().Sub(margin)
	if fixed.Width > 0 {
		available.Width = min(available.Width, fixed.Width)
	}
	if fixed.Height > 0 {
		available.Height = min(available.Height, fixed.Height)
	}

	content := b.self.Measure(available)
	if fixed.Width > 0 {
		content.Width = fixed.Width
	}
	if fixed.Height > 0 {
		content.Height = fixed.Height
	}
	return content.Min(available).Add(margin), nil
}

func (b *Base) computeLayout() (LayoutContext, error) {
	measured, err := MeasureResource.Get(b.self)
	if err != nil {
		return LayoutContext{}, err
	}
	constraints := b.Constraints()
	ctx := LayoutContext{
		Measure:      measured,
		Constraints:  constraints,
		Margin:       b.Margin(),
		LayoutBounds: layout.Align(constraints, measured, b.HorizontalAlignment(), b.VerticalAlignment()),
		Background:   b.background,
	}
	b.self.Arrange(&ctx)
	return ctx, nil
}

func (b *Base) computeRenderBounds() (graphics.Bounds, error) {
	ctx, err := LayoutResource.Get(b.self)
	if err != nil {
		return graphics.Bounds{}, err
	}
	return ctx.RenderBounds(), nil
}

func (b *Base) computeRenderGeometry() (rendering.Geometry, error) {
	rb, err := RenderBoundsResource.Get(b.self)
	if err != nil {
		return nil, err
	}
	factory, err := InheritedFactory.Get(b.self)
	if err != nil {
		return nil, err
	}
	if factory == nil {
		return rendering.RectGeometry{Rect: rb}, nil
	}
	return factory.CreateRectangleGeometry(rb)
}

// computeRenderContent paints the widget and then its children. A widget
// painted by its parent draws into a sub context of the parent's frame;
// otherwise it starts a frame of its own.
func (b *Base) computeRenderContent() error {
	if b.target == nil {
		return errNoTarget
	}
	rb, err := RenderBoundsResource.Get(b.self)
	if err != nil {
		return err
	}

	var frame *rendering.Context
	if b.frame != nil {
		frame = b.frame.Sub(rb)
	} else {
		frame = rendering.Begin(b.target, rb)
		if c := InheritedClearColor.Value(b.self); c != 0 {
			b.target.Clear(c)
		}
	}

	if b.Visible() {
		b.self.Render(frame)
		if InheritedDebug.Value(b.self) {
			b.renderDebugLayout(frame)
		}
		for _, c := range b.ChildWidgets() {
			cb := c.WidgetBase()
			cb.frame = frame
			RenderContentResource.Invalidate(c)
			if err := RenderContentResource.Initialize(c); err != nil {
				errors.ReportErr("widgets.RenderContent", errors.KindRender, err)
			}
			cb.frame = nil
		}
	}
	return frame.End()
}

func (b *Base) renderDebugLayout(ctx *rendering.Context) {
	t := ctx.Target()
	lc, ok := LayoutResource.Peek(b.self)
	if !ok {
		return
	}
	if brush, err := t.CreateSolidBrush(debugRenderColor); err == nil {
		t.DrawRect(lc.RenderBounds(), brush, 1)
	}
	if brush, err := t.CreateSolidBrush(debugLayoutColor); err == nil {
		t.DrawRect(lc.LayoutBounds, brush, 1)
	}
}

func parentOf(o core.Owner) Widget {
	w, ok := o.(Widget)
	if !ok {
		return nil
	}
	return w.WidgetBase().Parent()
}

func init() {
	// A child measuring differently may change its parent's measure.
	MeasureResource.AddListener(core.NewListener(func(n core.Notification) {
		if n.Type != core.Invalidated {
			return
		}
		if p := parentOf(n.Owner); p != nil {
			MeasureResource.Invalidate(p)
		}
	}))

	// Painting is not incremental: a stale widget makes its ancestors and
	// its whole subtree stale.
	RenderContentResource.AddListener(core.NewListener(func(n core.Notification) {
		if n.Type != core.Invalidated {
			return
		}
		w, ok := n.Owner.(Widget)
		if !ok {
			return
		}
		if p := w.WidgetBase().Parent(); p != nil {
			RenderContentResource.Invalidate(p)
		}
		for _, c := range w.WidgetBase().ChildWidgets() {
			RenderContentResource.Invalidate(c)
		}
	}))
}
