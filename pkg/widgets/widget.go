package widgets

import (
	"fmt"
	"reflect"

	"github.com/chewxy/math32"

	"github.com/go-drift/dwidget/pkg/core"
	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/rendering"
)

// Widget is implemented by every widget. The hooks are called by the
// pipeline resources; application code uses the [Base] methods instead.
type Widget interface {
	core.Owner

	// WidgetBase returns the embedded Base.
	WidgetBase() *Base

	// Measure returns the content size for the available size. It must not
	// change the widget's own properties. Containers measure their children.
	Measure(available graphics.Size) graphics.Size

	// Arrange lays out children inside ctx. The widget's own bounds are
	// already resolved.
	Arrange(ctx *LayoutContext)

	// Render draws the widget, children excluded.
	Render(ctx *rendering.Context)

	// CreateResources eagerly creates backend objects.
	CreateResources()

	// DiscardResources releases backend objects.
	DiscardResources()

	HandlePointerHover(p graphics.Point) bool
	HandlePointerPress(p graphics.Point) bool
	HandlePointerRelease(p graphics.Point) bool
	HandlePointerLeave()
}

// Unbounded is the default MaxSize.
var Unbounded = graphics.Size{Width: math32.MaxFloat32, Height: math32.MaxFloat32}

// Layout properties shared by every widget.
var (
	SizeProperty                = core.NewProperty("Size", graphics.Size{})
	MarginProperty              = core.NewProperty("Margin", graphics.Bounds{})
	VerticalAlignmentProperty   = core.NewProperty("VerticalAlignment", layout.Center)
	HorizontalAlignmentProperty = core.NewProperty("HorizontalAlignment", layout.Center)
	MaxSizeProperty             = core.NewProperty("MaxSize", Unbounded, core.SkipUnchanged[graphics.Size]())
	ConstraintsProperty         = core.NewProperty("Constraints", graphics.Bounds{}, core.SkipUnchanged[graphics.Bounds]())
	VisibleProperty             = core.NewProperty("Visible", true, core.SkipUnchanged[bool]())
)

// RenderTargetMarker is touched whenever a widget is attached to or detached
// from a render target. Resources holding target objects bind to it.
var RenderTargetMarker = core.NewMarker("RenderTarget")

// Values owned by the window and inherited by every widget below it.
var (
	ScaleResource = core.NewResource("Scale", func(o core.Owner) (float32, error) {
		if s, ok := o.(ScaleSource); ok {
			return s.DeviceScale(), nil
		}
		return 1, nil
	})
	FactoryResource = core.NewResource("Factory", func(o core.Owner) (rendering.Factory, error) {
		if s, ok := o.(FactorySource); ok {
			return s.Factory(), nil
		}
		return nil, errors.New("owner provides no factory")
	})
	DebugProperty = core.NewProperty("Debug", false)
	// ClearColorProperty fills the target before a root widget paints.
	// Transparent leaves the target as is.
	ClearColorProperty = core.NewProperty("ClearColor", graphics.Color(0))

	InheritedScale      = core.NewInheritedResource("InheritedScale", ScaleResource, 1)
	InheritedFactory    = core.NewInheritedResource[rendering.Factory]("InheritedFactory", FactoryResource, nil)
	InheritedDebug      = core.NewInheritedProperty("InheritedDebug", DebugProperty)
	InheritedClearColor = core.NewInheritedProperty("InheritedClearColor", ClearColorProperty)
)

// ScaleSource is implemented by owners of [ScaleResource].
type ScaleSource interface {
	DeviceScale() float32
}

// FactorySource is implemented by owners of [FactoryResource].
type FactorySource interface {
	Factory() rendering.Factory
}

// Pipeline resources shared by every widget.
var (
	MeasureResource = core.NewResource("Measure", func(o core.Owner) (graphics.Size, error) {
		return o.(pipeline).computeMeasure()
	}).Bind(MaxSizeProperty, SizeProperty, MarginProperty, VisibleProperty,
		HorizontalAlignmentProperty, VerticalAlignmentProperty)

	LayoutResource = core.NewResource("Layout", func(o core.Owner) (LayoutContext, error) {
		return o.(pipeline).computeLayout()
	}).Bind(MeasureResource, ConstraintsProperty, HorizontalAlignmentProperty, VerticalAlignmentProperty)

	RenderBoundsResource = core.NewResource("RenderBounds", func(o core.Owner) (graphics.Bounds, error) {
		return o.(pipeline).computeRenderBounds()
	}).Bind(LayoutResource)

	RenderGeometryResource = core.NewResource("RenderGeometry", func(o core.Owner) (rendering.Geometry, error) {
		return o.(pipeline).computeRenderGeometry()
	}).Bind(RenderBoundsResource, InheritedFactory)

	RenderContentResource = core.NewResource("RenderContent", func(o core.Owner) (struct{}, error) {
		return struct{}{}, o.(pipeline).computeRenderContent()
	}).Bind(RenderBoundsResource, RenderTargetMarker, VisibleProperty, InheritedDebug, InheritedClearColor)
)

// pipeline is implemented by Base. Resource initializers dispatch through it.
type pipeline interface {
	computeMeasure() (graphics.Size, error)
	computeLayout() (LayoutContext, error)
	computeRenderBounds() (graphics.Bounds, error)
	computeRenderGeometry() (rendering.Geometry, error)
	computeRenderContent() error
}

// Base is embedded by every widget. It owns the pipeline resources and
// provides container defaults for the [Widget] hooks: children are measured
// to the largest child and laid out inside the render bounds.
type Base struct {
	core.Element

	self       Widget
	id         string
	target     rendering.Target
	frame      *rendering.Context
	background Widget
}

// Init registers the widget dependencies for self. Constructors of types
// embedding Base call it before anything else.
func (b *Base) Init(self Widget) {
	b.self = self
	b.SetSelf(self)
	b.RegisterDependency(
		SizeProperty,
		MarginProperty,
		VerticalAlignmentProperty,
		HorizontalAlignmentProperty,
		MaxSizeProperty,
		ConstraintsProperty,
		VisibleProperty,
		RenderTargetMarker,
		InheritedScale,
		InheritedFactory,
		InheritedDebug,
		InheritedClearColor,
		MeasureResource,
		LayoutResource,
		RenderBoundsResource,
		RenderGeometryResource,
		RenderContentResource,
	)
}

// WidgetBase implements Widget.
func (b *Base) WidgetBase() *Base {
	return b
}

// Widget returns the outer widget.
func (b *Base) Widget() Widget {
	return b.self
}

// ID returns the identifier set with SetID.
func (b *Base) ID() string {
	return b.id
}

// SetID sets an identifier used by scenes, scripts and diagnostics.
func (b *Base) SetID(id string) {
	b.id = id
}

func (b *Base) String() string {
	name := "Widget"
	if b.self != nil {
		t := reflect.TypeOf(b.self)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		name = t.Name()
	}
	if b.id != "" {
		return name + "#" + b.id
	}
	return fmt.Sprintf("%s%s", name, b.Handle())
}

// Parent returns the parent widget, or nil for a root widget.
func (b *Base) Parent() Widget {
	p := b.Element.Parent()
	if p == nil {
		return nil
	}
	w, _ := p.Self().(Widget)
	return w
}

// ChildWidgets returns the child widgets in order.
func (b *Base) ChildWidgets() []Widget {
	children := b.Element.Children()
	out := make([]Widget, 0, len(children))
	for _, c := range children {
		if w, ok := c.Self().(Widget); ok {
			out = append(out, w)
		}
	}
	return out
}

// Size returns the fixed size. Zero extents are sized by content.
func (b *Base) Size() graphics.Size {
	return SizeProperty.Value(b.self)
}

// SetSize fixes the widget size on the axes where s is positive.
func (b *Base) SetSize(s graphics.Size) {
	SizeProperty.SetValue(b.self, s)
}

// Margin returns the space kept around the widget.
func (b *Base) Margin() graphics.Bounds {
	return MarginProperty.Value(b.self)
}

// SetMargin sets the space kept around the widget.
func (b *Base) SetMargin(m graphics.Bounds) {
	MarginProperty.SetValue(b.self, m)
}

// VerticalAlignment returns how the widget is placed vertically.
func (b *Base) VerticalAlignment() layout.Alignment {
	return VerticalAlignmentProperty.Value(b.self)
}

// SetVerticalAlignment sets how the widget is placed vertically.
func (b *Base) SetVerticalAlignment(a layout.Alignment) {
	VerticalAlignmentProperty.SetValue(b.self, a)
}

// HorizontalAlignment returns how the widget is placed horizontally.
func (b *Base) HorizontalAlignment() layout.Alignment {
	return HorizontalAlignmentProperty.Value(b.self)
}

// SetHorizontalAlignment sets how the widget is placed horizontally.
func (b *Base) SetHorizontalAlignment(a layout.Alignment) {
	HorizontalAlignmentProperty.SetValue(b.self, a)
}

// MaxSize returns the space available to the widget.
func (b *Base) MaxSize() graphics.Size {
	return MaxSizeProperty.Value(b.self)
}

// SetMaxSize sets the space available to the widget. Parents set it on
// their children while measuring; the window sets it on the root.
func (b *Base) SetMaxSize(s graphics.Size) {
	MaxSizeProperty.SetValue(b.self, s)
}

// Constraints returns the bounds the widget is aligned in.
func (b *Base) Constraints() graphics.Bounds {
	return ConstraintsProperty.Value(b.self)
}

// SetConstraints sets the bounds the widget is aligned in.
func (b *Base) SetConstraints(c graphics.Bounds) {
	ConstraintsProperty.SetValue(b.self, c)
}

// Visible reports whether the widget takes space and paints.
func (b *Base) Visible() bool {
	return VisibleProperty.Value(b.self)
}

// SetVisible shows or hides the widget. Hidden widgets measure to zero.
func (b *Base) SetVisible(v bool) {
	VisibleProperty.SetValue(b.self, v)
}

// Measured returns the measured size including margin.
func (b *Base) Measured() graphics.Size {
	return MeasureResource.Value(b.self)
}

// LayoutBounds returns the bounds the widget occupies including margin.
func (b *Base) LayoutBounds() graphics.Bounds {
	return LayoutResource.Value(b.self).LayoutBounds
}

// RenderBounds returns the bounds the widget draws in.
func (b *Base) RenderBounds() graphics.Bounds {
	return RenderBoundsResource.Value(b.self)
}

// Background returns the widget drawn behind this one, as assigned by the
// parent during layout.
func (b *Base) Background() Widget {
	return b.background
}

// Target returns the attached render target, or nil.
func (b *Base) Target() rendering.Target {
	return b.target
}

// Factory returns the factory inherited from the window, or nil.
func (b *Base) Factory() rendering.Factory {
	return InheritedFactory.Value(b.self)
}

// Scale returns the inherited pixels per point.
func (b *Base) Scale() float32 {
	return InheritedScale.Value(b.self)
}

// PixelToPoint converts window pixel coordinates to points.
func (b *Base) PixelToPoint(x, y int) graphics.Point {
	s := b.Scale()
	return graphics.Point{X: float32(x) / s, Y: float32(y) / s}
}

// PointToPixel converts points to window pixel coordinates.
func (b *Base) PointToPixel(p graphics.Point) (int, int) {
	s := b.Scale()
	return int(p.X * s), int(p.Y * s)
}

// AttachRenderTarget attaches the widget tree to target.
func (b *Base) AttachRenderTarget(target rendering.Target) {
	b.target = target
	for _, c := range b.ChildWidgets() {
		c.WidgetBase().AttachRenderTarget(target)
	}
	RenderTargetMarker.Touch(b.self)
}

// DetachRenderTarget discards backend resources of the tree and detaches
// it from its render target.
func (b *Base) DetachRenderTarget() {
	b.self.DiscardResources()
	b.clearTarget()
}

func (b *Base) clearTarget() {
	b.target = nil
	for _, c := range b.ChildWidgets() {
		c.WidgetBase().clearTarget()
	}
	RenderTargetMarker.Touch(b.self)
}

// IssueFrame paints the widget tree if its content is stale.
func (b *Base) IssueFrame() error {
	return RenderContentResource.Initialize(b.self)
}

// DiscardFrame marks the widget tree for repaint.
func (b *Base) DiscardFrame() {
	RenderContentResource.Invalidate(b.self)
}

// HitTest reports whether p lies inside the widget's render geometry.
func (b *Base) HitTest(p graphics.Point) bool {
	if !b.Visible() {
		return false
	}
	g, err := RenderGeometryResource.Get(b.self)
	if err != nil || g == nil {
		return false
	}
	return g.FillContainsPoint(p)
}

// Destroy detaches the tree from its target and releases every per-owner
// slot held by the widget and its descendants.
func (b *Base) Destroy() {
	if b.target != nil {
		b.DetachRenderTarget()
	}
	if p := b.Parent(); p != nil {
		if c, ok := p.(childRemover); ok {
			c.RemoveChild(b.self)
		}
	}
	b.Element.Destroy()
}

// Default hooks.

func (b *Base) Measure(available graphics.Size) graphics.Size {
	var size graphics.Size
	for _, c := range b.ChildWidgets() {
		size = size.Max(MeasureChild(c, available))
	}
	return size
}

func (b *Base) Arrange(ctx *LayoutContext) {
	for _, c := range b.ChildWidgets() {
		ctx.LayoutChild(c, ctx.RenderBounds())
	}
}

func (b *Base) Render(*rendering.Context) {}

func (b *Base) CreateResources() {
	for _, c := range b.ChildWidgets() {
		c.CreateResources()
	}
}

func (b *Base) DiscardResources() {
	for _, c := range b.ChildWidgets() {
		c.DiscardResources()
	}
	RenderGeometryResource.Invalidate(b.self)
	RenderContentResource.Invalidate(b.self)
}

func (b *Base) HandlePointerHover(p graphics.Point) bool {
	handled := false
	for _, c := range b.ChildWidgets() {
		if !handled && c.WidgetBase().HitTest(p) && c.HandlePointerHover(p) {
			handled = true
			continue
		}
		c.HandlePointerLeave()
	}
	return handled
}

func (b *Base) HandlePointerPress(p graphics.Point) bool {
	for _, c := range b.ChildWidgets() {
		if c.WidgetBase().HitTest(p) && c.HandlePointerPress(p) {
			return true
		}
	}
	return false
}

func (b *Base) HandlePointerRelease(p graphics.Point) bool {
	for _, c := range b.ChildWidgets() {
		if c.WidgetBase().HitTest(p) && c.HandlePointerRelease(p) {
			return true
		}
	}
	return false
}

func (b *Base) HandlePointerLeave() {
	for _, c := range b.ChildWidgets() {
		c.HandlePointerLeave()
	}
}

// MeasureChild measures child against the available size of its parent and
// returns the child's measured size including margin.
func MeasureChild(child Widget, available graphics.Size) graphics.Size {
	MaxSizeProperty.SetValue(child, available)
	return MeasureResource.Value(child)
}
