package widgets

import (
	"github.com/go-drift/dwidget/pkg/core"
	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/rendering"
)

// Box properties.
var (
	BackgroundColorProperty = core.NewProperty("BackgroundColor", graphics.ColorWhite)
	StrokeColorProperty     = core.NewProperty("StrokeColor", graphics.ColorBlack)
	StrokeWidthProperty     = core.NewProperty("StrokeWidth", float32(1))
)

// Brush resources of a box, created on the attached render target.
var (
	FillBrushResource = core.NewResource("FillBrush", func(o core.Owner) (rendering.Brush, error) {
		return solidBrush(o, BackgroundColorProperty.Value(o))
	}).Bind(BackgroundColorProperty, RenderTargetMarker)

	StrokeBrushResource = core.NewResource("StrokeBrush", func(o core.Owner) (rendering.Brush, error) {
		return solidBrush(o, StrokeColorProperty.Value(o))
	}).Bind(StrokeColorProperty, RenderTargetMarker)
)

func solidBrush(o core.Owner, c graphics.Color) (rendering.Brush, error) {
	w, ok := o.(Widget)
	if !ok {
		return nil, errors.New("brush owner is not a widget")
	}
	t := w.WidgetBase().Target()
	if t == nil {
		return nil, errNoTarget
	}
	return t.CreateSolidBrush(c)
}

// Box fills its render bounds and strokes their outline.
type Box struct {
	Base
}

// NewBox creates a white box with a black one point outline.
func NewBox() *Box {
	b := &Box{}
	b.Init(b)
	b.RegisterDependency(
		BackgroundColorProperty,
		StrokeColorProperty,
		StrokeWidthProperty,
		FillBrushResource,
		StrokeBrushResource,
	)
	return b
}

func (b *Box) BackgroundColor() graphics.Color {
	return BackgroundColorProperty.Value(b)
}

func (b *Box) SetBackgroundColor(c graphics.Color) *Box {
	BackgroundColorProperty.SetValue(b, c)
	return b
}

func (b *Box) StrokeColor() graphics.Color {
	return StrokeColorProperty.Value(b)
}

func (b *Box) SetStrokeColor(c graphics.Color) *Box {
	StrokeColorProperty.SetValue(b, c)
	return b
}

func (b *Box) StrokeWidth() float32 {
	return StrokeWidthProperty.Value(b)
}

// SetStrokeWidth sets the outline width. Zero disables the outline.
func (b *Box) SetStrokeWidth(w float32) *Box {
	StrokeWidthProperty.SetValue(b, w)
	return b
}

func (b *Box) Render(ctx *rendering.Context) {
	t := ctx.Target()
	rb := ctx.Bounds()
	if fill, err := FillBrushResource.Get(b); err == nil {
		t.FillRect(rb, fill)
	} else {
		errors.ReportErr("Box.Render", errors.KindRender, err)
	}
	if w := b.StrokeWidth(); w > 0 {
		if stroke, err := StrokeBrushResource.Get(b); err == nil {
			t.DrawRect(rb, stroke, w)
		} else {
			errors.ReportErr("Box.Render", errors.KindRender, err)
		}
	}
}

func (b *Box) CreateResources() {
	errors.ReportErr("Box.CreateResources", errors.KindRender, FillBrushResource.Initialize(b))
	errors.ReportErr("Box.CreateResources", errors.KindRender, StrokeBrushResource.Initialize(b))
	b.Base.CreateResources()
}

func (b *Box) DiscardResources() {
	FillBrushResource.Invalidate(b)
	StrokeBrushResource.Invalidate(b)
	b.Base.DiscardResources()
}

func init() {
	RenderContentResource.Bind(BackgroundColorProperty, StrokeColorProperty, StrokeWidthProperty,
		FillBrushResource, StrokeBrushResource)
}
