package widgets

import (
	"github.com/go-drift/dwidget/pkg/core"
	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/rendering"
)

// DefaultFontFamily is the family used when none is set.
const DefaultFontFamily = "Go"

// Text properties.
var (
	TextProperty               = core.NewProperty("Text", "")
	FontFamilyProperty         = core.NewProperty("FontFamily", DefaultFontFamily)
	FontSizeProperty           = core.NewProperty("FontSize", float32(12))
	FontWeightProperty         = core.NewProperty("FontWeight", rendering.FontWeightNormal)
	TextColorProperty          = core.NewProperty("TextColor", graphics.ColorBlack)
	TextAlignmentProperty      = core.NewProperty("TextAlignment", rendering.TextAlignLeading)
	ParagraphAlignmentProperty = core.NewProperty("ParagraphAlignment", rendering.ParagraphAlignNear)
)

var errNoFactory = errors.New("no rendering factory available")

// Text resources.
var (
	// TextFormatResource resolves the font selection through the inherited
	// factory.
	TextFormatResource = core.NewResource("TextFormat", func(o core.Owner) (rendering.TextFormat, error) {
		factory, err := InheritedFactory.Get(o)
		if err != nil {
			return nil, err
		}
		if factory == nil {
			return nil, errNoFactory
		}
		return factory.CreateTextFormat(textFormatSpec(o))
	}).Bind(FontFamilyProperty, FontSizeProperty, FontWeightProperty,
		TextAlignmentProperty, ParagraphAlignmentProperty, InheritedFactory)

	// TextLayoutResource shapes the text inside the render bounds.
	TextLayoutResource = core.NewResource("TextLayout", func(o core.Owner) (rendering.TextLayout, error) {
		format, err := TextFormatResource.Get(o)
		if err != nil {
			return nil, err
		}
		rb, err := RenderBoundsResource.Get(o)
		if err != nil {
			return nil, err
		}
		factory := InheritedFactory.Value(o)
		if factory == nil {
			return nil, errNoFactory
		}
		return factory.CreateTextLayout(TextProperty.Value(o), format, rb.Size())
	}).Bind(TextProperty, TextFormatResource, RenderBoundsResource)

	TextBrushResource = core.NewResource("TextBrush", func(o core.Owner) (rendering.Brush, error) {
		return solidBrush(o, TextColorProperty.Value(o))
	}).Bind(TextColorProperty, RenderTargetMarker)
)

func textFormatSpec(o core.Owner) rendering.TextFormatSpec {
	return rendering.TextFormatSpec{
		Family:             FontFamilyProperty.Value(o),
		Size:               FontSizeProperty.Value(o),
		Weight:             FontWeightProperty.Value(o),
		Alignment:          TextAlignmentProperty.Value(o),
		ParagraphAlignment: ParagraphAlignmentProperty.Value(o),
	}
}

// Text draws a single block of text. It measures to the extent of the laid
// out text and wraps at the available width.
type Text struct {
	Base
}

// NewText creates a text widget showing s.
func NewText(s string) *Text {
	t := &Text{}
	t.Init(t)
	t.RegisterDependency(
		TextProperty,
		FontFamilyProperty,
		FontSizeProperty,
		FontWeightProperty,
		TextColorProperty,
		TextAlignmentProperty,
		ParagraphAlignmentProperty,
		TextFormatResource,
		TextLayoutResource,
		TextBrushResource,
	)
	t.SetText(s)
	return t
}

func (t *Text) Text() string { return TextProperty.Value(t) }

func (t *Text) SetText(s string) *Text {
	TextProperty.SetValue(t, s)
	return t
}

func (t *Text) FontFamily() string { return FontFamilyProperty.Value(t) }

func (t *Text) SetFontFamily(family string) *Text {
	FontFamilyProperty.SetValue(t, family)
	return t
}

func (t *Text) FontSize() float32 { return FontSizeProperty.Value(t) }

func (t *Text) SetFontSize(size float32) *Text {
	FontSizeProperty.SetValue(t, size)
	return t
}

func (t *Text) FontWeight() rendering.FontWeight { return FontWeightProperty.Value(t) }

func (t *Text) SetFontWeight(w rendering.FontWeight) *Text {
	FontWeightProperty.SetValue(t, w)
	return t
}

func (t *Text) Color() graphics.Color { return TextColorProperty.Value(t) }

func (t *Text) SetColor(c graphics.Color) *Text {
	TextColorProperty.SetValue(t, c)
	return t
}

func (t *Text) TextAlignment() rendering.TextAlignment { return TextAlignmentProperty.Value(t) }

func (t *Text) SetTextAlignment(a rendering.TextAlignment) *Text {
	TextAlignmentProperty.SetValue(t, a)
	return t
}

func (t *Text) ParagraphAlignment() rendering.ParagraphAlignment {
	return ParagraphAlignmentProperty.Value(t)
}

func (t *Text) SetParagraphAlignment(a rendering.ParagraphAlignment) *Text {
	ParagraphAlignmentProperty.SetValue(t, a)
	return t
}

// Measure returns the text extent. Without a factory the text measures to
// zero.
func (t *Text) Measure(available graphics.Size) graphics.Size {
	factory := t.Factory()
	if factory == nil {
		return graphics.Size{}
	}
	format, err := TextFormatResource.Get(t)
	if err != nil {
		errors.ReportErr("Text.Measure", errors.KindInit, err)
		return graphics.Size{}
	}
	size, err := factory.MeasureText(t.Text(), format, available)
	if err != nil {
		errors.ReportErr("Text.Measure", errors.KindRender, err)
		return graphics.Size{}
	}
	return size
}

// Arrange is a no-op; text has no children.
func (t *Text) Arrange(*LayoutContext) {}

func (t *Text) Render(ctx *rendering.Context) {
	if t.Text() == "" {
		return
	}
	layout, err := TextLayoutResource.Get(t)
	if err != nil {
		errors.ReportErr("Text.Render", errors.KindRender, err)
		return
	}
	brush, err := TextBrushResource.Get(t)
	if err != nil {
		errors.ReportErr("Text.Render", errors.KindRender, err)
		return
	}
	rb := ctx.Bounds()
	ctx.Target().DrawTextLayout(graphics.Point{X: rb.Left, Y: rb.Top}, layout, brush)
}

func (t *Text) CreateResources() {
	errors.ReportErr("Text.CreateResources", errors.KindInit, TextFormatResource.Initialize(t))
	errors.ReportErr("Text.CreateResources", errors.KindInit, TextLayoutResource.Initialize(t))
	errors.ReportErr("Text.CreateResources", errors.KindRender, TextBrushResource.Initialize(t))
}

func (t *Text) DiscardResources() {
	TextLayoutResource.Invalidate(t)
	TextFormatResource.Invalidate(t)
	TextBrushResource.Invalidate(t)
	t.Base.DiscardResources()
}

func init() {
	MeasureResource.Bind(TextProperty, TextFormatResource, InheritedFactory)
	RenderContentResource.Bind(TextProperty, TextColorProperty, TextLayoutResource, TextBrushResource)
}
