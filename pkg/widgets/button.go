package widgets

import (
	"github.com/go-drift/dwidget/pkg/core"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/rendering"
)

// Button properties.
var (
	ButtonTextProperty       = core.NewProperty("ButtonText", "")
	PaddingProperty          = core.NewProperty("Padding", graphics.Bounds{Left: 8, Top: 4, Right: 8, Bottom: 4})
	ForegroundColorProperty  = core.NewProperty("ForegroundColor", graphics.ColorBlack)
	ButtonStrokeProperty     = core.NewProperty("ButtonStroke", graphics.ColorGray)
	ButtonBackgroundProperty = core.NewProperty("ButtonBackground", graphics.ColorLightGray)
	HoverColorProperty       = core.NewProperty("HoverColor", graphics.RGB(0xe5, 0xf1, 0xfb))
	PressedColorProperty     = core.NewProperty("PressedColor", graphics.RGB(0xcc, 0xe4, 0xf7))
)

// ButtonFontSize is the font size of button captions.
const ButtonFontSize float32 = 14

// Button is a clickable caption drawn over a box.
type Button struct {
	Base

	box     *Box
	caption *Text
	onClick func()

	hovered bool
	pressed bool
}

// NewButton creates a button with caption text.
func NewButton(text string) *Button {
	b := &Button{}
	b.Init(b)
	b.RegisterDependency(
		ButtonTextProperty,
		PaddingProperty,
		ForegroundColorProperty,
		ButtonStrokeProperty,
		ButtonBackgroundProperty,
		HoverColorProperty,
		PressedColorProperty,
	)

	b.box = NewBox()
	b.box.SetHorizontalAlignment(layout.Stretch)
	b.box.SetVerticalAlignment(layout.Stretch)

	b.caption = NewText("")
	b.caption.SetTextAlignment(rendering.TextAlignCenter)
	b.caption.SetFontSize(ButtonFontSize)

	b.RegisterChild(&b.box.Element)
	b.RegisterChild(&b.caption.Element)

	b.SetText(text)
	b.sync()
	return b
}

func (b *Button) Text() string { return ButtonTextProperty.Value(b) }

func (b *Button) SetText(s string) *Button {
	ButtonTextProperty.SetValue(b, s)
	return b
}

// Padding returns the space between the outline and the caption.
func (b *Button) Padding() graphics.Bounds { return PaddingProperty.Value(b) }

func (b *Button) SetPadding(p graphics.Bounds) *Button {
	PaddingProperty.SetValue(b, p)
	return b
}

func (b *Button) SetForegroundColor(c graphics.Color) *Button {
	ForegroundColorProperty.SetValue(b, c)
	return b
}

func (b *Button) SetStrokeColor(c graphics.Color) *Button {
	ButtonStrokeProperty.SetValue(b, c)
	return b
}

func (b *Button) SetBackgroundColor(c graphics.Color) *Button {
	ButtonBackgroundProperty.SetValue(b, c)
	return b
}

func (b *Button) SetHoverColor(c graphics.Color) *Button {
	HoverColorProperty.SetValue(b, c)
	return b
}

func (b *Button) SetPressedColor(c graphics.Color) *Button {
	PressedColorProperty.SetValue(b, c)
	return b
}

// OnClick sets the function called when the button is released.
func (b *Button) OnClick(fn func()) *Button {
	b.onClick = fn
	return b
}

// Hovered reports whether the pointer is over the button.
func (b *Button) Hovered() bool { return b.hovered }

// Pressed reports whether the button is held down.
func (b *Button) Pressed() bool { return b.pressed }

// Caption returns the text widget drawing the caption.
func (b *Button) Caption() *Text { return b.caption }

// Frame returns the box drawn behind the caption.
func (b *Button) Frame() *Box { return b.box }

// sync pushes the button properties and state into the parts.
func (b *Button) sync() {
	b.caption.SetText(b.Text())
	b.caption.SetColor(ForegroundColorProperty.Value(b))
	b.caption.SetMargin(b.Padding())
	b.box.SetStrokeColor(ButtonStrokeProperty.Value(b))

	fill := ButtonBackgroundProperty.Value(b)
	switch {
	case b.pressed:
		fill = PressedColorProperty.Value(b)
	case b.hovered:
		fill = HoverColorProperty.Value(b)
	}
	b.box.SetBackgroundColor(fill)
}

func (b *Button) Arrange(ctx *LayoutContext) {
	rb := ctx.RenderBounds()
	ctx.LayoutChild(b.box, rb)
	ctx.LayoutChildWithBackground(b.caption, rb, b.box)
}

func (b *Button) HandlePointerHover(graphics.Point) bool {
	if !b.hovered {
		b.hovered = true
		b.sync()
	}
	return true
}

func (b *Button) HandlePointerPress(graphics.Point) bool {
	b.pressed = true
	b.sync()
	return true
}

// HandlePointerRelease clicks the button if it saw the matching press.
func (b *Button) HandlePointerRelease(graphics.Point) bool {
	wasPressed := b.pressed
	b.pressed = false
	b.sync()
	if !wasPressed || b.onClick == nil {
		return false
	}
	b.onClick()
	return true
}

func (b *Button) HandlePointerLeave() {
	if !b.hovered && !b.pressed {
		return
	}
	b.hovered = false
	b.pressed = false
	b.sync()
}

// Click calls the click handler as if the button had been released.
func (b *Button) Click() {
	if b.onClick != nil {
		b.onClick()
	}
}

func init() {
	sync := core.NewListener(func(n core.Notification) {
		if n.Type != core.Updated {
			return
		}
		if b, ok := n.Owner.(*Button); ok && b.caption != nil {
			b.sync()
		}
	})
	for _, d := range []core.Dependency{
		ButtonTextProperty,
		PaddingProperty,
		ForegroundColorProperty,
		ButtonStrokeProperty,
		ButtonBackgroundProperty,
		HoverColorProperty,
		PressedColorProperty,
	} {
		d.AddListener(sync)
	}
}
