package theme

import (
	"github.com/go-drift/dwidget/pkg/widgets"
	"github.com/go-drift/dwidget/pkg/window"
)

// TextOf creates a Text widget with the given content and style.
//
//	t := theme.DefaultDarkTheme()
//	title := theme.TextOf("Welcome", t.TextTheme.Headline)
func TextOf(content string, style TextStyle) *widgets.Text {
	w := widgets.NewText(content)
	ApplyTextStyle(w, style)
	return w
}

// ApplyTextStyle sets the font and color of t. Zero fields are left alone.
func ApplyTextStyle(t *widgets.Text, style TextStyle) {
	if style.FontFamily != "" {
		t.SetFontFamily(style.FontFamily)
	}
	if style.FontSize > 0 {
		t.SetFontSize(style.FontSize)
	}
	if style.FontWeight != 0 {
		t.SetFontWeight(style.FontWeight)
	}
	t.SetColor(style.Color)
}

// ButtonOf creates a Button styled by the theme's ButtonThemeData.
func ButtonOf(t *ThemeData, label string, onClick func()) *widgets.Button {
	b := widgets.NewButton(label)
	if onClick != nil {
		b.OnClick(onClick)
	}
	ApplyButtonTheme(b, t.ButtonThemeOf())
	return b
}

// ApplyButtonTheme sets the colors, padding and caption size of b.
func ApplyButtonTheme(b *widgets.Button, bt ButtonThemeData) {
	b.SetBackgroundColor(bt.BackgroundColor).
		SetForegroundColor(bt.ForegroundColor).
		SetStrokeColor(bt.StrokeColor).
		SetHoverColor(bt.HoverColor).
		SetPressedColor(bt.PressedColor).
		SetPadding(bt.Padding)
	if bt.FontSize > 0 {
		b.Caption().SetFontSize(bt.FontSize)
	}
}

// Apply styles every Text and Button below root. Button captions follow
// the button theme; other texts use the body style.
func Apply(t *ThemeData, root widgets.Widget) {
	if root == nil {
		return
	}
	bt := t.ButtonThemeOf()
	var walk func(w widgets.Widget)
	walk = func(w widgets.Widget) {
		switch w := w.(type) {
		case *widgets.Button:
			ApplyButtonTheme(w, bt)
			return
		case *widgets.Text:
			ApplyTextStyle(w, t.TextTheme.Body)
		}
		for _, c := range w.WidgetBase().ChildWidgets() {
			walk(c)
		}
	}
	walk(root)
}

// ApplyWindow sets the window background and styles its root.
func ApplyWindow(t *ThemeData, w *window.Window) {
	w.SetBackground(t.ColorScheme.Background)
	Apply(t, w.Root())
}
