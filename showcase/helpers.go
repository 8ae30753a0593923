package main

import (
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/widgets"
)

// spaced sets the same margin on every side of w.
func spaced(w widgets.Widget, margin float32) {
	w.WidgetBase().SetMargin(graphics.Bounds{Left: margin, Top: margin, Right: margin, Bottom: margin})
}

// label creates a body text with the default demo margin.
func label(text string) *widgets.Text {
	t := widgets.NewText(text).SetFontSize(14)
	spaced(t, 4)
	return t
}

// button creates a button that stretches across its slot.
func button(text string, onClick func()) *widgets.Button {
	b := widgets.NewButton(text).OnClick(onClick)
	spaced(b, 4)
	b.SetVerticalAlignment(layout.Center)
	b.SetHorizontalAlignment(layout.Stretch)
	return b
}
