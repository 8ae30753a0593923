package testing

import (
	"fmt"

	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/widgets"
	"github.com/go-drift/dwidget/pkg/window"
)

// Tap presses and releases the pointer at the center of the first widget
// matched by finder.
func (t *WidgetTester) Tap(finder Finder) error {
	w, err := t.target("Tap", finder)
	if err != nil {
		return err
	}
	return t.TapAt(widgetCenter(w))
}

// TapAt presses and releases the pointer at a point.
func (t *WidgetTester) TapAt(p graphics.Point) error {
	if err := t.SendPointer(window.EventPointerMove, p); err != nil {
		return err
	}
	if err := t.SendPointer(window.EventPointerPress, p); err != nil {
		return err
	}
	return t.SendPointer(window.EventPointerRelease, p)
}

// Hover moves the pointer to the center of the first widget matched by
// finder.
func (t *WidgetTester) Hover(finder Finder) error {
	w, err := t.target("Hover", finder)
	if err != nil {
		return err
	}
	return t.SendPointer(window.EventPointerMove, widgetCenter(w))
}

// Press presses the pointer on the first widget matched by finder without
// releasing it.
func (t *WidgetTester) Press(finder Finder) error {
	w, err := t.target("Press", finder)
	if err != nil {
		return err
	}
	p := widgetCenter(w)
	if err := t.SendPointer(window.EventPointerMove, p); err != nil {
		return err
	}
	return t.SendPointer(window.EventPointerPress, p)
}

// Leave moves the pointer out of the window.
func (t *WidgetTester) Leave() {
	t.window.HandleEvent(window.Event{Type: window.EventPointerLeave})
}

// SendPointer delivers a pointer event at a point, converted to pixels the
// way a native surface reports it.
func (t *WidgetTester) SendPointer(typ window.EventType, p graphics.Point) error {
	root := t.window.Root()
	if root == nil {
		return fmt.Errorf("%s: no root widget", typ)
	}
	x, y := root.WidgetBase().PointToPixel(p)
	t.window.HandleEvent(window.Event{Type: typ, X: x, Y: y})
	return nil
}

func (t *WidgetTester) target(op string, finder Finder) (widgets.Widget, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return nil, fmt.Errorf("%s: finder matched no widgets: %s", op, finder.Description())
	}
	w := result.First()
	if !w.WidgetBase().Visible() {
		return nil, fmt.Errorf("%s: widget is hidden: %s", op, finder.Description())
	}
	return w, nil
}
