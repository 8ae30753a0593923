// Package main is the dwidget demo application: a counter window built from
// texts, stacks and buttons.
package main

import (
	"strconv"

	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/widgets"
)

// demoApp holds the widgets the handlers update.
type demoApp struct {
	root      *widgets.Stack
	counter   *widgets.Text
	increment *widgets.Button
	exit      *widgets.Button
	count     int
}

// newDemoApp builds the demo tree. quit is called by the Exit button.
func newDemoApp(quit func()) *demoApp {
	a := &demoApp{}

	title := widgets.NewText("Demo App").SetFontSize(24)
	spaced(title, 8)
	title.SetVerticalAlignment(layout.Center)

	description := label("This is a sample demo app using dwidget.")
	a.counter = label(counterText(0))
	a.counter.SetID("counter")

	center := label("Center Aligned")
	center.SetHorizontalAlignment(layout.Center)
	end := label("End Aligned")
	end.SetHorizontalAlignment(layout.End)

	a.increment = button("Increment", a.onIncrement)
	a.increment.SetID("increment")
	a.exit = button("Exit", quit)
	a.exit.SetID("exit")

	buttons := widgets.NewStack(layout.Horizontal, a.increment, a.exit)
	spaced(buttons, 4)

	a.root = widgets.NewStack(layout.Vertical, title, description, a.counter, center, end, buttons)
	spaced(a.root, 4)
	return a
}

// Root returns the root widget.
func (a *demoApp) Root() widgets.Widget {
	return a.root
}

func (a *demoApp) onIncrement() {
	a.count++
	a.counter.SetText(counterText(a.count))
}

func counterText(n int) string {
	return "Counter: " + strconv.Itoa(n)
}
