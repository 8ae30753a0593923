package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/scene"
	"github.com/go-drift/dwidget/pkg/script"
	"github.com/go-drift/dwidget/pkg/widgets"
	dwtest "github.com/go-drift/dwidget/pkg/testing"
)

func TestDemoApp_Increment(t *testing.T) {
	tester := dwtest.NewWidgetTesterWithT(t)
	app := newDemoApp(func() {})
	require.NoError(t, tester.PumpWidget(app.Root()))

	for range 3 {
		require.NoError(t, tester.Tap(dwtest.ByText("Increment")))
	}
	require.NoError(t, tester.Pump())

	assert.True(t, tester.Find(dwtest.ByText("Counter: 3")).Exists())
	assert.Equal(t, 3, app.count)
}

func TestDemoApp_Exit(t *testing.T) {
	tester := dwtest.NewWidgetTesterWithT(t)
	quit := 0
	app := newDemoApp(func() { quit++ })
	require.NoError(t, tester.PumpWidget(app.Root()))

	require.NoError(t, tester.Tap(dwtest.ByID("exit")))
	assert.Equal(t, 1, quit)
}

func TestDemoApp_Layout(t *testing.T) {
	tester := dwtest.NewWidgetTesterWithT(t)
	tester.SetSize(480, 320)
	app := newDemoApp(func() {})
	require.NoError(t, tester.PumpWidget(app.Root()))

	center := tester.Find(dwtest.ByText("Center Aligned")).First().WidgetBase().LayoutBounds()
	end := tester.Find(dwtest.ByText("End Aligned")).First().WidgetBase().LayoutBounds()
	root := app.root.LayoutBounds()

	assert.Greater(t, end.Right, center.Right)
	assert.InDelta(t, root.Right-4, end.Right, 0.01)

	inc := app.increment.LayoutBounds()
	exit := app.exit.LayoutBounds()
	assert.Less(t, inc.Right, exit.Left+0.01)
	assert.Equal(t, inc.Top, exit.Top)
}

func TestCounterScene(t *testing.T) {
	sc, err := scene.LoadFile("counter.yaml")
	require.NoError(t, err)

	engine := script.New(script.DefaultConfig())
	t.Cleanup(engine.Close)
	quit := false
	engine.OnQuit(func() { quit = true })
	require.NoError(t, engine.Attach(sc))

	tester := dwtest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(sc.Root))

	stack, ok := sc.Root.(*widgets.Stack)
	require.True(t, ok)
	assert.Equal(t, layout.Vertical, stack.Orientation())

	require.NoError(t, tester.Tap(dwtest.ByID("increment")))
	require.NoError(t, tester.Tap(dwtest.ByID("increment")))
	require.NoError(t, tester.Pump())
	assert.True(t, tester.Find(dwtest.ByText("Counter: 2")).Exists())

	require.NoError(t, tester.Tap(dwtest.ByID("exit")))
	assert.True(t, quit)
}
