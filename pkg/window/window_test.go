package window_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/rendering/recording"
	"github.com/go-drift/dwidget/pkg/widgets"
	"github.com/go-drift/dwidget/pkg/window"
)

type fixture struct {
	win     *window.Window
	surface *window.Headless
	device  *recording.Device
}

func newFixture(t *testing.T, width, height int) *fixture {
	t.Helper()
	dev := recording.NewDevice()
	s := window.NewHeadless(dev, width, height)
	w := window.New(s)
	t.Cleanup(w.Destroy)
	return &fixture{win: w, surface: s, device: dev}
}

func fixedBox(w, h float32) *widgets.Box {
	b := widgets.NewBox()
	b.SetSize(graphics.Size{Width: w, Height: h})
	return b
}

type captured struct {
	mu     sync.Mutex
	errs   []*errors.Error
	panics []*errors.PanicError
}

func (c *captured) HandleError(err *errors.Error) {
	c.mu.Lock()
	c.errs = append(c.errs, err)
	c.mu.Unlock()
}

func (c *captured) HandlePanic(err *errors.PanicError) {
	c.mu.Lock()
	c.panics = append(c.panics, err)
	c.mu.Unlock()
}

func captureErrors(t *testing.T) *captured {
	t.Helper()
	c := &captured{}
	errors.SetHandler(c)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return c
}

func TestWindow_PaintLaysOutRoot(t *testing.T) {
	f := newFixture(t, 200, 100)
	box := fixedBox(50, 20)
	f.win.SetRoot(box)
	require.True(t, f.surface.Dirty())

	require.NoError(t, f.win.Paint())

	require.Len(t, f.device.Targets(), 1)
	target := f.device.Last()
	assert.Same(t, target, box.Target())
	assert.Equal(t, graphics.BoundsFromLTWH(0, 0, 200, 100), box.Constraints())
	assert.Equal(t, graphics.Bounds{Left: 75, Top: 40, Right: 125, Bottom: 60}, box.RenderBounds())
	assert.Equal(t, 1, target.Count("fillRect"))
	assert.Equal(t, 1, target.Frames)
	assert.False(t, f.surface.Dirty())
}

func TestWindow_RootChangeInvalidatesSurface(t *testing.T) {
	f := newFixture(t, 200, 100)
	box := fixedBox(50, 20)
	f.win.SetRoot(box)
	require.NoError(t, f.win.Paint())
	require.False(t, f.surface.Dirty())

	box.SetBackgroundColor(graphics.ColorGreen)
	assert.True(t, f.surface.Dirty())

	require.NoError(t, f.win.Paint())
	assert.False(t, f.surface.Dirty())
	assert.Equal(t, 2, f.device.Last().Frames)
}

func TestWindow_InheritedValues(t *testing.T) {
	f := newFixture(t, 200, 100)
	txt := widgets.NewText("abcd")
	f.win.SetRoot(widgets.NewStack(layout.Horizontal, txt))

	assert.Same(t, f.device.RecordingFactory(), txt.Factory())
	assert.Equal(t, float32(1), txt.Scale())
	assert.Equal(t, graphics.Size{Width: 24, Height: 15}, txt.Measured())
}

func TestWindow_Resize(t *testing.T) {
	f := newFixture(t, 200, 100)
	box := fixedBox(50, 20)
	f.win.SetRoot(box)
	require.NoError(t, f.win.Paint())
	target := f.device.Last()
	target.Reset()

	f.surface.SetClientSize(400, 200)
	assert.True(t, f.win.HandleEvent(window.Event{Type: window.EventResize}))

	assert.Equal(t, graphics.Size{Width: 400, Height: 200}, f.win.PointSize())
	assert.Equal(t, graphics.Bounds{Left: 175, Top: 90, Right: 225, Bottom: 110}, box.RenderBounds())
	assert.Equal(t, 1, target.Count("resize"))
	assert.True(t, f.surface.Dirty())

	require.NoError(t, f.win.Paint())
	assert.Len(t, f.device.Targets(), 1, "resized in place")
	assert.Equal(t, 1, target.Count("fillRect"))
}

func TestWindow_DPIChangeRecreatesTarget(t *testing.T) {
	f := newFixture(t, 200, 100)
	box := fixedBox(50, 20)
	f.win.SetRoot(box)
	require.NoError(t, f.win.Paint())
	first := f.device.Last()

	f.surface.SetDPI(192)
	f.win.HandleEvent(window.Event{Type: window.EventDPIChanged})
	assert.Nil(t, box.Target())
	assert.Nil(t, f.win.Target())
	assert.Equal(t, float32(2), box.Scale())
	assert.Equal(t, graphics.Size{Width: 100, Height: 50}, f.win.PointSize())

	require.NoError(t, f.win.Paint())
	require.Len(t, f.device.Targets(), 2)
	second := f.device.Last()
	assert.NotSame(t, first, second)
	assert.Same(t, second, box.Target())
	assert.Equal(t, float32(2), second.Scale())
	assert.Equal(t, graphics.Bounds{Left: 25, Top: 15, Right: 75, Bottom: 35}, box.RenderBounds())
}

func TestWindow_PointerInPixels(t *testing.T) {
	f := newFixture(t, 400, 200)
	f.surface.SetDPI(192)
	btn := widgets.NewButton("Go")
	btn.SetSize(graphics.Size{Width: 100, Height: 30})
	clicks := 0
	btn.OnClick(func() { clicks++ })
	f.win.SetRoot(widgets.NewComposite(btn))
	require.NoError(t, f.win.Paint())
	require.Equal(t, graphics.Bounds{Left: 50, Top: 35, Right: 150, Bottom: 65}, btn.LayoutBounds())

	assert.True(t, f.win.HandleEvent(window.Event{Type: window.EventPointerMove, X: 200, Y: 100}))
	assert.True(t, btn.Hovered())

	assert.True(t, f.win.HandleEvent(window.Event{Type: window.EventPointerPress, X: 200, Y: 100}))
	assert.True(t, btn.Pressed())
	assert.True(t, f.win.HandleEvent(window.Event{Type: window.EventPointerRelease, X: 200, Y: 100}))
	assert.Equal(t, 1, clicks)

	// (50, 50) pixels is (25, 25) points, left of the button.
	assert.False(t, f.win.PointerPress(50, 50))

	f.win.HandleEvent(window.Event{Type: window.EventPointerLeave})
	assert.False(t, btn.Hovered())
}

func TestWindow_PointerWithoutRoot(t *testing.T) {
	f := newFixture(t, 100, 100)
	assert.False(t, f.win.PointerMove(1, 1))
	assert.False(t, f.win.PointerPress(1, 1))
	assert.False(t, f.win.PointerRelease(1, 1))
	assert.NoError(t, f.win.Paint())
	assert.Empty(t, f.device.Targets())
}

func TestWindow_DeviceLostRecreatesTarget(t *testing.T) {
	f := newFixture(t, 200, 100)
	box := fixedBox(50, 20)
	f.win.SetRoot(box)
	require.NoError(t, f.win.Paint())

	f.device.Last().FailEndDraw = errors.ErrDeviceLost
	box.SetBackgroundColor(graphics.ColorRed)
	err := f.win.Paint()
	assert.ErrorIs(t, err, errors.ErrDeviceLost)
	assert.Nil(t, f.win.Target())
	assert.Nil(t, box.Target())
	assert.True(t, f.surface.Dirty())

	require.NoError(t, f.win.Paint())
	assert.Len(t, f.device.Targets(), 2)
	assert.Equal(t, 1, f.device.Last().Count("fillRect"))
}

func TestWindow_TargetCreationFailure(t *testing.T) {
	errs := captureErrors(t)
	f := newFixture(t, 200, 100)
	f.win.SetRoot(fixedBox(10, 10))
	f.device.FailCreate = errors.New("no adapter")

	assert.False(t, f.win.HandleEvent(window.Event{Type: window.EventPaint}))
	require.Len(t, errs.errs, 1)
	assert.Equal(t, errors.KindDevice, errs.errs[0].Kind)
	var initErr *errors.ResourceInitError
	assert.True(t, errors.As(errs.errs[0], &initErr))

	// Retried on the next paint.
	assert.True(t, f.win.HandleEvent(window.Event{Type: window.EventPaint}))
	assert.Len(t, f.device.Targets(), 1)
}

func TestWindow_ClearsBeforeRootPaints(t *testing.T) {
	f := newFixture(t, 100, 100)
	f.win.SetRoot(fixedBox(10, 10))
	require.NoError(t, f.win.Paint())

	ops := f.device.Last().OpNames()
	require.GreaterOrEqual(t, len(ops), 3)
	assert.Equal(t, []string{"beginDraw", "pushClip", "clear"}, ops[:3])
	assert.Equal(t, "0xFFFFFFFF", f.device.Last().Ops()[2].Params["color"])

	f.win.SetBackground(graphics.ColorBlack)
	assert.True(t, f.surface.Dirty())
	f.device.Last().Reset()
	require.NoError(t, f.win.Paint())
	assert.Equal(t, "0xFF000000", f.device.Last().Ops()[2].Params["color"])
}

func TestWindow_Title(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.win.SetTitle("Demo")
	assert.Equal(t, "Demo", f.win.Title())
	assert.Equal(t, "Demo", f.surface.Title())
}

func TestWindow_DebugReachesWidgets(t *testing.T) {
	f := newFixture(t, 100, 100)
	box := fixedBox(10, 10)
	f.win.SetRoot(widgets.NewComposite(box))
	require.NoError(t, f.win.Paint())
	require.Equal(t, 1, f.device.Last().Count("drawRect"))

	f.win.SetDebug(true)
	assert.True(t, f.surface.Dirty())
	f.device.Last().Reset()
	require.NoError(t, f.win.Paint())
	// Two overlay rectangles for each of the two widgets plus the stroke.
	assert.Equal(t, 5, f.device.Last().Count("drawRect"))
}

func TestWindow_SetRootReplacesTree(t *testing.T) {
	f := newFixture(t, 100, 100)
	first := fixedBox(10, 10)
	f.win.SetRoot(first)
	require.NoError(t, f.win.Paint())

	second := fixedBox(20, 20)
	f.win.SetRoot(second)
	assert.Nil(t, first.Target())
	assert.Nil(t, first.Factory())
	assert.NotNil(t, second.Factory())

	require.NoError(t, f.win.Paint())
	assert.Same(t, f.device.Last(), second.Target())
	assert.Len(t, f.device.Targets(), 1)
}

func TestWindow_Dispatch(t *testing.T) {
	f := newFixture(t, 200, 100)
	txt := widgets.NewText("before")
	f.win.SetRoot(txt)
	require.NoError(t, f.win.Paint())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.win.Dispatch(func() { txt.SetText("after") })
	}()
	wg.Wait()

	assert.True(t, f.win.Pending())
	assert.Equal(t, "before", txt.Text())
	assert.True(t, f.surface.Dirty())

	require.NoError(t, f.win.Paint())
	assert.False(t, f.win.Pending())
	assert.Equal(t, "after", txt.Text())
}

func TestWindow_DispatchRecoversPanics(t *testing.T) {
	errs := captureErrors(t)
	f := newFixture(t, 10, 10)
	ran := false
	f.win.Dispatch(func() { panic("boom") })
	f.win.Dispatch(func() { ran = true })

	f.win.Update()
	assert.True(t, ran)
	require.Len(t, errs.panics, 1)
	assert.Equal(t, "boom", errs.panics[0].Value)
}

func TestWindow_Close(t *testing.T) {
	f := newFixture(t, 100, 100)
	box := fixedBox(10, 10)
	f.win.SetRoot(box)
	require.NoError(t, f.win.Paint())

	closed := 0
	f.win.OnClose(func() { closed++ })
	assert.True(t, f.win.HandleEvent(window.Event{Type: window.EventClose}))
	f.win.Close()

	assert.Equal(t, 1, closed)
	assert.True(t, f.win.Closed())
	assert.Nil(t, box.Target())
	assert.ErrorIs(t, f.win.Paint(), window.ErrClosed)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "paint", window.EventPaint.String())
	assert.Equal(t, "pointer-release", window.EventPointerRelease.String())
	assert.Equal(t, "unknown", window.EventType(0).String())
}
