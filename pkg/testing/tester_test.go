package testing

import (
	"testing"

	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/platform"
	"github.com/go-drift/dwidget/pkg/widgets"
)

func sizedBox(w, h float32, c graphics.Color) *widgets.Box {
	b := widgets.NewBox().SetBackgroundColor(c)
	b.SetSize(graphics.Size{Width: w, Height: h})
	return b
}

func TestNewWidgetTester_Defaults(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	size := tester.Window().PointSize()
	if size.Width != DefaultTestWidth || size.Height != DefaultTestHeight {
		t.Errorf("expected default size %dx%d, got %vx%v", DefaultTestWidth, DefaultTestHeight, size.Width, size.Height)
	}
	if tester.Window().Scale() != DefaultScale {
		t.Errorf("expected default scale %v, got %v", DefaultScale, tester.Window().Scale())
	}
	if tester.Target() != nil {
		t.Error("expected no target before the first frame")
	}
}

func TestPumpWidget_MountsTree(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	box := sizedBox(100, 50, graphics.ColorRed)
	if err := tester.PumpWidget(box); err != nil {
		t.Fatal(err)
	}
	if tester.Root() != box {
		t.Fatal("expected box to be the root")
	}
	if tester.Target() == nil {
		t.Fatal("expected a recording target after the first frame")
	}
	if tester.Target().Frames != 1 {
		t.Errorf("expected 1 frame, got %d", tester.Target().Frames)
	}
}

func TestPumpWidget_Remount(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	first := widgets.NewText("first")
	tester.PumpWidget(first)
	tester.PumpWidget(widgets.NewText("second"))

	if first.Element.Parent() != nil {
		t.Error("expected the old root to be detached from the window")
	}
	if !tester.Find(ByText("second")).Exists() {
		t.Error("expected the new root to be found")
	}
	if tester.Find(ByText("first")).Exists() {
		t.Error("expected the old root to be gone")
	}
}

func TestSetSize(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.SetSize(375, 667)

	stretch := widgets.NewBox()
	stretch.SetHorizontalAlignment(layout.Stretch)
	stretch.SetVerticalAlignment(layout.Stretch)
	tester.PumpWidget(stretch)

	b := stretch.LayoutBounds()
	if b.Width() != 375 || b.Height() != 667 {
		t.Errorf("expected 375x667, got %vx%v", b.Width(), b.Height())
	}
}

func TestSetScale(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.SetScale(2)

	box := sizedBox(10, 10, graphics.ColorBlue)
	tester.PumpWidget(box)

	size := tester.Window().PointSize()
	if size.Width != DefaultTestWidth/2 || size.Height != DefaultTestHeight/2 {
		t.Errorf("expected %dx%d points, got %vx%v", DefaultTestWidth/2, DefaultTestHeight/2, size.Width, size.Height)
	}
	if tester.Target().Scale() != 2 {
		t.Errorf("expected target scale 2, got %v", tester.Target().Scale())
	}
}

func TestPump_RepaintsAfterChange(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	text := widgets.NewText("a")
	tester.PumpWidget(text)
	if tester.NeedsWork() {
		t.Fatal("expected a clean surface after pumping")
	}

	text.SetText("b")
	if !tester.NeedsWork() {
		t.Fatal("expected a change to invalidate the surface")
	}
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}
	if tester.CountOps("drawText") != 1 {
		t.Fatalf("expected one drawText in the last frame, got %v", tester.FrameOpNames())
	}
	if got := tester.FrameOps()[0].Op; got != "beginDraw" {
		t.Errorf("expected the frame to start with beginDraw, got %s", got)
	}
}

func TestDispatch_RunsOnPump(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.NewText("x"))

	ran := false
	platform.Dispatch(func() { ran = true })
	if ran {
		t.Fatal("expected dispatch to wait for the next frame")
	}
	if !tester.NeedsWork() {
		t.Error("expected pending work after dispatch")
	}
	tester.Pump()
	if !ran {
		t.Error("expected the callback to run during Pump")
	}
}

func TestPumpAndSettle(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	text := widgets.NewText("0")
	tester.PumpWidget(text)

	steps := 0
	var step func()
	step = func() {
		steps++
		text.SetText(string(rune('0' + steps)))
		if steps < 3 {
			tester.Dispatch(step)
		}
	}
	tester.Dispatch(step)

	if err := tester.PumpAndSettle(10); err != nil {
		t.Fatal(err)
	}
	if steps != 3 {
		t.Errorf("expected 3 steps, got %d", steps)
	}
	if !tester.Find(ByText("3")).Exists() {
		t.Error("expected the last step to be painted")
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.NewText("x"))

	var forever func()
	forever = func() { tester.Dispatch(forever) }
	tester.Dispatch(forever)

	if err := tester.PumpAndSettle(5); err != ErrSettleTimeout {
		t.Errorf("expected ErrSettleTimeout, got %v", err)
	}
}

func TestCleanup_UnregistersDispatch(t *testing.T) {
	tester := NewWidgetTester()
	tester.PumpWidget(widgets.NewText("x"))
	tester.Cleanup()

	ran := false
	platform.Dispatch(func() { ran = true })
	if ran {
		t.Error("expected dispatch to be dropped after cleanup")
	}
	if !tester.Window().Closed() {
		t.Error("expected the window to be closed")
	}
}
