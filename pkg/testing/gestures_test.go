package testing

import (
	"strings"
	"testing"

	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/widgets"
	"github.com/go-drift/dwidget/pkg/window"
)

func TestTap_ClicksButton(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	root, count, add := counterTree()
	clicks := 0
	add.OnClick(func() {
		clicks++
		count.SetText("Count: 1")
	})
	tester.PumpWidget(root)

	if err := tester.Tap(ByID("add")); err != nil {
		t.Fatal(err)
	}
	if clicks != 1 {
		t.Fatalf("expected 1 click, got %d", clicks)
	}
	tester.Pump()
	if !tester.Find(ByText("Count: 1")).Exists() {
		t.Error("expected the count to be updated")
	}
}

func TestTap_ThroughCaption(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	root, _, add := counterTree()
	clicked := false
	add.OnClick(func() { clicked = true })
	tester.PumpWidget(root)

	if err := tester.Tap(ByText("Add")); err != nil {
		t.Fatal(err)
	}
	if !clicked {
		t.Error("expected tapping the caption to click the button")
	}
}

func TestTap_AtScale(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.SetScale(2)
	root, _, add := counterTree()
	clicked := false
	add.OnClick(func() { clicked = true })
	tester.PumpWidget(root)

	if err := tester.Tap(ByID("add")); err != nil {
		t.Fatal(err)
	}
	if !clicked {
		t.Error("expected the tap to land on the button at scale 2")
	}
}

func TestTapAt_Miss(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	root, _, add := counterTree()
	clicked := false
	add.OnClick(func() { clicked = true })
	tester.PumpWidget(root)

	if err := tester.TapAt(graphics.Point{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if clicked {
		t.Error("expected a tap outside the button to do nothing")
	}
}

func TestHoverPressLeave(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	root, _, add := counterTree()
	tester.PumpWidget(root)

	if err := tester.Hover(ByID("add")); err != nil {
		t.Fatal(err)
	}
	if !add.Hovered() {
		t.Error("expected the button to be hovered")
	}
	if add.Frame().BackgroundColor() != widgets.HoverColorProperty.Value(add) {
		t.Error("expected the hover color on the frame")
	}

	if err := tester.Press(ByID("add")); err != nil {
		t.Fatal(err)
	}
	if !add.Pressed() {
		t.Error("expected the button to be pressed")
	}

	tester.Leave()
	if add.Hovered() || add.Pressed() {
		t.Error("expected leave to reset hover and press")
	}
}

func TestGestures_Errors(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	err := tester.SendPointer(window.EventPointerPress, graphics.Point{})
	if err == nil || !strings.Contains(err.Error(), "no root widget") {
		t.Errorf("expected no root error, got %v", err)
	}

	root, _, _ := counterTree()
	tester.PumpWidget(root)

	err = tester.Tap(ByID("missing"))
	if err == nil || !strings.Contains(err.Error(), "matched no widgets") {
		t.Errorf("expected no match error, got %v", err)
	}

	exit := tester.Find(ByText("Exit")).First()
	exit.WidgetBase().SetVisible(false)
	err = tester.Hover(ByText("Exit"))
	if err == nil || !strings.Contains(err.Error(), "hidden") {
		t.Errorf("expected hidden error, got %v", err)
	}
}
