// Package testing hosts widget trees for tests.
//
// A [WidgetTester] runs a window on a headless surface with the recording
// backend, so tests drive the same pipeline a native host does and can
// assert on the drawing calls of each frame.
//
//	func TestCounter(t *testing.T) {
//	    tester := dwtest.NewWidgetTesterWithT(t)
//	    count := widgets.NewText("0")
//	    button := widgets.NewButton("Add").OnClick(func() { count.SetText("1") })
//	    tester.PumpWidget(widgets.NewStack(layout.Vertical, count, button))
//
//	    tester.Tap(dwtest.ByText("Add"))
//	    tester.Pump()
//
//	    if !tester.Find(dwtest.ByText("1")).Exists() {
//	        t.Error("expected count to be 1")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the widget tree and the last frame's drawing calls:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	DWIDGET_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import dwtest "github.com/go-drift/dwidget/pkg/testing"
package testing
