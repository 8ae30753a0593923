package testing

import (
	"github.com/go-drift/dwidget/pkg/rendering/recording"
)

// DisplayOp is a recorded drawing operation.
type DisplayOp = recording.DisplayOp

// FrameOps returns the operations of the last painted frame, from its
// beginDraw to its endDraw. It returns nil before the first frame.
func (t *WidgetTester) FrameOps() []DisplayOp {
	rt := t.Target()
	if rt == nil {
		return nil
	}
	return lastFrame(rt.Ops())
}

// FrameOpNames returns the operation names of the last painted frame.
func (t *WidgetTester) FrameOpNames() []string {
	ops := t.FrameOps()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Op
	}
	return names
}

// CountOps returns how many operations named op the last frame recorded.
func (t *WidgetTester) CountOps(op string) int {
	n := 0
	for _, o := range t.FrameOps() {
		if o.Op == op {
			n++
		}
	}
	return n
}

func lastFrame(ops []DisplayOp) []DisplayOp {
	begin := -1
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Op == "beginDraw" {
			begin = i
			break
		}
	}
	if begin < 0 {
		return nil
	}
	for i := begin; i < len(ops); i++ {
		if ops[i].Op == "endDraw" {
			return ops[begin : i+1]
		}
	}
	return ops[begin:]
}
