package widgets

import (
	"github.com/chewxy/math32"

	"github.com/go-drift/dwidget/pkg/core"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
)

// OrientationProperty is the direction a [Stack] places its children in.
var OrientationProperty = core.NewProperty("Orientation", layout.Horizontal)

// Stack places its children one after another along its orientation.
//
// Children stretched along the main axis share the space left over by the
// other children equally. On the cross axis each child is offered the full
// extent and aligns itself within it.
type Stack struct {
	Composite

	// main axis extents from the last measure, in child order
	extents []float32
}

// NewStack creates a stack with the given orientation and children.
func NewStack(o layout.Orientation, children ...Widget) *Stack {
	s := &Stack{}
	s.InitComposite(s)
	s.RegisterDependency(OrientationProperty)
	s.SetOrientation(o)
	s.AddChild(children...)
	return s
}

// Orientation returns the stacking direction.
func (s *Stack) Orientation() layout.Orientation {
	return OrientationProperty.Value(s)
}

// SetOrientation sets the stacking direction.
func (s *Stack) SetOrientation(o layout.Orientation) *Stack {
	OrientationProperty.SetValue(s, o)
	return s
}

func (s *Stack) stretches(w Widget, o layout.Orientation) bool {
	b := w.WidgetBase()
	if o == layout.Horizontal {
		return b.HorizontalAlignment() == layout.Stretch
	}
	return b.VerticalAlignment() == layout.Stretch
}

// offer builds the available size of a child given its main axis extent.
func offer(o layout.Orientation, available graphics.Size, main float32) graphics.Size {
	if o == layout.Horizontal {
		return graphics.Size{Width: main, Height: available.Height}
	}
	return graphics.Size{Width: available.Width, Height: main}
}

// Measure runs two passes. The first measures fixed children against the
// remaining space and counts stretched ones; the second hands each stretched
// child an equal share of what is left.
func (s *Stack) Measure(available graphics.Size) graphics.Size {
	o := s.Orientation()
	children := s.ChildWidgets()
	s.extents = make([]float32, len(children))

	total := o.Main(available)
	bounded := total < math32.MaxFloat32
	flex := total
	flexCount := 0
	for _, c := range children {
		if s.stretches(c, o) {
			flexCount++
			continue
		}
		m := MeasureChild(c, offer(o, available, max(flex, 0)))
		flex -= o.Main(m)
	}
	flex = max(flex, 0)
	fixed := total - flex
	switch {
	case !bounded:
		// Nothing to share; every child keeps its own extent.
		flex, fixed = total, total
	case flexCount > 0:
		flex /= float32(flexCount)
	}

	var sum graphics.Size
	for i, c := range children {
		var m graphics.Size
		if s.stretches(c, o) {
			m = MeasureChild(c, offer(o, available, flex))
			s.extents[i] = o.Main(m)
			if bounded {
				s.extents[i] = flex
			}
		} else {
			m = MeasureChild(c, offer(o, available, fixed))
			s.extents[i] = o.Main(m)
		}
		if o == layout.Horizontal {
			sum.Width += s.extents[i]
			sum.Height = max(sum.Height, m.Height)
		} else {
			sum.Width = max(sum.Width, m.Width)
			sum.Height += s.extents[i]
		}
	}
	return sum
}

// Arrange places children consecutively from the start of the render bounds.
func (s *Stack) Arrange(ctx *LayoutContext) {
	o := s.Orientation()
	avail := ctx.RenderBounds()
	for i, c := range s.ChildWidgets() {
		var extent float32
		if i < len(s.extents) {
			extent = s.extents[i]
		}
		slot := avail
		if o == layout.Horizontal {
			slot.Right = avail.Left + extent
			avail.Left += extent
		} else {
			slot.Bottom = avail.Top + extent
			avail.Top += extent
		}
		ctx.LayoutChild(c, slot)
	}
}

func init() {
	MeasureResource.Bind(OrientationProperty)
}
