// Package layout holds the pure geometry used by the widget pipeline:
// per-axis alignment of a measured size inside constraint bounds.
package layout

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/go-drift/dwidget/pkg/graphics"
)

// Alignment positions a measured extent along one axis.
type Alignment int

const (
	// Start aligns to the leading constraint edge.
	Start Alignment = iota
	// Center centers within the constraint span. Overflowing content is
	// clamped to the span.
	Center
	// End aligns to the trailing constraint edge.
	End
	// Stretch fills the constraint span, ignoring the measured extent.
	Stretch
)

func (a Alignment) String() string {
	switch a {
	case Start:
		return "start"
	case Center:
		return "center"
	case End:
		return "end"
	case Stretch:
		return "stretch"
	default:
		return fmt.Sprintf("Alignment(%d)", a)
	}
}

// ParseAlignment parses the String form of an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start", "left", "top":
		return Start, nil
	case "center", "":
		return Center, nil
	case "end", "right", "bottom":
		return End, nil
	case "stretch":
		return Stretch, nil
	default:
		return Center, fmt.Errorf("unknown alignment %q", s)
	}
}

// Orientation is the main axis of a stack.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", o)
	}
}

// ParseOrientation parses the String form of an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("unknown orientation %q", s)
	}
}

// Main returns the extent of s along the orientation's axis.
func (o Orientation) Main(s graphics.Size) float32 {
	if o == Vertical {
		return s.Height
	}
	return s.Width
}

// Cross returns the extent of s across the orientation's axis.
func (o Orientation) Cross(s graphics.Size) float32 {
	if o == Vertical {
		return s.Width
	}
	return s.Height
}

// AlignAxis places an extent of the given size inside [start, end].
func AlignAxis(start, end, size float32, a Alignment) (float32, float32) {
	switch a {
	case Start:
		return start, start + size
	case End:
		return end - size, end
	case Stretch:
		return start, end
	default:
		span := math32.Max(0, end-start)
		size = math32.Min(size, span)
		lo := start + (span-size)/2
		return lo, lo + size
	}
}

// Align places a measured size inside constraints, resolving each axis
// independently.
func Align(constraints graphics.Bounds, measured graphics.Size, h, v Alignment) graphics.Bounds {
	var b graphics.Bounds
	b.Left, b.Right = AlignAxis(constraints.Left, constraints.Right, measured.Width, h)
	b.Top, b.Bottom = AlignAxis(constraints.Top, constraints.Bottom, measured.Height, v)
	return b
}
