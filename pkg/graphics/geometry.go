package graphics

import (
	"fmt"

	"github.com/chewxy/math32"
)

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Point represents a position in device independent coordinates.
type Point struct {
	X float32
	Y float32
}

// Size represents width and height dimensions.
type Size struct {
	Width  float32
	Height float32
}

// Bounds represents a rectangle using left, top, right, bottom coordinates.
// Bounds is also used for margins and padding, where each field is the
// thickness on that side.
type Bounds struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// BoundsFromLTWH constructs Bounds from left, top, width, height values.
func BoundsFromLTWH(left, top, width, height float32) Bounds {
	return Bounds{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Uniform returns Bounds with the same thickness on every side.
func Uniform(v float32) Bounds {
	return Bounds{Left: v, Top: v, Right: v, Bottom: v}
}

// Width returns the width of the rectangle.
func (b Bounds) Width() float32 {
	return b.Right - b.Left
}

// Height returns the height of the rectangle.
func (b Bounds) Height() float32 {
	return b.Bottom - b.Top
}

// Size returns the size of the rectangle.
func (b Bounds) Size() Size {
	return Size{Width: b.Width(), Height: b.Height()}
}

// Center returns the center point of the rectangle.
func (b Bounds) Center() Point {
	return Point{
		X: (b.Left + b.Right) * 0.5,
		Y: (b.Top + b.Bottom) * 0.5,
	}
}

// Horizontal returns the total horizontal thickness of a margin.
func (b Bounds) Horizontal() float32 {
	return b.Left + b.Right
}

// Vertical returns the total vertical thickness of a margin.
func (b Bounds) Vertical() float32 {
	return b.Top + b.Bottom
}

// Deflate shrinks the rectangle by the given margin.
func (b Bounds) Deflate(margin Bounds) Bounds {
	return Bounds{
		Left:   b.Left + margin.Left,
		Top:    b.Top + margin.Top,
		Right:  b.Right - margin.Right,
		Bottom: b.Bottom - margin.Bottom,
	}
}

// Inflate grows the rectangle by the given margin.
func (b Bounds) Inflate(margin Bounds) Bounds {
	return Bounds{
		Left:   b.Left - margin.Left,
		Top:    b.Top - margin.Top,
		Right:  b.Right + margin.Right,
		Bottom: b.Bottom + margin.Bottom,
	}
}

// Contains reports whether p lies inside the rectangle. The left and top
// edges are inclusive, the right and bottom edges exclusive.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Left && p.X < b.Right && p.Y >= b.Top && p.Y < b.Bottom
}

// Intersect returns the intersection of two rectangles.
// Returns empty bounds if they don't overlap.
func (b Bounds) Intersect(other Bounds) Bounds {
	left := math32.Max(b.Left, other.Left)
	top := math32.Max(b.Top, other.Top)
	right := math32.Min(b.Right, other.Right)
	bottom := math32.Min(b.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Bounds{}
	}
	return Bounds{Left: left, Top: top, Right: right, Bottom: bottom}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (b Bounds) IsEmpty() bool {
	return b.Right <= b.Left || b.Bottom <= b.Top
}

// Translate returns new bounds offset by (dx, dy).
func (b Bounds) Translate(dx, dy float32) Bounds {
	return Bounds{
		Left:   b.Left + dx,
		Top:    b.Top + dy,
		Right:  b.Right + dx,
		Bottom: b.Bottom + dy,
	}
}

// Union returns the smallest bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		Left:   math32.Min(b.Left, other.Left),
		Top:    math32.Min(b.Top, other.Top),
		Right:  math32.Max(b.Right, other.Right),
		Bottom: math32.Max(b.Bottom, other.Bottom),
	}
}

// ApproxEqual reports whether two bounds match within floating-point tolerance.
func (b Bounds) ApproxEqual(other Bounds) bool {
	return floatEqual(b.Left, other.Left) &&
		floatEqual(b.Top, other.Top) &&
		floatEqual(b.Right, other.Right) &&
		floatEqual(b.Bottom, other.Bottom)
}

func (b Bounds) String() string {
	return fmt.Sprintf("{%g,%g,%g,%g}", b.Left, b.Top, b.Right, b.Bottom)
}

// Add grows the size by a margin.
func (s Size) Add(margin Bounds) Size {
	return Size{Width: s.Width + margin.Horizontal(), Height: s.Height + margin.Vertical()}
}

// Sub shrinks the size by a margin. The result is never negative.
func (s Size) Sub(margin Bounds) Size {
	return Size{
		Width:  math32.Max(0, s.Width-margin.Horizontal()),
		Height: math32.Max(0, s.Height-margin.Vertical()),
	}
}

// Min returns the component-wise minimum of two sizes.
func (s Size) Min(other Size) Size {
	return Size{Width: math32.Min(s.Width, other.Width), Height: math32.Min(s.Height, other.Height)}
}

// Max returns the component-wise maximum of two sizes.
func (s Size) Max(other Size) Size {
	return Size{Width: math32.Max(s.Width, other.Width), Height: math32.Max(s.Height, other.Height)}
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

func (s Size) String() string {
	return fmt.Sprintf("{%g,%g}", s.Width, s.Height)
}

// Scale multiplies the point by a factor.
func (p Point) Scale(f float32) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

func floatEqual(a, b float32) bool {
	return math32.Abs(a-b) <= epsilon
}
