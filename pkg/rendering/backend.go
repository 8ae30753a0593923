// Package rendering defines the drawing backend the widget pipeline renders
// through, and the clip-scoped render context handed to widgets.
//
// All coordinates are device independent points. Targets convert to pixels
// using the scale set with [Target.SetScale].
package rendering

import "github.com/go-drift/dwidget/pkg/graphics"

// Brush is an opaque paint handle created by a [Target].
type Brush interface {
	Color() graphics.Color
}

// Geometry is a backend shape used for hit testing.
type Geometry interface {
	Bounds() graphics.Bounds
	// FillContainsPoint reports whether p lies inside the filled shape.
	FillContainsPoint(p graphics.Point) bool
}

// TextFormat is an opaque, immutable font selection created by a [Factory].
type TextFormat interface {
	Spec() TextFormatSpec
}

// TextLayout is shaped text ready to be drawn.
type TextLayout interface {
	Text() string
	// Size is the extent of the laid out text.
	Size() graphics.Size
	// MaxSize is the box the text was laid out in.
	MaxSize() graphics.Size
}

// Factory creates device independent backend objects.
type Factory interface {
	// CreateRectangleGeometry returns a rectangle shape.
	CreateRectangleGeometry(b graphics.Bounds) (Geometry, error)

	// CreateTextFormat resolves a font selection.
	CreateTextFormat(spec TextFormatSpec) (TextFormat, error)

	// CreateTextLayout shapes text inside maxSize.
	CreateTextLayout(text string, format TextFormat, maxSize graphics.Size) (TextLayout, error)

	// MeasureText returns the extent text occupies when laid out inside maxSize.
	MeasureText(text string, format TextFormat, maxSize graphics.Size) (graphics.Size, error)
}

// Target is a drawing surface. Drawing calls outside BeginDraw/EndDraw are
// undefined.
type Target interface {
	// Factory returns the factory compatible with this target.
	Factory() Factory

	// CreateSolidBrush creates a brush painting a single color.
	CreateSolidBrush(c graphics.Color) (Brush, error)

	// BeginDraw starts a frame.
	BeginDraw()

	// EndDraw finishes the frame. It returns errors.ErrDeviceLost when the
	// target must be recreated.
	EndDraw() error

	// Flush submits pending drawing without ending the frame.
	Flush() error

	// Resize changes the pixel size of the target.
	Resize(pixels graphics.Size) error

	// SetScale sets the number of pixels per point.
	SetScale(scale float32)

	// Size returns the target size in points.
	Size() graphics.Size

	// PushClip intersects the clip with b until the matching PopClip.
	PushClip(b graphics.Bounds)

	// PopClip restores the clip saved by the last PushClip.
	PopClip()

	// Clear fills the whole target, ignoring the clip.
	Clear(c graphics.Color)

	// FillRect fills b with brush.
	FillRect(b graphics.Bounds, brush Brush)

	// DrawRect strokes the outline of b.
	DrawRect(b graphics.Bounds, brush Brush, strokeWidth float32)

	// DrawTextLayout draws shaped text with its top-left corner at origin.
	DrawTextLayout(origin graphics.Point, layout TextLayout, brush Brush)
}

// Device creates render targets sharing one factory.
type Device interface {
	Factory() Factory

	// CreateTarget returns a target of the given pixel size.
	CreateTarget(pixels graphics.Size) (Target, error)
}
