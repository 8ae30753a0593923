package rendering

import "github.com/go-drift/dwidget/pkg/graphics"

// RectGeometry is an axis aligned rectangle usable as a [Geometry] by any
// backend.
type RectGeometry struct {
	Rect graphics.Bounds
}

func (g RectGeometry) Bounds() graphics.Bounds {
	return g.Rect
}

func (g RectGeometry) FillContainsPoint(p graphics.Point) bool {
	return g.Rect.Contains(p)
}

// SolidBrush is a single color [Brush] usable by any backend.
type SolidBrush struct {
	Fill graphics.Color
}

func (b SolidBrush) Color() graphics.Color {
	return b.Fill
}
