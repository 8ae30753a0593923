package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/rendering"
)

// Target draws into an RGBA image. Coordinates are points; the image is
// sized in pixels.
type Target struct {
	factory *Factory
	img     *image.RGBA
	scale   float32
	clips   []image.Rectangle
	drawing bool
	lost    bool
}

// NewTarget returns a transparent target of the given pixel size.
func NewTarget(pixels graphics.Size, factory *Factory) *Target {
	if factory == nil {
		factory = NewFactory()
	}
	return &Target{factory: factory, img: newImage(pixels), scale: 1}
}

func newImage(pixels graphics.Size) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, int(math32.Ceil(pixels.Width)), int(math32.Ceil(pixels.Height))))
}

// Image returns the backing image. It is replaced by Resize.
func (t *Target) Image() *image.RGBA {
	return t.img
}

// EncodePNG writes the current image as PNG.
func (t *Target) EncodePNG(w io.Writer) error {
	return png.Encode(w, t.img)
}

// Lose makes the next EndDraw report a lost device.
func (t *Target) Lose() {
	t.lost = true
}

func (t *Target) Factory() rendering.Factory {
	return t.factory
}

func (t *Target) CreateSolidBrush(c graphics.Color) (rendering.Brush, error) {
	return rendering.SolidBrush{Fill: c}, nil
}

func (t *Target) BeginDraw() {
	t.drawing = true
	t.clips = t.clips[:0]
}

func (t *Target) EndDraw() error {
	t.drawing = false
	if len(t.clips) != 0 {
		errors.Logger().Warn("raster: unbalanced clips at end of frame", "depth", len(t.clips))
		t.clips = t.clips[:0]
	}
	if t.lost {
		t.lost = false
		return errors.ErrDeviceLost
	}
	return nil
}

func (t *Target) Flush() error {
	if t.lost {
		return errors.ErrDeviceLost
	}
	return nil
}

func (t *Target) Resize(pixels graphics.Size) error {
	if pixels.Width < 0 || pixels.Height < 0 {
		return fmt.Errorf("raster: invalid size %v", pixels)
	}
	next := newImage(pixels)
	draw.Draw(next, next.Bounds(), t.img, image.Point{}, draw.Src)
	t.img = next
	return nil
}

func (t *Target) SetScale(scale float32) {
	if scale <= 0 {
		scale = 1
	}
	t.scale = scale
}

// Scale returns the pixels per point.
func (t *Target) Scale() float32 {
	return t.scale
}

func (t *Target) Size() graphics.Size {
	b := t.img.Bounds()
	return graphics.Size{Width: float32(b.Dx()) / t.scale, Height: float32(b.Dy()) / t.scale}
}

func (t *Target) PushClip(b graphics.Bounds) {
	t.clips = append(t.clips, t.clip().Intersect(t.pixelRect(b)))
}

func (t *Target) PopClip() {
	if len(t.clips) > 0 {
		t.clips = t.clips[:len(t.clips)-1]
	}
}

func (t *Target) Clear(c graphics.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

func (t *Target) FillRect(b graphics.Bounds, brush rendering.Brush) {
	t.fill(t.pixelRect(b), brush.Color())
}

// DrawRect strokes the inside of b.
func (t *Target) DrawRect(b graphics.Bounds, brush rendering.Brush, strokeWidth float32) {
	if strokeWidth <= 0 {
		return
	}
	r := t.pixelRect(b)
	w := max(1, int(math32.Round(strokeWidth*t.scale)))
	c := brush.Color()
	t.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, min(r.Min.Y+w, r.Max.Y)), c)
	t.fill(image.Rect(r.Min.X, max(r.Max.Y-w, r.Min.Y), r.Max.X, r.Max.Y), c)
	t.fill(image.Rect(r.Min.X, r.Min.Y, min(r.Min.X+w, r.Max.X), r.Max.Y), c)
	t.fill(image.Rect(max(r.Max.X-w, r.Min.X), r.Min.Y, r.Max.X, r.Max.Y), c)
}

func (t *Target) DrawTextLayout(origin graphics.Point, layout rendering.TextLayout, brush rendering.Brush) {
	l, ok := layout.(*TextLayout)
	if !ok {
		errors.ReportErr("raster.DrawTextLayout", errors.KindRender, fmt.Errorf("foreign text layout %T", layout))
		return
	}
	face, err := t.factory.face(l.format.font, l.format.spec.Size, 72*float64(t.scale))
	if err != nil {
		errors.ReportErr("raster.DrawTextLayout", errors.KindRender, err)
		return
	}
	clip := t.clip()
	if clip.Empty() {
		return
	}
	d := &font.Drawer{
		Dst:  t.img.SubImage(clip).(*image.RGBA),
		Src:  image.NewUniform(brush.Color().NRGBA()),
		Face: face,
	}
	ascent := face.Metrics().Ascent
	for i, line := range l.lines {
		p := l.lineOrigin(i)
		d.Dot = fixed.Point26_6{
			X: toFixed((origin.X + p.X) * t.scale),
			Y: toFixed((origin.Y+p.Y)*t.scale) + ascent,
		}
		d.DrawString(line)
	}
}

func (t *Target) fill(r image.Rectangle, c graphics.Color) {
	r = r.Intersect(t.clip())
	if r.Empty() {
		return
	}
	op := draw.Over
	if c.Alpha() == 1 {
		op = draw.Src
	}
	draw.Draw(t.img, r, image.NewUniform(c.NRGBA()), image.Point{}, op)
}

func (t *Target) clip() image.Rectangle {
	if len(t.clips) == 0 {
		return t.img.Bounds()
	}
	return t.clips[len(t.clips)-1]
}

// pixelRect converts b to pixels, rounding outward.
func (t *Target) pixelRect(b graphics.Bounds) image.Rectangle {
	s := t.scale
	return image.Rect(
		int(math32.Floor(b.Left*s)),
		int(math32.Floor(b.Top*s)),
		int(math32.Ceil(b.Right*s)),
		int(math32.Ceil(b.Bottom*s)),
	)
}

// Device creates raster targets sharing one factory.
type Device struct {
	factory *Factory
}

// NewDevice returns a device drawing with factory, or a fresh factory when
// nil.
func NewDevice(factory *Factory) *Device {
	if factory == nil {
		factory = NewFactory()
	}
	return &Device{factory: factory}
}

func (d *Device) Factory() rendering.Factory {
	return d.factory
}

func (d *Device) CreateTarget(pixels graphics.Size) (rendering.Target, error) {
	return NewTarget(pixels, d.factory), nil
}
