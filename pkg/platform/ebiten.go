//go:build !noebiten

package platform

import (
	"context"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/go-drift/dwidget/pkg/errors"
)

// game adapts a Host to ebiten.Game.
type game struct {
	host      *Host
	offscreen *ebiten.Image
}

// Run opens the native window and blocks until it is closed or ctx is
// cancelled. The hosted window's Dispatch is registered for the package
// level [Dispatch] while running.
func (h *Host) Run(ctx context.Context) error {
	h.ctx = ctx
	h.applyTitle = ebiten.SetWindowTitle
	defer func() { h.applyTitle = nil }()

	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetWindowTitle(h.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	RegisterDispatch(h.window.Dispatch)
	defer RegisterDispatch(nil)

	errors.Logger().Info("host starting", "title", h.title, "width", h.width, "height", h.height)
	err := ebiten.RunGame(&game{host: h})
	h.close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *game) Update() error {
	h := g.host
	if ebiten.IsWindowBeingClosed() {
		h.close()
		return ebiten.Termination
	}
	x, y := ebiten.CursorPosition()
	h.input(pointerSample{
		X:        x,
		Y:        y,
		Inside:   x >= 0 && y >= 0 && x < h.width && y < h.height,
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	})
	err := h.tick(ebiten.IsFocused())
	if errors.Is(err, errDone) {
		return ebiten.Termination
	}
	return err
}

func (g *game) Draw(screen *ebiten.Image) {
	img, ok := g.host.frame()
	if !ok {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	if g.offscreen == nil || g.offscreen.Bounds().Size() != b.Size() {
		if g.offscreen != nil {
			g.offscreen.Deallocate()
		}
		g.offscreen = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.offscreen.WritePixels(img.Pix)
	screen.DrawImage(g.offscreen, nil)
}

// Layout makes the screen one pixel per physical pixel so the raster
// target maps onto it directly.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	w := int(math.Ceil(float64(outsideWidth) * scale))
	h := int(math.Ceil(float64(outsideHeight) * scale))
	g.host.resize(w, h, scale)
	return w, h
}
