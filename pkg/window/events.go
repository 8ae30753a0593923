package window

import (
	"github.com/go-drift/dwidget/pkg/errors"
)

// EventType identifies a surface event.
type EventType uint8

const (
	EventResize EventType = iota + 1
	EventDPIChanged
	EventPaint
	EventPointerMove
	EventPointerPress
	EventPointerRelease
	EventPointerLeave
	EventClose
)

func (t EventType) String() string {
	switch t {
	case EventResize:
		return "resize"
	case EventDPIChanged:
		return "dpi-changed"
	case EventPaint:
		return "paint"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerPress:
		return "pointer-press"
	case EventPointerRelease:
		return "pointer-release"
	case EventPointerLeave:
		return "pointer-leave"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Event is a message from the native surface. X and Y are pixel
// coordinates for pointer events.
type Event struct {
	Type EventType
	X, Y int
}

// HandleEvent routes ev to the matching window method and reports whether
// it was handled. Paint failures are reported to the error handler.
func (w *Window) HandleEvent(ev Event) bool {
	switch ev.Type {
	case EventResize:
		w.Resize()
		return true
	case EventDPIChanged:
		w.DPIChanged()
		return true
	case EventPaint:
		if err := w.Paint(); err != nil {
			errors.ReportErr("Window.Paint", paintErrorKind(err), err)
			return false
		}
		return true
	case EventPointerMove:
		return w.PointerMove(ev.X, ev.Y)
	case EventPointerPress:
		return w.PointerPress(ev.X, ev.Y)
	case EventPointerRelease:
		return w.PointerRelease(ev.X, ev.Y)
	case EventPointerLeave:
		w.PointerLeave()
		return true
	case EventClose:
		w.Close()
		return true
	}
	return false
}

func paintErrorKind(err error) errors.ErrorKind {
	if errors.Is(err, errors.ErrDeviceLost) {
		return errors.KindDevice
	}
	var initErr *errors.ResourceInitError
	if errors.As(err, &initErr) && initErr.Resource == RenderTargetResource.Name() {
		return errors.KindDevice
	}
	return errors.KindRender
}
