package platform

import "github.com/go-drift/dwidget/pkg/window"

// pointerSample is the native pointer state read once per tick.
type pointerSample struct {
	X, Y   int
	Inside bool
	// Pressed and Released report left button transitions since the last tick.
	Pressed  bool
	Released bool
}

// pointerTracker turns per-tick pointer samples into window events.
type pointerTracker struct {
	x, y   int
	inside bool
}

func (p *pointerTracker) events(s pointerSample) []window.Event {
	var evs []window.Event
	if s.Inside && (!p.inside || s.X != p.x || s.Y != p.y) {
		evs = append(evs, window.Event{Type: window.EventPointerMove, X: s.X, Y: s.Y})
	}
	if s.Pressed && s.Inside {
		evs = append(evs, window.Event{Type: window.EventPointerPress, X: s.X, Y: s.Y})
	}
	// Releases outside the window still end a press.
	if s.Released {
		evs = append(evs, window.Event{Type: window.EventPointerRelease, X: s.X, Y: s.Y})
	}
	if !s.Inside && p.inside {
		evs = append(evs, window.Event{Type: window.EventPointerLeave})
	}
	p.x, p.y, p.inside = s.X, s.Y, s.Inside
	return evs
}
