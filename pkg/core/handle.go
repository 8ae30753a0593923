package core

import (
	"fmt"
	"reflect"
)

// Handle identifies an owner. The zero Handle is invalid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsValid reports whether the handle was ever allocated.
func (h Handle) IsValid() bool {
	return h.gen != 0
}

// Alive reports whether the handle has been allocated and not yet released.
func (h Handle) Alive() bool {
	return handles.live(h)
}

// Index returns the arena slot of the handle.
func (h Handle) Index() int {
	return int(h.index)
}

func (h Handle) String() string {
	if h.gen == 0 {
		return "#invalid"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

// Owner is anything that per-owner storage can be keyed by.
type Owner interface {
	Handle() Handle
}

// NewHandle allocates a handle for an owner that is not an [Element].
func NewHandle() Handle {
	return handles.alloc()
}

// ReleaseHandle returns a handle to the arena. Slots keyed by it become
// unreachable. Releasing a dead handle is a no-op.
func ReleaseHandle(h Handle) {
	handles.release(h)
}

// arena hands out generation-checked indices. A slot's generation is bumped
// on release so stale handles stop matching.
type arena struct {
	gens []uint32
	free []uint32
}

var handles arena

func (a *arena) alloc() Handle {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		return Handle{index: idx, gen: a.gens[idx]}
	}
	a.gens = append(a.gens, 1)
	return Handle{index: uint32(len(a.gens) - 1), gen: 1}
}

func (a *arena) release(h Handle) {
	if !a.live(h) {
		return
	}
	g := a.gens[h.index] + 1
	if g == 0 {
		g = 1
	}
	a.gens[h.index] = g
	a.free = append(a.free, h.index)
}

func (a *arena) live(h Handle) bool {
	return h.gen != 0 && int(h.index) < len(a.gens) && a.gens[h.index] == h.gen
}

// handleOf tolerates nil owners, including typed nil pointers.
func handleOf(o Owner) Handle {
	if o == nil {
		return Handle{}
	}
	if v := reflect.ValueOf(o); v.Kind() == reflect.Pointer && v.IsNil() {
		return Handle{}
	}
	return o.Handle()
}

// describe renders an owner for error messages.
func describe(o Owner) string {
	if o == nil {
		return "<nil>"
	}
	if s, ok := o.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T%s", o, handleOf(o))
}
