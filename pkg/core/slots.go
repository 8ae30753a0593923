package core

type slot[T any] struct {
	gen   uint32
	value T
}

// slotTable is dense per-owner storage indexed by handle. A slot only
// matches the handle generation it was written with.
//
// Pointers returned by lookup are invalidated by insert, so they must not be
// held across calls that can register owners (for example listener callbacks).
type slotTable[T any] struct {
	slots []slot[T]
	count int
}

func (t *slotTable[T]) lookup(h Handle) (*T, bool) {
	if h.gen == 0 || int(h.index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[h.index]
	if s.gen != h.gen {
		return nil, false
	}
	return &s.value, true
}

func (t *slotTable[T]) insert(h Handle, v T) {
	if h.gen == 0 {
		return
	}
	if n := int(h.index) + 1; n > len(t.slots) {
		if n <= cap(t.slots) {
			t.slots = t.slots[:n]
		} else {
			grown := make([]slot[T], n, max(n, 2*cap(t.slots)))
			copy(grown, t.slots)
			t.slots = grown
		}
	}
	if t.slots[h.index].gen == 0 {
		t.count++
	}
	t.slots[h.index] = slot[T]{gen: h.gen, value: v}
}

func (t *slotTable[T]) remove(h Handle) (T, bool) {
	var zero T
	if _, ok := t.lookup(h); !ok {
		return zero, false
	}
	v := t.slots[h.index].value
	t.slots[h.index] = slot[T]{}
	t.count--
	return v, true
}

func (t *slotTable[T]) len() int {
	return t.count
}

// each visits slots of live handles in index order.
func (t *slotTable[T]) each(fn func(h Handle, v *T)) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.gen == 0 {
			continue
		}
		h := Handle{index: uint32(i), gen: s.gen}
		if !handles.live(h) {
			continue
		}
		fn(h, &s.value)
	}
}
