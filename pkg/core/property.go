package core

// Property is a typed value stored per owner.
//
// SetValue overwrites unconditionally unless the property was created with
// [SkipUnchanged] or [WithEqual].
type Property[T any] struct {
	Notifier
	def   T
	equal func(a, b T) bool
	slots slotTable[T]
}

// PropertyOption configures a [Property].
type PropertyOption[T any] func(*Property[T])

// SkipUnchanged makes SetValue a no-op when the new value equals the old one.
func SkipUnchanged[T comparable]() PropertyOption[T] {
	return func(p *Property[T]) {
		p.equal = func(a, b T) bool { return a == b }
	}
}

// WithEqual makes SetValue a no-op when eq reports the values equal.
func WithEqual[T any](eq func(a, b T) bool) PropertyOption[T] {
	return func(p *Property[T]) {
		p.equal = eq
	}
}

// NewProperty declares a property with a default value.
func NewProperty[T any](name string, def T, opts ...PropertyOption[T]) *Property[T] {
	p := &Property[T]{Notifier: Notifier{name: name}, def: def}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Property[T]) Kind() Kind { return KindProperty }

// Default returns the value unregistered owners read.
func (p *Property[T]) Default() T {
	return p.def
}

func (p *Property[T]) RegisterOwner(o Owner) {
	p.slots.insert(handleOf(o), p.def)
}

func (p *Property[T]) RemoveOwner(o Owner) {
	p.slots.remove(handleOf(o))
}

// Registered reports whether o has a slot.
func (p *Property[T]) Registered(o Owner) bool {
	_, ok := p.slots.lookup(handleOf(o))
	return ok
}

// Value returns the owner's value, or the default if o is not registered.
func (p *Property[T]) Value(o Owner) T {
	v, ok := p.Lookup(o)
	if !ok {
		checkOwner(p, "Value", o)
	}
	return v
}

// Lookup returns the owner's value and whether o is registered.
func (p *Property[T]) Lookup(o Owner) (T, bool) {
	v, ok := p.slots.lookup(handleOf(o))
	if !ok {
		return p.def, false
	}
	return *v, true
}

// SetValue stores v for o and notifies ValueChanged followed by Updated.
// Writes for unregistered owners are dropped.
func (p *Property[T]) SetValue(o Owner, v T) {
	slot, ok := p.slots.lookup(handleOf(o))
	if !ok {
		checkOwner(p, "SetValue", o)
		return
	}
	old := *slot
	if p.equal != nil && p.equal(old, v) {
		return
	}
	*slot = v
	p.Notify(Notification{Type: ValueChanged, Owner: o, Source: p, Old: old, New: v})
	p.Notify(Notification{Type: Updated, Owner: o, Source: p})
}
