package core

import (
	"github.com/go-drift/dwidget/pkg/errors"
)

type resourceSlot[T any] struct {
	valid bool
	value T
}

// Resource is a lazily computed value cached per owner.
//
// A resource is invalid until [Resource.Get] or [Resource.Initialize] runs its
// initializer. Any bound source notifying a change for an owner invalidates
// the resource for that owner, which in turn notifies Invalidated to its own
// dependents. The initializer runs at most once per invalidation.
type Resource[T any] struct {
	Notifier
	init     func(Owner) (T, error)
	discard  func(Owner, T)
	slots    slotTable[resourceSlot[T]]
	bindings []*binding
}

// ResourceOption configures a [Resource].
type ResourceOption[T any] func(*Resource[T])

// WithDiscard sets a function releasing a cached value when it is invalidated
// or its owner is removed.
func WithDiscard[T any](fn func(Owner, T)) ResourceOption[T] {
	return func(r *Resource[T]) {
		r.discard = fn
	}
}

// NewResource declares a resource computed by init.
func NewResource[T any](name string, init func(Owner) (T, error), opts ...ResourceOption[T]) *Resource[T] {
	r := &Resource[T]{Notifier: Notifier{name: name}, init: init}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resource[T]) Kind() Kind { return KindResource }

// RegisterOwner creates an invalid slot for o, discarding any cached value.
func (r *Resource[T]) RegisterOwner(o Owner) {
	h := handleOf(o)
	if s, ok := r.slots.lookup(h); ok && s.valid {
		r.release(o, s.value)
	}
	r.slots.insert(h, resourceSlot[T]{})
}

// RemoveOwner discards the cached value and erases the slot without notifying.
func (r *Resource[T]) RemoveOwner(o Owner) {
	if s, ok := r.slots.remove(handleOf(o)); ok && s.valid {
		r.release(o, s.value)
	}
}

// Registered reports whether o has a slot.
func (r *Resource[T]) Registered(o Owner) bool {
	_, ok := r.slots.lookup(handleOf(o))
	return ok
}

// IsValid reports whether o has a cached value.
func (r *Resource[T]) IsValid(o Owner) bool {
	s, ok := r.slots.lookup(handleOf(o))
	return ok && s.valid
}

// Peek returns the cached value without computing it.
func (r *Resource[T]) Peek(o Owner) (T, bool) {
	s, ok := r.slots.lookup(handleOf(o))
	if !ok || !s.valid {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Get returns the cached value for o, computing it first if it is invalid.
// On initializer failure the resource stays invalid and the error is a
// *errors.ResourceInitError.
func (r *Resource[T]) Get(o Owner) (T, error) {
	if err := r.Initialize(o); err != nil {
		var zero T
		return zero, err
	}
	v, _ := r.Peek(o)
	return v, nil
}

// Value is Get for callers that render defaults on failure. Errors are
// reported to the error handler.
func (r *Resource[T]) Value(o Owner) T {
	v, err := r.Get(o)
	if err != nil {
		errors.ReportErr(r.name, errors.KindInit, err)
	}
	return v
}

// Initialize computes the value for o if it is invalid and notifies
// Initialized. It is a no-op for valid owners and unregistered owners.
func (r *Resource[T]) Initialize(o Owner) error {
	h := handleOf(o)
	s, ok := r.slots.lookup(h)
	if !ok {
		checkOwner(r, "Initialize", o)
		return nil
	}
	if s.valid {
		return nil
	}
	v, err := r.init(o)
	if err != nil {
		return &errors.ResourceInitError{Resource: r.name, Owner: describe(o), Err: err}
	}
	// The initializer may have registered owners and moved the slot.
	s, ok = r.slots.lookup(h)
	if !ok {
		r.release(o, v)
		return nil
	}
	if s.valid {
		// A nested read already produced a value; keep the first.
		r.release(o, v)
		return nil
	}
	s.valid = true
	s.value = v
	r.Notify(Notification{Type: Initialized, Owner: o, Source: r})
	return nil
}

// Invalidate discards the value for o and notifies Invalidated. It is a no-op
// if the value is already invalid.
func (r *Resource[T]) Invalidate(o Owner) {
	s, ok := r.slots.lookup(handleOf(o))
	if !ok || !s.valid {
		return
	}
	v := s.value
	*s = resourceSlot[T]{}
	r.release(o, v)
	r.Notify(Notification{Type: Invalidated, Owner: o, Source: r})
}

// Recreate replaces the value for o in place and notifies Recreated. If the
// initializer fails the resource is left invalid and Invalidated is notified
// when a value was discarded.
func (r *Resource[T]) Recreate(o Owner) error {
	h := handleOf(o)
	s, ok := r.slots.lookup(h)
	if !ok {
		checkOwner(r, "Recreate", o)
		return nil
	}
	wasValid := s.valid
	if wasValid {
		v := s.value
		*s = resourceSlot[T]{}
		r.release(o, v)
	}
	v, err := r.init(o)
	if err != nil {
		if wasValid {
			r.Notify(Notification{Type: Invalidated, Owner: o, Source: r})
		}
		return &errors.ResourceInitError{Resource: r.name, Owner: describe(o), Err: err}
	}
	s, ok = r.slots.lookup(h)
	if !ok {
		r.release(o, v)
		return nil
	}
	*s = resourceSlot[T]{valid: true, value: v}
	r.Notify(Notification{Type: Recreated, Owner: o, Source: r})
	return nil
}

// Update stores a value produced outside the initializer, marks it valid and
// notifies Updated.
func (r *Resource[T]) Update(o Owner, v T) {
	s, ok := r.slots.lookup(handleOf(o))
	if !ok {
		checkOwner(r, "Update", o)
		return
	}
	old, hadOld := s.value, s.valid
	*s = resourceSlot[T]{valid: true, value: v}
	if hadOld {
		r.release(o, old)
	}
	r.Notify(Notification{Type: Updated, Owner: o, Source: r})
}

// Bind makes r invalidate for an owner whenever one of deps notifies a change
// for that owner. Binding a resource to itself is reported and ignored.
func (r *Resource[T]) Bind(deps ...Dependency) *Resource[T] {
	for _, d := range deps {
		if d == nil {
			continue
		}
		if d == Dependency(r) {
			errors.ReportErr(r.name+".Bind", errors.KindBinding, errors.New("resource bound to itself"))
			continue
		}
		if r.boundTo(d) {
			continue
		}
		b := &binding{source: d, invalidate: r.Invalidate}
		r.bindings = append(r.bindings, b)
		d.AddListener(b)
	}
	return r
}

// Unbind removes the binding to d.
func (r *Resource[T]) Unbind(d Dependency) {
	for i, b := range r.bindings {
		if b.source == d {
			d.RemoveListener(b)
			r.bindings = append(r.bindings[:i], r.bindings[i+1:]...)
			return
		}
	}
}

// Sources returns the dependencies r is bound to.
func (r *Resource[T]) Sources() []Dependency {
	out := make([]Dependency, len(r.bindings))
	for i, b := range r.bindings {
		out[i] = b.source
	}
	return out
}

func (r *Resource[T]) boundTo(d Dependency) bool {
	for _, b := range r.bindings {
		if b.source == d {
			return true
		}
	}
	return false
}

func (r *Resource[T]) release(o Owner, v T) {
	if r.discard != nil {
		r.discard(o, v)
	}
}

// binding is one listener per (resource, source) pair, shared by all owners.
type binding struct {
	source     Dependency
	invalidate func(Owner)
}

func (b *binding) OnDependencyUpdated(n Notification) {
	if n.Type.invalidates() && n.Owner != nil {
		b.invalidate(n.Owner)
	}
}
