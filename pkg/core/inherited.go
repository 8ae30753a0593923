package core

// ancestry stores, per owner, the nearest ancestor that owns an inherited
// dependency's source. It is shared by the two inherited kinds.
type ancestry struct {
	slots slotTable[inheritSlot]
	owns  func(Owner) bool
}

type inheritSlot struct {
	owner    Owner
	ancestor Owner
}

func (a *ancestry) register(o Owner) {
	a.slots.insert(handleOf(o), inheritSlot{owner: o})
}

func (a *ancestry) remove(o Owner) {
	a.slots.remove(handleOf(o))
}

func (a *ancestry) registered(o Owner) bool {
	_, ok := a.slots.lookup(handleOf(o))
	return ok
}

// ancestor returns the resolved ancestor of o while it is still alive.
func (a *ancestry) ancestor(o Owner) (Owner, bool) {
	s, ok := a.slots.lookup(handleOf(o))
	if !ok || s.ancestor == nil || !handleOf(s.ancestor).Alive() {
		return nil, false
	}
	return s.ancestor, true
}

// resolve points o at parent when parent owns the source, otherwise at
// parent's resolved ancestor, or at parent itself when it has none. It
// reports whether the ancestor changed.
func (a *ancestry) resolve(o, parent Owner) bool {
	var next Owner
	if handleOf(parent).IsValid() {
		next = parent
		if !a.owns(parent) {
			if anc, ok := a.ancestor(parent); ok {
				next = anc
			}
		}
	}
	s, ok := a.slots.lookup(handleOf(o))
	if !ok {
		return false
	}
	changed := handleOf(s.ancestor) != handleOf(next)
	s.ancestor = next
	return changed
}

// resolvedTo returns every owner whose ancestor is h.
func (a *ancestry) resolvedTo(h Handle) []Owner {
	var out []Owner
	a.slots.each(func(_ Handle, s *inheritSlot) {
		if s.ancestor != nil && handleOf(s.ancestor) == h {
			out = append(out, s.owner)
		}
	})
	return out
}

// InheritedProperty reads a [Property] through the owner's nearest ancestor.
// Owners without an ancestor read the property's default.
type InheritedProperty[T any] struct {
	Notifier
	ancestry
	source *Property[T]
}

// NewInheritedProperty declares an inherited view of source. Changes to
// source for an ancestor are re-notified for every owner resolved to it.
func NewInheritedProperty[T any](name string, source *Property[T]) *InheritedProperty[T] {
	p := &InheritedProperty[T]{Notifier: Notifier{name: name}, source: source}
	p.owns = source.Registered
	source.AddListener(NewListener(p.forward))
	return p
}

func (p *InheritedProperty[T]) Kind() Kind { return KindInheritedProperty }

func (p *InheritedProperty[T]) RegisterOwner(o Owner) { p.register(o) }

func (p *InheritedProperty[T]) RemoveOwner(o Owner) { p.remove(o) }

// Source returns the wrapped property.
func (p *InheritedProperty[T]) Source() *Property[T] {
	return p.source
}

// Value returns the source value of the owner's ancestor.
func (p *InheritedProperty[T]) Value(o Owner) T {
	if !p.registered(o) {
		checkOwner(p, "Value", o)
	}
	if anc, ok := p.ancestor(o); ok {
		if v, ok := p.source.Lookup(anc); ok {
			return v
		}
	}
	return p.source.Default()
}

// Ancestor returns the owner's resolved ancestor.
func (p *InheritedProperty[T]) Ancestor(o Owner) (Owner, bool) {
	return p.ancestor(o)
}

// RegisterParent resolves o's ancestor through parent and notifies Updated
// if it changed.
func (p *InheritedProperty[T]) RegisterParent(o, parent Owner) {
	if !p.registered(o) {
		checkOwner(p, "RegisterParent", o)
		return
	}
	if p.resolve(o, parent) {
		p.Notify(Notification{Type: Updated, Owner: o, Source: p})
	}
}

// RemoveParent clears o's ancestor and notifies Updated if it had one.
func (p *InheritedProperty[T]) RemoveParent(o Owner) {
	if p.resolve(o, nil) {
		p.Notify(Notification{Type: Updated, Owner: o, Source: p})
	}
}

func (p *InheritedProperty[T]) forward(n Notification) {
	for _, o := range p.resolvedTo(handleOf(n.Owner)) {
		fw := n
		fw.Owner = o
		fw.Source = p
		p.Notify(fw)
	}
}

// InheritedResource reads a [Resource] through the owner's nearest ancestor.
// Owners without an ancestor read the fallback value.
type InheritedResource[T any] struct {
	Notifier
	ancestry
	source   *Resource[T]
	fallback T
}

// NewInheritedResource declares an inherited view of source.
func NewInheritedResource[T any](name string, source *Resource[T], fallback T) *InheritedResource[T] {
	r := &InheritedResource[T]{Notifier: Notifier{name: name}, source: source, fallback: fallback}
	r.owns = source.Registered
	source.AddListener(NewListener(r.forward))
	return r
}

func (r *InheritedResource[T]) Kind() Kind { return KindInheritedResource }

func (r *InheritedResource[T]) RegisterOwner(o Owner) { r.register(o) }

func (r *InheritedResource[T]) RemoveOwner(o Owner) { r.remove(o) }

// Source returns the wrapped resource.
func (r *InheritedResource[T]) Source() *Resource[T] {
	return r.source
}

// Get returns the ancestor's value, computing it if needed.
func (r *InheritedResource[T]) Get(o Owner) (T, error) {
	if !r.registered(o) {
		checkOwner(r, "Get", o)
	}
	anc, ok := r.ancestor(o)
	if !ok || !r.source.Registered(anc) {
		return r.fallback, nil
	}
	return r.source.Get(anc)
}

// Value is Get returning the fallback on failure.
func (r *InheritedResource[T]) Value(o Owner) T {
	v, err := r.Get(o)
	if err != nil {
		return r.fallback
	}
	return v
}

// Ancestor returns the owner's resolved ancestor.
func (r *InheritedResource[T]) Ancestor(o Owner) (Owner, bool) {
	return r.ancestor(o)
}

// RegisterParent resolves o's ancestor through parent and notifies Updated
// if it changed.
func (r *InheritedResource[T]) RegisterParent(o, parent Owner) {
	if !r.registered(o) {
		checkOwner(r, "RegisterParent", o)
		return
	}
	if r.resolve(o, parent) {
		r.Notify(Notification{Type: Updated, Owner: o, Source: r})
	}
}

// RemoveParent clears o's ancestor and notifies Updated if it had one.
func (r *InheritedResource[T]) RemoveParent(o Owner) {
	if r.resolve(o, nil) {
		r.Notify(Notification{Type: Updated, Owner: o, Source: r})
	}
}

func (r *InheritedResource[T]) forward(n Notification) {
	for _, o := range r.resolvedTo(handleOf(n.Owner)) {
		fw := n
		fw.Owner = o
		fw.Source = r
		r.Notify(fw)
	}
}
