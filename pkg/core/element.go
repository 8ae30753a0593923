package core

import "slices"

// Element is an owner that records the dependencies registered against it and
// takes part in a parent/child tree used for inheritance and cleanup.
//
// Element is meant to be embedded. Types embedding it call SetSelf with the
// outer value so dependencies are keyed by, and initializers receive, the
// outer type:
//
//	type Box struct{ core.Element }
//
//	b := &Box{}
//	b.SetSelf(b)
type Element struct {
	handle    Handle
	self      Owner
	parent    *Element
	children  []*Element
	deps      []Dependency
	destroyed bool
}

// SetSelf sets the owner passed to dependencies for this element.
func (e *Element) SetSelf(self Owner) {
	e.self = self
}

// Self returns the outer owner, or e when SetSelf was not called.
func (e *Element) Self() Owner {
	if e.self != nil {
		return e.self
	}
	return e
}

// Handle returns the element's handle, allocating it on first use.
func (e *Element) Handle() Handle {
	if !e.handle.IsValid() && !e.destroyed {
		e.handle = handles.alloc()
	}
	return e.handle
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the child elements in registration order.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// Dependencies returns the registered dependencies in registration order.
func (e *Element) Dependencies() []Dependency {
	return slices.Clone(e.deps)
}

// Destroyed reports whether Destroy has run.
func (e *Element) Destroyed() bool {
	return e.destroyed
}

// RegisterDependency records d for cleanup and registers the element as an
// owner of d. Inherited dependencies are resolved against the current parent.
func (e *Element) RegisterDependency(deps ...Dependency) {
	self := e.Self()
	for _, d := range deps {
		if slices.Contains(e.deps, d) {
			continue
		}
		e.deps = append(e.deps, d)
		d.RegisterOwner(self)
		if r, ok := resolver(d); ok && e.parent != nil {
			r.RegisterParent(self, e.parent.Self())
		}
	}
}

// RegisterChild makes child a child of e, detaching it from any previous
// parent, and resolves inherited dependencies through the child's subtree.
func (e *Element) RegisterChild(child *Element) {
	if child == nil || child == e || child.parent == e {
		return
	}
	if child.parent != nil {
		child.parent.DetachChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	child.resolveInherited()
}

// DetachChild removes child from e and clears the inherited ancestors of the
// child's subtree that were resolved through e.
func (e *Element) DetachChild(child *Element) {
	i := slices.Index(e.children, child)
	if i < 0 {
		return
	}
	e.children = slices.Delete(e.children, i, i+1)
	child.parent = nil
	child.resolveInherited()
}

// resolveInherited re-resolves every inherited dependency of e and its
// descendants, top down, against the current tree.
func (e *Element) resolveInherited() {
	self := e.Self()
	for _, d := range e.deps {
		r, ok := resolver(d)
		if !ok {
			continue
		}
		if e.parent != nil {
			r.RegisterParent(self, e.parent.Self())
		} else {
			r.RemoveParent(self)
		}
	}
	for _, c := range e.children {
		c.resolveInherited()
	}
}

// Walk calls fn for e and each descendant in depth-first pre-order. Returning
// false from fn skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range slices.Clone(e.children) {
		c.Walk(fn)
	}
}

// Destroy destroys the children, removes the element from every dependency in
// reverse registration order, detaches it from its parent and releases its
// handle. Destroying twice is a no-op.
func (e *Element) Destroy() {
	if e.destroyed {
		return
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		c := e.children[i]
		c.parent = nil
		c.Destroy()
	}
	e.children = nil
	self := e.Self()
	for i := len(e.deps) - 1; i >= 0; i-- {
		e.deps[i].RemoveOwner(self)
	}
	e.deps = nil
	if e.parent != nil {
		e.parent.DetachChild(e)
	}
	handles.release(e.handle)
	e.destroyed = true
}

func resolver(d Dependency) (AncestorResolver, bool) {
	switch d.Kind() {
	case KindInheritedProperty, KindInheritedResource:
		r, ok := d.(AncestorResolver)
		return r, ok
	default:
		return nil, false
	}
}
