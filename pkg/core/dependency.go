package core

import (
	"fmt"
	"slices"
)

// Kind is the closed set of dependency variants.
type Kind uint8

const (
	KindProperty Kind = iota
	KindCollection
	KindInheritedProperty
	KindResource
	KindInheritedResource
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "Property"
	case KindCollection:
		return "Collection"
	case KindInheritedProperty:
		return "InheritedProperty"
	case KindResource:
		return "Resource"
	case KindInheritedResource:
		return "InheritedResource"
	case KindMarker:
		return "Marker"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// NotificationType identifies what happened to a dependency.
type NotificationType uint8

const (
	// Updated is the generic change notification. Every mutation ends with it.
	Updated NotificationType = iota
	// Recreated means a resource value was replaced in place.
	Recreated
	// Initialized means a resource became valid.
	Initialized
	// Invalidated means a resource became invalid.
	Invalidated
	// ValueChanged carries the old and new value of a property.
	ValueChanged
	// ElementAdded carries the element appended to a collection.
	ElementAdded
	// ElementRemoved carries the element removed from a collection.
	ElementRemoved
)

func (t NotificationType) String() string {
	switch t {
	case Updated:
		return "Updated"
	case Recreated:
		return "Recreated"
	case Initialized:
		return "Initialized"
	case Invalidated:
		return "Invalidated"
	case ValueChanged:
		return "ValueChanged"
	case ElementAdded:
		return "ElementAdded"
	case ElementRemoved:
		return "ElementRemoved"
	default:
		return fmt.Sprintf("NotificationType(%d)", t)
	}
}

// invalidates reports whether a notification means dependents are stale.
func (t NotificationType) invalidates() bool {
	return t == Updated || t == Recreated || t == Invalidated
}

// Notification is delivered to listeners. Old and New are set for
// ValueChanged, Value for ElementAdded and ElementRemoved.
type Notification struct {
	Type   NotificationType
	Owner  Owner
	Source Dependency
	Old    any
	New    any
	Value  any
}

func (n Notification) String() string {
	name := "<nil>"
	if n.Source != nil {
		name = n.Source.Name()
	}
	return fmt.Sprintf("%s(%s, %s)", n.Type, name, describe(n.Owner))
}

// Listener receives dependency notifications.
type Listener interface {
	OnDependencyUpdated(n Notification)
}

// ListenerFunc adapts a function to [Listener]. Use [NewListener] so the
// listener is a pointer and can be removed again.
type ListenerFunc struct {
	fn func(Notification)
}

// NewListener wraps fn as a removable listener.
func NewListener(fn func(Notification)) *ListenerFunc {
	return &ListenerFunc{fn: fn}
}

func (l *ListenerFunc) OnDependencyUpdated(n Notification) {
	l.fn(n)
}

// Dependency is an observable change source with per-owner storage.
type Dependency interface {
	Name() string
	Kind() Kind
	AddListener(l Listener)
	RemoveListener(l Listener)
	// RegisterOwner creates the owner's slot. Registering twice resets it.
	RegisterOwner(o Owner)
	// RemoveOwner erases the owner's slot.
	RemoveOwner(o Owner)
}

// AncestorResolver is implemented by the inherited dependency kinds.
type AncestorResolver interface {
	Dependency
	// RegisterParent resolves the owner's ancestor through parent.
	RegisterParent(o, parent Owner)
	// RemoveParent clears the owner's resolved ancestor.
	RemoveParent(o Owner)
	// Ancestor returns the owner's resolved ancestor, if any.
	Ancestor(o Owner) (Owner, bool)
}

// Notifier holds an ordered listener list. It is embedded by every dependency.
type Notifier struct {
	name      string
	listeners []Listener
}

// Name returns the dependency name used in diagnostics.
func (d *Notifier) Name() string {
	return d.name
}

// AddListener appends l. Adding the same listener twice delivers twice.
func (d *Notifier) AddListener(l Listener) {
	d.listeners = append(d.listeners, l)
}

// RemoveListener removes the first occurrence of l, if any.
func (d *Notifier) RemoveListener(l Listener) {
	if i := slices.Index(d.listeners, l); i >= 0 {
		d.listeners = slices.Delete(d.listeners, i, i+1)
	}
}

// ListenerCount returns the number of registered listeners.
func (d *Notifier) ListenerCount() int {
	return len(d.listeners)
}

// Notify delivers n to every listener in registration order. Listeners may
// add or remove listeners; the iteration covers the list as it was on entry.
func (d *Notifier) Notify(n Notification) {
	if len(d.listeners) == 0 {
		return
	}
	for _, l := range slices.Clone(d.listeners) {
		l.OnDependencyUpdated(n)
	}
}
