package core

import "slices"

// CollectionProperty stores an append-ordered slice per owner.
type CollectionProperty[T comparable] struct {
	Notifier
	slots slotTable[[]T]
}

// NewCollectionProperty declares an empty collection property.
func NewCollectionProperty[T comparable](name string) *CollectionProperty[T] {
	return &CollectionProperty[T]{Notifier: Notifier{name: name}}
}

func (c *CollectionProperty[T]) Kind() Kind { return KindCollection }

func (c *CollectionProperty[T]) RegisterOwner(o Owner) {
	c.slots.insert(handleOf(o), nil)
}

func (c *CollectionProperty[T]) RemoveOwner(o Owner) {
	c.slots.remove(handleOf(o))
}

// Values returns a copy of the owner's elements in insertion order.
func (c *CollectionProperty[T]) Values(o Owner) []T {
	s, ok := c.slots.lookup(handleOf(o))
	if !ok {
		checkOwner(c, "Values", o)
		return nil
	}
	return slices.Clone(*s)
}

// Len returns the number of elements stored for o.
func (c *CollectionProperty[T]) Len(o Owner) int {
	s, ok := c.slots.lookup(handleOf(o))
	if !ok {
		return 0
	}
	return len(*s)
}

// Contains reports whether v is stored for o.
func (c *CollectionProperty[T]) Contains(o Owner, v T) bool {
	s, ok := c.slots.lookup(handleOf(o))
	return ok && slices.Contains(*s, v)
}

// Add appends v and notifies ElementAdded followed by Updated.
func (c *CollectionProperty[T]) Add(o Owner, v T) {
	s, ok := c.slots.lookup(handleOf(o))
	if !ok {
		checkOwner(c, "Add", o)
		return
	}
	*s = append(*s, v)
	c.Notify(Notification{Type: ElementAdded, Owner: o, Source: c, Value: v})
	c.Notify(Notification{Type: Updated, Owner: o, Source: c})
}

// Remove erases every element equal to v. ElementRemoved followed by Updated
// is notified once, and only if something was removed.
func (c *CollectionProperty[T]) Remove(o Owner, v T) bool {
	s, ok := c.slots.lookup(handleOf(o))
	if !ok {
		checkOwner(c, "Remove", o)
		return false
	}
	n := len(*s)
	*s = slices.DeleteFunc(*s, func(e T) bool { return e == v })
	if len(*s) == n {
		return false
	}
	c.Notify(Notification{Type: ElementRemoved, Owner: o, Source: c, Value: v})
	c.Notify(Notification{Type: Updated, Owner: o, Source: c})
	return true
}

// Clear removes every element, notifying ElementRemoved for each in order and
// a single Updated at the end.
func (c *CollectionProperty[T]) Clear(o Owner) {
	s, ok := c.slots.lookup(handleOf(o))
	if !ok || len(*s) == 0 {
		return
	}
	removed := *s
	*s = nil
	for _, v := range removed {
		c.Notify(Notification{Type: ElementRemoved, Owner: o, Source: c, Value: v})
	}
	c.Notify(Notification{Type: Updated, Owner: o, Source: c})
}
