package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertySetValueNotifies(t *testing.T) {
	p := NewProperty("Text", "")
	o := newNode("o")
	o.RegisterDependency(p)
	rec := &recorder{}
	p.AddListener(rec)

	p.SetValue(o, "hello")

	require.Equal(t, []NotificationType{ValueChanged, Updated}, rec.types())
	assert.Equal(t, "", rec.got[0].Old)
	assert.Equal(t, "hello", rec.got[0].New)
	assert.Same(t, o, rec.got[0].Owner)
	assert.Equal(t, "hello", p.Value(o))
}

func TestPropertySetValueUnconditional(t *testing.T) {
	p := NewProperty("Text", "a")
	o := newNode("o")
	o.RegisterDependency(p)
	rec := &recorder{}
	p.AddListener(rec)

	p.SetValue(o, "a")
	assert.Len(t, rec.got, 2)
}

func TestPropertySkipUnchanged(t *testing.T) {
	p := NewProperty("Text", "a", SkipUnchanged[string]())
	o := newNode("o")
	o.RegisterDependency(p)
	rec := &recorder{}
	p.AddListener(rec)

	p.SetValue(o, "a")
	assert.Empty(t, rec.got)
	p.SetValue(o, "b")
	assert.Len(t, rec.got, 2)
}

func TestPropertyRegisterTwiceResets(t *testing.T) {
	p := NewProperty("Width", 1)
	o := newNode("o")
	p.RegisterOwner(o)
	p.SetValue(o, 5)
	p.RegisterOwner(o)
	assert.Equal(t, 1, p.Value(o))
}

func TestPropertyPerOwner(t *testing.T) {
	p := NewProperty("Width", 0)
	a, b := newNode("a"), newNode("b")
	a.RegisterDependency(p)
	b.RegisterDependency(p)

	p.SetValue(a, 3)
	assert.Equal(t, 3, p.Value(a))
	assert.Equal(t, 0, p.Value(b))
}

func TestCollectionAddRemoveIdempotent(t *testing.T) {
	c := NewCollectionProperty[string]("Items")
	o := newNode("o")
	o.RegisterDependency(c)
	c.Add(o, "a")
	c.Add(o, "b")
	before := c.Values(o)

	rec := &recorder{}
	c.AddListener(rec)
	c.Add(o, "x")
	require.True(t, c.Remove(o, "x"))

	assert.Equal(t, before, c.Values(o))
	var added, removed int
	for _, n := range rec.got {
		switch n.Type {
		case ElementAdded:
			added++
			assert.Equal(t, "x", n.Value)
		case ElementRemoved:
			removed++
			assert.Equal(t, "x", n.Value)
		}
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}

func TestCollectionRemoveAllOccurrences(t *testing.T) {
	c := NewCollectionProperty[int]("Items")
	o := newNode("o")
	o.RegisterDependency(c)
	for _, v := range []int{1, 2, 1, 3, 1} {
		c.Add(o, v)
	}
	rec := &recorder{}
	c.AddListener(rec)

	assert.True(t, c.Remove(o, 1))
	assert.Equal(t, []int{2, 3}, c.Values(o))
	assert.Equal(t, []NotificationType{ElementRemoved, Updated}, rec.types())

	rec.got = nil
	assert.False(t, c.Remove(o, 7))
	assert.Empty(t, rec.got)
}

func TestCollectionValuesIsCopy(t *testing.T) {
	c := NewCollectionProperty[int]("Items")
	o := newNode("o")
	o.RegisterDependency(c)
	c.Add(o, 1)
	vs := c.Values(o)
	vs[0] = 99
	assert.Equal(t, []int{1}, c.Values(o))
	assert.Equal(t, 1, c.Len(o))
	assert.True(t, c.Contains(o, 1))
}

func TestCollectionClear(t *testing.T) {
	c := NewCollectionProperty[int]("Items")
	o := newNode("o")
	o.RegisterDependency(c)
	c.Add(o, 1)
	c.Add(o, 2)
	rec := &recorder{}
	c.AddListener(rec)

	c.Clear(o)
	assert.Equal(t, 0, c.Len(o))
	assert.Equal(t, []NotificationType{ElementRemoved, ElementRemoved, Updated}, rec.types())
}
