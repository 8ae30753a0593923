//go:build !debug

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyUnregisteredReadsDefault(t *testing.T) {
	p := NewProperty("FontSize", float32(12))
	o := newNode("o")

	assert.Equal(t, float32(12), p.Value(o))
	_, ok := p.Lookup(o)
	assert.False(t, ok)

	p.SetValue(o, 20)
	assert.Equal(t, float32(12), p.Value(o))
}

func TestResourceUnregisteredOwnerIsInert(t *testing.T) {
	calls := 0
	r := NewResource("R", func(Owner) (int, error) { calls++; return 1, nil })
	o := newNode("o")

	v, err := r.Get(o)
	assert.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, calls)
	assert.False(t, r.IsValid(o))
}
