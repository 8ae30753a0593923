package core

import (
	"fmt"
	"testing"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceMemoizes(t *testing.T) {
	calls := 0
	r := NewResource("Measure", func(Owner) (int, error) {
		calls++
		return 42, nil
	})
	o := newNode("o")
	o.RegisterDependency(r)

	for range 3 {
		v, err := r.Get(o)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)
}

func TestResourceInvalidationPropagates(t *testing.T) {
	var order []string
	p := NewProperty("FontSize", 10)
	r1 := NewResource("TextFormat", func(o Owner) (int, error) {
		order = append(order, "r1")
		return p.Value(o) * 2, nil
	}).Bind(p)
	r2 := NewResource("TextLayout", func(o Owner) (int, error) {
		v, err := r1.Get(o)
		if err != nil {
			return 0, err
		}
		order = append(order, "r2")
		return v + 1, nil
	}).Bind(r1)

	o := newNode("o")
	o.RegisterDependency(p, r1, r2)

	v, err := r2.Get(o)
	require.NoError(t, err)
	assert.Equal(t, 21, v)
	require.True(t, r1.IsValid(o))
	require.True(t, r2.IsValid(o))

	p.SetValue(o, 20)
	assert.False(t, r1.IsValid(o))
	assert.False(t, r2.IsValid(o))

	order = nil
	v, err = r2.Get(o)
	require.NoError(t, err)
	assert.Equal(t, 41, v)
	assert.Equal(t, []string{"r1", "r2"}, order)

	order = nil
	_, _ = r2.Get(o)
	assert.Empty(t, order)
}

func TestResourceBindingFiltersOwner(t *testing.T) {
	p := NewProperty("Size", 0)
	r := NewResource("Measure", func(o Owner) (int, error) { return p.Value(o), nil }).Bind(p)
	a, b := newNode("a"), newNode("b")
	a.RegisterDependency(p, r)
	b.RegisterDependency(p, r)
	_, _ = r.Get(a)
	_, _ = r.Get(b)

	p.SetValue(a, 5)
	assert.False(t, r.IsValid(a))
	assert.True(t, r.IsValid(b))
}

func TestResourceStateTransitionsAreIdempotent(t *testing.T) {
	r := NewResource("R", func(Owner) (int, error) { return 1, nil })
	o := newNode("o")
	o.RegisterDependency(r)
	rec := &recorder{}
	r.AddListener(rec)

	r.Invalidate(o)
	assert.Empty(t, rec.got)

	require.NoError(t, r.Initialize(o))
	require.NoError(t, r.Initialize(o))
	r.Invalidate(o)
	r.Invalidate(o)
	assert.Equal(t, []NotificationType{Initialized, Invalidated}, rec.types())
}

func TestResourceInitErrorLeavesInvalid(t *testing.T) {
	fail := true
	calls := 0
	r := NewResource("RenderTarget", func(Owner) (string, error) {
		calls++
		if fail {
			return "", fmt.Errorf("no device")
		}
		return "target", nil
	})
	o := newNode("window")
	o.RegisterDependency(r)
	rec := &recorder{}
	r.AddListener(rec)

	_, err := r.Get(o)
	require.Error(t, err)
	var initErr *errors.ResourceInitError
	require.True(t, errors.As(err, &initErr))
	assert.Equal(t, "RenderTarget", initErr.Resource)
	assert.Equal(t, "window", initErr.Owner)
	assert.EqualError(t, err, "initialize RenderTarget for window: no device")
	assert.False(t, r.IsValid(o))
	assert.Empty(t, rec.got)

	fail = false
	v, err := r.Get(o)
	require.NoError(t, err)
	assert.Equal(t, "target", v)
	assert.Equal(t, 2, calls)
}

func TestResourceDiscard(t *testing.T) {
	var discarded []int
	n := 0
	r := NewResource("Brush", func(Owner) (int, error) {
		n++
		return n, nil
	}, WithDiscard(func(_ Owner, v int) { discarded = append(discarded, v) }))
	o := newNode("o")
	o.RegisterDependency(r)

	_, _ = r.Get(o)
	r.Invalidate(o)
	_, _ = r.Get(o)
	o.Destroy()
	assert.Equal(t, []int{1, 2}, discarded)
}

func TestResourceRecreate(t *testing.T) {
	n := 0
	r := NewResource("RenderTarget", func(Owner) (int, error) {
		n++
		return n, nil
	})
	dependent := NewResource("Brush", func(o Owner) (int, error) { return r.Value(o) * 10, nil }).Bind(r)
	o := newNode("o")
	o.RegisterDependency(r, dependent)
	_, _ = dependent.Get(o)

	rec := &recorder{}
	r.AddListener(rec)
	require.NoError(t, r.Recreate(o))

	assert.Equal(t, []NotificationType{Recreated}, rec.types())
	v, _ := r.Peek(o)
	assert.Equal(t, 2, v)
	assert.False(t, dependent.IsValid(o))
	assert.Equal(t, 20, dependent.Value(o))
}

func TestResourceUpdate(t *testing.T) {
	r := NewResource("ClientRect", func(Owner) (int, error) { return 0, nil })
	dependent := NewResource("RenderTarget", func(o Owner) (int, error) { return r.Value(o), nil }).Bind(r)
	o := newNode("o")
	o.RegisterDependency(r, dependent)
	_, _ = dependent.Get(o)

	r.Update(o, 7)
	assert.True(t, r.IsValid(o))
	assert.False(t, dependent.IsValid(o))
	assert.Equal(t, 7, dependent.Value(o))
}

func TestResourceBindSelfIsRejected(t *testing.T) {
	h := captureErrors(t)
	r := NewResource("R", func(Owner) (int, error) { return 0, nil })
	r.Bind(r)

	assert.Empty(t, r.Sources())
	require.Len(t, h.errs, 1)
	assert.Equal(t, errors.KindBinding, h.errs[0].Kind)
}

func TestResourceBindOnceAndUnbind(t *testing.T) {
	p := NewProperty("P", 0)
	r := NewResource("R", func(Owner) (int, error) { return 0, nil })
	r.Bind(p, p)
	assert.Equal(t, 1, p.ListenerCount())

	r.Unbind(p)
	assert.Equal(t, 0, p.ListenerCount())
	assert.Empty(t, r.Sources())

	o := newNode("o")
	o.RegisterDependency(p, r)
	_, _ = r.Get(o)
	p.SetValue(o, 1)
	assert.True(t, r.IsValid(o))
}

func TestResourceValueReportsErrors(t *testing.T) {
	h := captureErrors(t)
	r := NewResource("TextFormat", func(Owner) (int, error) { return 0, fmt.Errorf("bad font") })
	o := newNode("o")
	o.RegisterDependency(r)

	assert.Equal(t, 0, r.Value(o))
	require.Len(t, h.errs, 1)
	assert.Equal(t, errors.KindInit, h.errs[0].Kind)
}
