package core

// Marker is a dependency without a value. Resources bind to it to be
// invalidated on demand, for example when a widget moves to a new render
// target.
type Marker struct {
	Notifier
}

// NewMarker declares a marker.
func NewMarker(name string) *Marker {
	return &Marker{Notifier: Notifier{name: name}}
}

func (m *Marker) Kind() Kind { return KindMarker }

func (m *Marker) RegisterOwner(Owner) {}

func (m *Marker) RemoveOwner(Owner) {}

// Touch notifies Updated for o.
func (m *Marker) Touch(o Owner) {
	m.Notify(Notification{Type: Updated, Owner: o, Source: m})
}
