// Package core implements the dependency engine the widget toolkit is built on.
//
// A [Dependency] is an observable change source shared by every owner that
// registers with it. Values are stored per owner inside the dependency itself:
// a [Property] holds one value per owner, a [CollectionProperty] one ordered
// slice per owner, and a [Resource] one lazily computed, cached value per owner
// together with its valid/invalid state.
//
// Resources bind to properties, markers and other resources. When a bound
// source notifies a change for an owner, the resource is invalidated for that
// same owner, and the invalidation cascades to everything bound to the
// resource. Nothing is recomputed until the next [Resource.Get].
//
// Owners are addressed by generation-checked [Handle] values allocated from a
// process-wide arena, so a destroyed [Element] can never alias a live one.
// [InheritedProperty] and [InheritedResource] resolve their value through the
// nearest ancestor in the element tree instead of storing it locally.
//
// The engine is single-threaded. All mutation, notification and recomputation
// must happen on the goroutine that owns the element tree.
package core
