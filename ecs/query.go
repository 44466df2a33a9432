package ecs

import (
	"iter"
	"slices"
	"unsafe"
)

// Query wraps a View with a per-frame snapshot of matching entities.
// Execute records which entities match; Iter re-resolves their component
// pointers, so growth caused by one system never hands stale pointers to the
// next.
type Query[T any] struct {
	view  *View[T]
	scene *Scene

	cachedEntities []Entity
	cacheValid     bool
}

// NewQuery creates a new Query over scene.
func NewQuery[T any](scene *Scene) *Query[T] {
	return &Query[T]{
		view:  NewView[T](scene),
		scene: scene,
	}
}

// Init initializes or re-initializes the Query with a scene.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(scene *Scene) {
	q.view = NewView[T](scene)
	q.scene = scene
	q.cachedEntities = q.cachedEntities[:0]
	q.cacheValid = false
}

// Execute snapshots the matching entities for this frame.
// Called automatically by the Scheduler before systems run.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	for e := range q.view.Entities() {
		q.cachedEntities = append(q.cachedEntities, e)
	}
	q.cacheValid = true
}

// frameQuery is the part of Query the Scheduler refreshes before each system.
type frameQuery interface {
	Execute()
}

// Len returns the number of entities captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// Entities returns a copy of the entities captured by the last Execute.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Entities() []Entity {
	if !q.cacheValid {
		panic("Query.Entities() called before Query.Execute()")
	}
	return slices.Clone(q.cachedEntities)
}

// Iter returns an iterator over entity IDs and component data.
// Entities that lost a required component since Execute are skipped.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(Entity, T) bool) {
		b := q.view.bind()
		if !b.matchable {
			return
		}

		var result T
		resultPtr := unsafe.Pointer(&result)

		for _, e := range q.cachedEntities {
			if !q.scene.masks[e].Contains(b.required) {
				continue
			}
			q.view.populate(resultPtr, e, &b)
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}
