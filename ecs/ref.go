package ecs

// Ref is a stable handle to one entity's component of type T.
//
// Unlike the pointer returned by AddComponent or GetComponent, a Ref holds
// no address: every access re-resolves (entity, T) through the scene, so
// storage growth and compaction never leave it dangling.
type Ref[T any] struct {
	scene  *Scene
	entity Entity
}

// RefOf returns a handle to e's T. The handle may be created before the
// component is added.
func RefOf[T any](s *Scene, e Entity) Ref[T] {
	return Ref[T]{scene: s, entity: e}
}

// Entity returns the entity the handle refers to.
func (r Ref[T]) Entity() Entity {
	return r.entity
}

// Valid reports whether the entity currently holds T.
func (r Ref[T]) Valid() bool {
	return r.scene != nil && HasComponent[T](r.scene, r.entity)
}

// Get resolves the handle to a pointer. The pointer has the usual lifetime
// of storage pointers; do not keep it across component additions.
func (r Ref[T]) Get() (*T, error) {
	if r.scene == nil {
		return nil, outOfRange("resolve ref", r.entity, 0)
	}
	return GetComponent[T](r.scene, r.entity)
}

// Load returns a copy of the component.
func (r Ref[T]) Load() (T, error) {
	ptr, err := r.Get()
	if err != nil {
		var zero T
		return zero, err
	}
	return *ptr, nil
}

// Store overwrites the component.
func (r Ref[T]) Store(value T) error {
	ptr, err := r.Get()
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

// Update calls fn with a pointer that is valid for the duration of the call.
func (r Ref[T]) Update(fn func(*T)) error {
	ptr, err := r.Get()
	if err != nil {
		return err
	}
	fn(ptr)
	return nil
}
