package ecs

import (
	"fmt"
	"iter"
	"reflect"
)

// AddSingleton stores value as the scene-wide instance of its type,
// replacing any previous instance. The type is registered with the scene's
// registry but no entity storage is created for it.
func AddSingleton[T any](s *Scene, value T) *T {
	id := RegisterComponent[T](s.registry)
	if existing, ok := s.singletons.Get(id); ok {
		ptr := existing.(*T)
		*ptr = value
		return ptr
	}
	ptr := new(T)
	*ptr = value
	s.singletons.Put(id, ptr)
	return ptr
}

// ReadSingleton returns the scene-wide instance of T.
func ReadSingleton[T any](s *Scene) (*T, bool) {
	id, ok := LookupComponent[T](s.registry)
	if !ok {
		return nil, false
	}
	existing, ok := s.singletons.Get(id)
	if !ok {
		return nil, false
	}
	return existing.(*T), true
}

// RemoveSingleton drops the scene-wide instance of T.
func RemoveSingleton[T any](s *Scene) {
	if id, ok := LookupComponent[T](s.registry); ok {
		s.singletons.Del(id)
	}
}

// SingletonCount returns the number of singletons held by the scene.
func (s *Scene) SingletonCount() int {
	return s.singletons.Len()
}

// Singletons yields every singleton type with a pointer to its instance,
// in component ID order.
func (s *Scene) Singletons() iter.Seq2[reflect.Type, any] {
	return func(yield func(reflect.Type, any) bool) {
		for id := range s.registry.Len() {
			value, ok := s.singletons.Get(ComponentID(id))
			if !ok {
				continue
			}
			if !yield(s.registry.Type(ComponentID(id)), value) {
				return
			}
		}
	}
}

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data.
type Singleton[T any] struct {
	scene *Scene
	ptr   *T
}

// NewSingleton creates a new Singleton accessor for the given scene.
// If initializer is provided and the singleton doesn't exist in the scene,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists in the scene after the call.
func NewSingleton[T any](scene *Scene, initializer ...T) *Singleton[T] {
	ptr, ok := ReadSingleton[T](scene)
	if !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		ptr = AddSingleton(scene, value)
	}

	return &Singleton[T]{
		scene: scene,
		ptr:   ptr,
	}
}

// Init initializes the Singleton with a scene reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(scene *Scene) {
	s.scene = scene
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to the scene.
func (s *Singleton[T]) Get() *T {
	s.updateCache()
	return s.ptr
}

// MustGet returns the singleton or an error wrapping ErrMissingComponent.
func (s *Singleton[T]) MustGet() (*T, error) {
	if ptr := s.Get(); ptr != nil {
		return ptr, nil
	}
	return nil, fmt.Errorf("singleton %s: %w", reflect.TypeFor[T](), ErrMissingComponent)
}

// updateCache refreshes the cached pointer from the scene.
func (s *Singleton[T]) updateCache() {
	if s.scene == nil {
		return
	}
	ptr, _ := ReadSingleton[T](s.scene)
	s.ptr = ptr
}

// Exists returns true if the singleton component has been added to the scene
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
