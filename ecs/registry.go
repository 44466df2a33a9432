package ecs

import (
	"reflect"
	"sync"

	"github.com/kamstrup/intmap"
)

// ComponentID identifies a component type within a ComponentRegistry.
// IDs are dense and assigned in registration order starting at 0.
type ComponentID uint32

// ComponentRegistry assigns ComponentIDs to component types.
// Registration is safe for concurrent use; a Scene reads its registry
// from a single goroutine.
type ComponentRegistry struct {
	mu        sync.RWMutex
	ids       *intmap.Map[uint64, ComponentID]
	types     []reflect.Type
	sizes     []uintptr
	factories []func(StorageKind) Storage
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: intmap.New[uint64, ComponentID](64),
	}
}

var defaultRegistry = NewComponentRegistry()

// DefaultRegistry returns the process-wide registry used by TypeID and by
// scenes created without WithRegistry.
func DefaultRegistry() *ComponentRegistry {
	return defaultRegistry
}

// RegisterComponent registers T with r and returns its ID.
// Registering a type twice returns the ID assigned the first time.
func RegisterComponent[T any](r *ComponentRegistry) ComponentID {
	return r.register(reflect.TypeFor[T](), newStorageFactory[T])
}

// TypeID returns the process-wide ID of T, assigning the next free ID on
// the first call for T.
func TypeID[T any]() ComponentID {
	return RegisterComponent[T](defaultRegistry)
}

func newStorageFactory[T any](kind StorageKind) Storage {
	return NewStorage[T](kind)
}

// LookupComponent returns the ID of T without registering it.
func LookupComponent[T any](r *ComponentRegistry) (ComponentID, bool) {
	return r.lookup(reflect.TypeFor[T]())
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Type returns the component type registered under id, or nil.
func (r *ComponentRegistry) Type(id ComponentID) reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.types) {
		return nil
	}
	return r.types[id]
}

// Size returns the element size in bytes of the type registered under id.
func (r *ComponentRegistry) Size(id ComponentID) uintptr {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.sizes) {
		return 0
	}
	return r.sizes[id]
}

// Lookup returns the ID of t without registering it.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentID, bool) {
	return r.lookup(t)
}

func (r *ComponentRegistry) lookup(t reflect.Type) (ComponentID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ids.Get(typeKey(t))
}

// factory returns the storage constructor recorded for id.
func (r *ComponentRegistry) factory(id ComponentID) func(StorageKind) Storage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.factories) {
		return nil
	}
	return r.factories[id]
}

func (r *ComponentRegistry) register(t reflect.Type, factory func(StorageKind) Storage) ComponentID {
	key := typeKey(t)

	r.mu.RLock()
	id, ok := r.ids.Get(key)
	r.mu.RUnlock()
	if ok {
		return id
	}

	validateComponentType(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids.Get(key); ok {
		return id
	}

	id = ComponentID(len(r.types))
	r.ids.Put(key, id)
	r.types = append(r.types, t)
	r.sizes = append(r.sizes, t.Size())
	r.factories = append(r.factories, factory)
	return id
}

// validateComponentType panics for kinds that are not plain data.
// Components can be structs or primitives (int, string, etc.)
func validateComponentType(t reflect.Type) {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		panic("ecs: component " + t.String() + " must be a value type, not a " + t.Kind().String())
	}
}
