package ecs

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Scene owns every entity mask and one storage per component type.
//
// A Scene is not safe for concurrent use. Any operation that adds a
// component can grow a storage and invalidate pointers previously returned
// for that component type; use Ref for handles that must survive growth.
type Scene struct {
	registry   *ComponentRegistry
	masks      []Mask
	storages   []Storage
	kind       StorageKind
	kinds      map[reflect.Type]StorageKind
	limit      uint64
	singletons *intmap.Map[ComponentID, any]
}

// Option configures a Scene.
type Option func(*Scene)

// WithRegistry makes the scene assign component IDs from r instead of the
// process-wide default registry.
func WithRegistry(r *ComponentRegistry) Option {
	return func(s *Scene) {
		s.registry = r
	}
}

// WithStorageKind sets the storage kind used for component types without
// an explicit override. The default is Dense.
func WithStorageKind(kind StorageKind) Option {
	return func(s *Scene) {
		s.kind = kind
	}
}

// WithComponentStorage overrides the storage kind for component type T.
func WithComponentStorage[T any](kind StorageKind) Option {
	return func(s *Scene) {
		s.kinds[reflect.TypeFor[T]()] = kind
	}
}

// WithEntityLimit caps the number of entities the scene will create.
// Values above MaxEntities are clamped.
func WithEntityLimit(n uint64) Option {
	return func(s *Scene) {
		s.limit = min(n, MaxEntities)
	}
}

// NewScene creates an empty scene.
func NewScene(opts ...Option) *Scene {
	s := &Scene{
		registry:   defaultRegistry,
		kind:       Dense,
		kinds:      make(map[reflect.Type]StorageKind),
		limit:      MaxEntities,
		singletons: intmap.New[ComponentID, any](8),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the registry the scene assigns component IDs from.
func (s *Scene) Registry() *ComponentRegistry {
	return s.registry
}

// CreateEntity appends a new entity with an empty mask and returns it.
func (s *Scene) CreateEntity() (Entity, error) {
	if uint64(len(s.masks)) >= s.limit {
		return 0, fmt.Errorf("create entity: limit %d reached: %w", s.limit, ErrHandleSpaceExhausted)
	}
	e := Entity(len(s.masks))
	s.masks = append(s.masks, nil)
	return e, nil
}

// EntityCount returns the number of entities ever created.
func (s *Scene) EntityCount() int {
	return len(s.masks)
}

// Valid reports whether e has been created by this scene.
func (s *Scene) Valid(e Entity) bool {
	return e.Index() < len(s.masks)
}

// Entities yields every entity in ascending order.
func (s *Scene) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i := range s.masks {
			if !yield(Entity(i)) {
				return
			}
		}
	}
}

// Mask returns a copy of e's component mask.
func (s *Scene) Mask(e Entity) (Mask, bool) {
	if !s.Valid(e) {
		return nil, false
	}
	return s.masks[e].Clone(), true
}

// HasComponentID reports whether e holds the component with the given ID.
// It never fails.
func (s *Scene) HasComponentID(e Entity, id ComponentID) bool {
	return s.Valid(e) && s.masks[e].Has(id)
}

// RemoveComponentID clears the component bit on e and releases its slot.
// Removing a component the entity does not hold is a no-op.
func (s *Scene) RemoveComponentID(e Entity, id ComponentID) error {
	if !s.Valid(e) {
		return outOfRange("remove component", e, len(s.masks))
	}
	if !s.masks[e].Has(id) {
		return nil
	}

	s.masks[e].Clear(id)
	if st := s.Storage(id); st != nil {
		st.Release(e)
	}
	return nil
}

// ComponentValue returns a pointer to e's component with the given ID,
// boxed as any.
func (s *Scene) ComponentValue(e Entity, id ComponentID) (any, error) {
	if !s.Valid(e) {
		return nil, outOfRange("component value", e, len(s.masks))
	}
	if !s.masks[e].Has(id) {
		return nil, missingComponent(e, s.registry.Type(id))
	}
	return s.storages[id].Value(e)
}

// EntitiesWith yields, in ascending order, every entity holding all of ids.
func (s *Scene) EntitiesWith(ids ...ComponentID) iter.Seq[Entity] {
	required := NewMask(ids...)
	return func(yield func(Entity) bool) {
		for i, m := range s.masks {
			if m.Contains(required) && !yield(Entity(i)) {
				return
			}
		}
	}
}

// Storage returns the storage for id, or nil if the component type has not
// been added to any entity of this scene.
func (s *Scene) Storage(id ComponentID) Storage {
	if int(id) >= len(s.storages) {
		return nil
	}
	return s.storages[id]
}

// Storages yields every storage the scene has created.
func (s *Scene) Storages() iter.Seq2[ComponentID, Storage] {
	return func(yield func(ComponentID, Storage) bool) {
		for id, st := range s.storages {
			if st == nil {
				continue
			}
			if !yield(ComponentID(id), st) {
				return
			}
		}
	}
}

// CompactStats summarises a Scene.Compact pass.
type CompactStats struct {
	Storages    int
	SlotsFreed  int
	BytesBefore uintptr
	BytesAfter  uintptr
}

// Compact reclaims the tombstoned slots of every storage, using the entity
// masks to decide which slots are live. Pointers into any storage are
// invalidated.
func (s *Scene) Compact() CompactStats {
	var stats CompactStats
	for id, st := range s.Storages() {
		stats.Storages++
		stats.BytesBefore += st.Footprint()
		stats.SlotsFreed += st.Compact(func(e Entity) bool {
			return s.HasComponentID(e, id)
		})
		stats.BytesAfter += st.Footprint()
	}
	return stats
}

func (s *Scene) kindFor(t reflect.Type) StorageKind {
	if kind, ok := s.kinds[t]; ok {
		return kind
	}
	return s.kind
}

// pointer returns the address of e's component with the given ID, or nil
// if e does not hold it.
func (s *Scene) pointer(e Entity, id ComponentID) unsafe.Pointer {
	if !s.HasComponentID(e, id) {
		return nil
	}
	return s.storages[id].pointer(e)
}

// ensureStorage returns the storage for id, creating it from the registry's
// factory on first use.
func (s *Scene) ensureStorage(id ComponentID) Storage {
	if n := int(id) + 1 - len(s.storages); n > 0 {
		s.storages = append(s.storages, make([]Storage, n)...)
	}
	if st := s.storages[id]; st != nil {
		return st
	}

	st := s.registry.factory(id)(s.kindFor(s.registry.Type(id)))
	s.storages[id] = st
	return st
}

// storageFor returns the storage for T, registering T and creating the
// storage on first use.
func storageFor[T any](s *Scene) (ComponentID, TypedStorage[T], error) {
	id := RegisterComponent[T](s.registry)
	typed, err := StorageAs[T](s.ensureStorage(id))
	return id, typed, err
}

// AddComponentValue adds the component held in value to e, copying it into
// storage. value may be a component or a pointer to one. The component type
// must already be registered with the scene's registry.
func (s *Scene) AddComponentValue(e Entity, value any) error {
	if !s.Valid(e) {
		return outOfRange("add component", e, len(s.masks))
	}

	val, id, err := s.componentOf(value)
	if err != nil {
		return fmt.Errorf("entity %d: %w", e, err)
	}

	st := s.ensureStorage(id)
	s.masks[e].Set(id)
	reflect.NewAt(val.Type(), st.allocate(e)).Elem().Set(val)
	return nil
}

// componentOf resolves a component value, or a pointer to one, to its
// registered ID.
func (s *Scene) componentOf(value any) (reflect.Value, ComponentID, error) {
	val := reflect.ValueOf(value)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	if !val.IsValid() {
		return val, 0, errors.New("ecs: nil component")
	}
	id, ok := s.registry.Lookup(val.Type())
	if !ok {
		return val, 0, fmt.Errorf("ecs: component type %s not registered", val.Type())
	}
	return val, id, nil
}

// checkComponents reports the first value AddComponentValue would reject.
func (s *Scene) checkComponents(values ...any) error {
	for _, value := range values {
		if _, _, err := s.componentOf(value); err != nil {
			return err
		}
	}
	return nil
}

// RemoveComponentType clears e's bit for the component type t.
func (s *Scene) RemoveComponentType(e Entity, t reflect.Type) error {
	if !s.Valid(e) {
		return outOfRange("remove component", e, len(s.masks))
	}
	id, ok := s.registry.Lookup(t)
	if !ok {
		return nil
	}
	return s.RemoveComponentID(e, id)
}

// AddComponent marks e as holding T and returns its slot, default-constructing
// it if e has none. On dense storage a slot left behind by an earlier
// RemoveComponent is returned with its old value.
//
// The returned pointer is invalidated by the next AddComponent of T on any
// entity.
func AddComponent[T any](s *Scene, e Entity) (*T, error) {
	if !s.Valid(e) {
		return nil, outOfRange("add component", e, len(s.masks))
	}

	id, st, err := storageFor[T](s)
	if err != nil {
		return nil, fmt.Errorf("add component to entity %d: %w", e, err)
	}

	s.masks[e].Set(id)
	return st.GetOrAllocate(e), nil
}

// SetComponent adds T to e and stores value in it.
func SetComponent[T any](s *Scene, e Entity, value T) (*T, error) {
	ptr, err := AddComponent[T](s, e)
	if err != nil {
		return nil, err
	}
	*ptr = value
	return ptr, nil
}

// RemoveComponent clears e's bit for T. Storage memory is not reclaimed
// until Compact.
func RemoveComponent[T any](s *Scene, e Entity) error {
	if !s.Valid(e) {
		return outOfRange("remove component", e, len(s.masks))
	}
	id, ok := LookupComponent[T](s.registry)
	if !ok {
		return nil
	}
	return s.RemoveComponentID(e, id)
}

// GetComponent returns e's T. It fails with ErrMissingComponent if e does
// not hold T.
func GetComponent[T any](s *Scene, e Entity) (*T, error) {
	if !s.Valid(e) {
		return nil, outOfRange("get component", e, len(s.masks))
	}

	id, ok := LookupComponent[T](s.registry)
	if !ok || !s.masks[e].Has(id) {
		return nil, missingComponent(e, reflect.TypeFor[T]())
	}

	st, err := StorageAs[T](s.storages[id])
	if err != nil {
		return nil, fmt.Errorf("get component of entity %d: %w", e, err)
	}
	return st.Get(e)
}

// HasComponent reports whether e holds T. It is safe for any entity and
// any type and never registers T.
func HasComponent[T any](s *Scene, e Entity) bool {
	if !s.Valid(e) {
		return false
	}
	id, ok := LookupComponent[T](s.registry)
	return ok && s.masks[e].Has(id)
}

// ComponentIDOf returns the ID the scene uses for T, if T is registered.
func ComponentIDOf[T any](s *Scene) (ComponentID, bool) {
	return LookupComponent[T](s.registry)
}
