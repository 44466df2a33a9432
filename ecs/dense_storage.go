package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"unsafe"
)

// DenseStorage stores components in a slice indexed by entity ordinal.
//
// Covering entity e requires e+1 slots, so every entity below e gets a
// default-constructed slot whether or not it ever holds the component.
// Removal leaves the slot untouched: re-adding the component to the same
// entity observes its previous value.
type DenseStorage[T any] struct {
	elementSize uintptr
	data        []T
}

// NewDenseStorage creates an empty dense storage for T.
func NewDenseStorage[T any]() *DenseStorage[T] {
	var zero T
	return &DenseStorage[T]{
		elementSize: unsafe.Sizeof(zero),
		data:        make([]T, 0, initialCapacity),
	}
}

func (s *DenseStorage[T]) Kind() StorageKind    { return Dense }
func (s *DenseStorage[T]) Type() reflect.Type   { return reflect.TypeFor[T]() }
func (s *DenseStorage[T]) ElementSize() uintptr { return s.elementSize }
func (s *DenseStorage[T]) Slots() int           { return len(s.data) }

// Has reports whether e is inside the allocated slot range.
func (s *DenseStorage[T]) Has(e Entity) bool {
	return e.Index() < len(s.data)
}

// Get returns the slot at e. The pointer is invalidated by any later growth.
func (s *DenseStorage[T]) Get(e Entity) (*T, error) {
	if e.Index() >= len(s.data) {
		return nil, outOfRange("dense get", e, len(s.data))
	}
	return &s.data[e], nil
}

// Allocate appends count default-constructed slots and returns the last
// new slot with the new total slot count.
func (s *DenseStorage[T]) Allocate(count int) (*T, int, error) {
	if count < 1 {
		return nil, len(s.data), fmt.Errorf("dense allocate: count %d: %w", count, ErrOutOfRange)
	}

	s.grow(count)
	return &s.data[len(s.data)-1], len(s.data), nil
}

// grow appends count constructed slots.
func (s *DenseStorage[T]) grow(count int) {
	start := len(s.data)
	s.data = slices.Grow(s.data, count)[:start+count]
	for i := start; i < len(s.data); i++ {
		construct(&s.data[i])
	}
}

// GetOrAllocate returns e's slot, first growing the storage to cover e.
// Growth constructs every slot between the old end and e.
func (s *DenseStorage[T]) GetOrAllocate(e Entity) *T {
	if size := len(s.data); size <= e.Index() {
		s.grow(e.Index() - size + 1)
	}
	return &s.data[e]
}

// Offset returns e*ElementSize.
func (s *DenseStorage[T]) Offset(e Entity) (uintptr, error) {
	if e.Index() >= len(s.data) {
		return 0, outOfRange("dense offset", e, len(s.data))
	}
	return uintptr(e) * s.elementSize, nil
}

// Release is a no-op: the slot is a tombstone that keeps its value.
func (s *DenseStorage[T]) Release(Entity) {}

// Compact resets the slots of dead entities to their default value and trims
// dead slots off the end.
func (s *DenseStorage[T]) Compact(live func(Entity) bool) int {
	end := 0
	for i := range s.data {
		if live(Entity(i)) {
			end = i + 1
			continue
		}
		construct(&s.data[i])
	}

	freed := len(s.data) - end
	if freed > 0 {
		s.data = slices.Clone(s.data[:end])
	}
	return freed
}

// Footprint reports the bytes held by the backing array.
func (s *DenseStorage[T]) Footprint() uintptr {
	return uintptr(cap(s.data)) * s.elementSize
}

func (s *DenseStorage[T]) Value(e Entity) (any, error) {
	ptr, err := s.Get(e)
	if err != nil {
		return nil, err
	}
	return ptr, nil
}

func (s *DenseStorage[T]) pointer(e Entity) unsafe.Pointer {
	if e.Index() >= len(s.data) {
		return nil
	}
	return unsafe.Pointer(&s.data[e])
}

func (s *DenseStorage[T]) allocate(e Entity) unsafe.Pointer {
	return unsafe.Pointer(s.GetOrAllocate(e))
}
