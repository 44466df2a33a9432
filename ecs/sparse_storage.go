package ecs

import (
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// unallocated marks an index table entry with no slot.
const unallocated = -1

// SparseStorage stores components in an append-only slice and maps entity
// ordinals to slots through an index table.
//
// Only entities that request the component get a slot. The index table
// still costs one entry per entity ordinal ever referenced. Slots are never
// reused: Release abandons the mapping, so re-adding the component
// constructs a fresh slot while the old one stays behind as a tombstone
// until Compact.
type SparseStorage[T any] struct {
	elementSize uintptr
	indices     []int
	data        []T
}

// NewSparseStorage creates an empty sparse storage for T.
func NewSparseStorage[T any]() *SparseStorage[T] {
	var zero T
	return &SparseStorage[T]{
		elementSize: unsafe.Sizeof(zero),
		data:        make([]T, 0, initialCapacity),
	}
}

func (s *SparseStorage[T]) Kind() StorageKind    { return Sparse }
func (s *SparseStorage[T]) Type() reflect.Type   { return reflect.TypeFor[T]() }
func (s *SparseStorage[T]) ElementSize() uintptr { return s.elementSize }
func (s *SparseStorage[T]) Slots() int           { return len(s.data) }

// IndexLen returns the length of the entity index table.
func (s *SparseStorage[T]) IndexLen() int {
	return len(s.indices)
}

// Has reports whether e is mapped to a slot.
func (s *SparseStorage[T]) Has(e Entity) bool {
	return s.slot(e) != unallocated
}

func (s *SparseStorage[T]) slot(e Entity) int {
	if e.Index() >= len(s.indices) {
		return unallocated
	}
	return s.indices[e]
}

// Get returns the slot mapped to e. The pointer is invalidated by any later
// allocation.
func (s *SparseStorage[T]) Get(e Entity) (*T, error) {
	slot := s.slot(e)
	if slot == unallocated {
		return nil, outOfRange("sparse get", e, len(s.indices))
	}
	return &s.data[slot], nil
}

// Allocate appends one default-constructed slot and returns it with its
// slot ordinal. The slot is not mapped to any entity.
func (s *SparseStorage[T]) Allocate() (*T, int) {
	var zero T
	s.data = append(s.data, zero)
	slot := len(s.data) - 1
	construct(&s.data[slot])
	return &s.data[slot], slot
}

// AllocateFor appends a fresh slot and maps e to it, replacing any previous
// mapping.
func (s *SparseStorage[T]) AllocateFor(e Entity) *T {
	s.cover(e)
	ptr, slot := s.Allocate()
	s.indices[e] = slot
	return ptr
}

// GetOrAllocate returns e's slot, allocating one if e has none. Entities
// that never call this never get a slot.
func (s *SparseStorage[T]) GetOrAllocate(e Entity) *T {
	s.cover(e)
	if slot := s.indices[e]; slot != unallocated {
		return &s.data[slot]
	}
	return s.AllocateFor(e)
}

// cover grows the index table so e has an entry.
func (s *SparseStorage[T]) cover(e Entity) {
	if n := e.Index() + 1 - len(s.indices); n > 0 {
		start := len(s.indices)
		s.indices = slices.Grow(s.indices, n)[:start+n]
		for i := start; i < len(s.indices); i++ {
			s.indices[i] = unallocated
		}
	}
}

// Offset returns the byte offset of e's slot in the data buffer.
func (s *SparseStorage[T]) Offset(e Entity) (uintptr, error) {
	slot := s.slot(e)
	if slot == unallocated {
		return 0, outOfRange("sparse offset", e, len(s.indices))
	}
	return uintptr(slot) * s.elementSize, nil
}

// Release forgets e's mapping. The slot itself stays in the data buffer.
func (s *SparseStorage[T]) Release(e Entity) {
	if e.Index() < len(s.indices) {
		s.indices[e] = unallocated
	}
}

// Compact rebuilds the data buffer with only the slots mapped to live
// entities, in entity order, and trims the index table.
func (s *SparseStorage[T]) Compact(live func(Entity) bool) int {
	before := len(s.data)
	remap := intmap.New[int, int](len(s.indices))
	data := make([]T, 0, len(s.indices))
	last := -1

	for i, slot := range s.indices {
		if slot == unallocated {
			continue
		}
		if !live(Entity(i)) {
			s.indices[i] = unallocated
			continue
		}

		moved, ok := remap.Get(slot)
		if !ok {
			data = append(data, s.data[slot])
			moved = len(data) - 1
			remap.Put(slot, moved)
		}
		s.indices[i] = moved
		last = i
	}

	s.data = slices.Clip(data)
	s.indices = slices.Clone(s.indices[:last+1])
	return before - len(s.data)
}

// Footprint reports the bytes held by the data buffer and index table.
func (s *SparseStorage[T]) Footprint() uintptr {
	var index int
	return uintptr(cap(s.data))*s.elementSize + uintptr(cap(s.indices))*unsafe.Sizeof(index)
}

func (s *SparseStorage[T]) Value(e Entity) (any, error) {
	ptr, err := s.Get(e)
	if err != nil {
		return nil, err
	}
	return ptr, nil
}

func (s *SparseStorage[T]) pointer(e Entity) unsafe.Pointer {
	slot := s.slot(e)
	if slot == unallocated {
		return nil
	}
	return unsafe.Pointer(&s.data[slot])
}

func (s *SparseStorage[T]) allocate(e Entity) unsafe.Pointer {
	return unsafe.Pointer(s.GetOrAllocate(e))
}
