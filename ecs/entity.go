package ecs

import "math"

// Entity is an ordinal handle into a Scene's entity table.
// Entities are created in ascending order and are never destroyed or reused.
type Entity uint32

// MaxEntities is the number of distinct handles an Entity can represent.
// Scenes refuse to create entities past their limit instead of wrapping.
const MaxEntities = math.MaxUint32 + 1

// Index returns the entity ordinal as an int, for slice addressing.
func (e Entity) Index() int {
	return int(e)
}
