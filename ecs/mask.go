package ecs

import (
	"iter"
	"math/bits"
)

const maskWordBits = 64

// Mask records which component types an entity holds, one bit per
// ComponentID. Each entity's mask grows independently and only as far as
// the highest ID ever set on it; bits past the end read as unset.
type Mask []uint64

// NewMask builds a mask with the given IDs set.
func NewMask(ids ...ComponentID) Mask {
	var m Mask
	for _, id := range ids {
		m.Set(id)
	}
	return m
}

// Has reports whether the bit for id is set.
func (m Mask) Has(id ComponentID) bool {
	word := int(id / maskWordBits)
	if word >= len(m) {
		return false
	}
	return m[word]&(1<<(id%maskWordBits)) != 0
}

// Set sets the bit for id, growing the mask if needed.
func (m *Mask) Set(id ComponentID) {
	word := int(id / maskWordBits)
	if word >= len(*m) {
		grown := make(Mask, word+1)
		copy(grown, *m)
		*m = grown
	}
	(*m)[word] |= 1 << (id % maskWordBits)
}

// Clear clears the bit for id. It never grows the mask.
func (m Mask) Clear(id ComponentID) {
	word := int(id / maskWordBits)
	if word < len(m) {
		m[word] &^= 1 << (id % maskWordBits)
	}
}

// Contains reports whether every bit set in other is also set in m.
// It stops at the first missing bit.
func (m Mask) Contains(other Mask) bool {
	for i, want := range other {
		if want == 0 {
			continue
		}
		if i >= len(m) || m[i]&want != want {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

// IDs yields the set IDs in ascending order.
func (m Mask) IDs() iter.Seq[ComponentID] {
	return func(yield func(ComponentID) bool) {
		for i, w := range m {
			for w != 0 {
				bit := bits.TrailingZeros64(w)
				if !yield(ComponentID(i*maskWordBits + bit)) {
					return
				}
				w &^= 1 << bit
			}
		}
	}
}

// Clone returns a copy of m.
func (m Mask) Clone() Mask {
	if m == nil {
		return nil
	}
	out := make(Mask, len(m))
	copy(out, m)
	return out
}
