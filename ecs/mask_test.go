package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/turfwars/ecs"
	"github.com/stretchr/testify/assert"
)

func TestMaskSetHasClear(t *testing.T) {
	var m ecs.Mask
	assert.False(t, m.Has(0))
	assert.False(t, m.Has(500))

	m.Set(3)
	m.Set(70)
	assert.True(t, m.Has(3))
	assert.True(t, m.Has(70))
	assert.False(t, m.Has(4))
	assert.Len(t, m, 2)

	m.Clear(70)
	assert.False(t, m.Has(70))
	m.Clear(1000)
	assert.Len(t, m, 2)
	assert.Equal(t, 1, m.Count())
}

func TestMaskContains(t *testing.T) {
	m := ecs.NewMask(1, 2, 65)

	assert.True(t, m.Contains(ecs.NewMask()))
	assert.True(t, m.Contains(ecs.NewMask(1, 65)))
	assert.False(t, m.Contains(ecs.NewMask(1, 3)))
	assert.False(t, m.Contains(ecs.NewMask(200)))
	assert.False(t, ecs.NewMask(1).Contains(m))
}

func TestMaskIDs(t *testing.T) {
	m := ecs.NewMask(130, 0, 64, 5)
	assert.Equal(t, []ecs.ComponentID{0, 5, 64, 130}, slices.Collect(m.IDs()))
}

func TestMaskClone(t *testing.T) {
	m := ecs.NewMask(2)
	c := m.Clone()
	c.Set(3)
	c.Clear(2)

	assert.True(t, m.Has(2))
	assert.False(t, m.Has(3))
	assert.Nil(t, ecs.Mask(nil).Clone())
}
