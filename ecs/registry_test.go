package ecs_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/plus3/turfwars/ecs"
	"github.com/stretchr/testify/assert"
)

func TestRegisterComponentSequentialIDs(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	pos := ecs.RegisterComponent[Position](registry)
	vel := ecs.RegisterComponent[Velocity](registry)
	again := ecs.RegisterComponent[Position](registry)

	assert.Equal(t, ecs.ComponentID(0), pos)
	assert.Equal(t, ecs.ComponentID(1), vel)
	assert.Equal(t, pos, again)
	assert.Equal(t, 2, registry.Len())
}

func TestRegistryDescribesTypes(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	id := ecs.RegisterComponent[Health](registry)

	assert.Equal(t, reflect.TypeFor[Health](), registry.Type(id))
	assert.Equal(t, reflect.TypeFor[Health]().Size(), registry.Size(id))
	assert.Nil(t, registry.Type(42))
	assert.Equal(t, uintptr(0), registry.Size(42))
}

func TestLookupComponentDoesNotRegister(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	_, ok := ecs.LookupComponent[Position](registry)
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())

	want := ecs.RegisterComponent[Position](registry)
	got, ok := ecs.LookupComponent[Position](registry)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = registry.Lookup(reflect.TypeFor[Position]())
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestTypeIDIsStable(t *testing.T) {
	type firstUse struct{ A int }
	type secondUse struct{ B int }

	a := ecs.TypeID[firstUse]()
	b := ecs.TypeID[secondUse]()

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ecs.TypeID[firstUse]())
	assert.Equal(t, b, ecs.TypeID[secondUse]())

	id, ok := ecs.LookupComponent[firstUse](ecs.DefaultRegistry())
	assert.True(t, ok)
	assert.Equal(t, a, id)
}

func TestRegisterComponentRejectsReferenceKinds(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	assert.Panics(t, func() { ecs.RegisterComponent[*Position](registry) })
	assert.Panics(t, func() { ecs.RegisterComponent[map[string]int](registry) })
	assert.Panics(t, func() { ecs.RegisterComponent[func()](registry) })
	assert.Panics(t, func() { ecs.RegisterComponent[any](registry) })

	assert.NotPanics(t, func() { ecs.RegisterComponent[Inventory](registry) })
	assert.NotPanics(t, func() { ecs.RegisterComponent[Link](registry) })
	assert.NotPanics(t, func() { ecs.RegisterComponent[Tag](registry) })
}

func TestRegisterComponentConcurrent(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	const workers = 16
	ids := make([]ecs.ComponentID, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ecs.RegisterComponent[Velocity](registry)
			ids[i] = ecs.RegisterComponent[Position](registry)
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 2, registry.Len())
}
