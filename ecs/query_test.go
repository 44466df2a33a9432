package ecs_test

import (
	"testing"

	"github.com/plus3/turfwars/ecs"
)

func TestQuery(t *testing.T) {
	scene := newTestScene()

	spawn(scene, Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	spawn(scene, Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	spawn(scene, Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	spawn(scene, Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](scene)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()

		count := 0
		for range query.Iter() {
			count++
		}

		if count != 3 {
			t.Errorf("expected 3 entities, got %d", count)
		}
		if query.Len() != 3 {
			t.Errorf("expected Len 3, got %d", query.Len())
		}
	})

	t.Run("panics without execute", func(t *testing.T) {
		freshQuery := ecs.NewQuery[struct {
			*Position
			*Velocity
		}](scene)

		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic when calling Iter() before Execute()")
			}
		}()

		for range freshQuery.Iter() {
		}
	})

	t.Run("multiple iterations use cache", func(t *testing.T) {
		query.Execute()

		var first, second []ecs.Entity
		for id := range query.Iter() {
			first = append(first, id)
		}
		for id := range query.Iter() {
			second = append(second, id)
		}

		if len(first) != len(second) {
			t.Fatal("multiple iterations should return same results")
		}
		for i := range first {
			if first[i] != second[i] {
				t.Error("multiple iterations should be consistent")
			}
		}
	})

	t.Run("cache reflects new entities after re-execute", func(t *testing.T) {
		query.Execute()
		initialCount := query.Len()

		spawn(scene, Position{X: 10, Y: 10}, Velocity{DX: 2.0, DY: 2.0})

		if query.Len() != initialCount {
			t.Error("snapshot changed before re-execute")
		}

		query.Execute()

		if query.Len() != initialCount+1 {
			t.Errorf("expected %d entities after spawn, got %d", initialCount+1, query.Len())
		}
	})

	t.Run("removed components are skipped", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		if err := ecs.RemoveComponent[Velocity](scene, 0); err != nil {
			t.Fatal(err)
		}

		count := 0
		for id := range query.Iter() {
			if id == 0 {
				t.Error("entity 0 no longer holds Velocity")
			}
			count++
		}
		if count != before-1 {
			t.Errorf("expected %d entities, got %d", before-1, count)
		}
	})

	t.Run("iter values", func(t *testing.T) {
		query.Execute()

		count := 0
		for item := range query.Values() {
			if item.Position == nil || item.Velocity == nil {
				t.Error("expected non-nil components")
			}
			count++
		}

		if count != 3 {
			t.Errorf("expected 3 entities, got %d", count)
		}
	})
}

func TestQueryEntities(t *testing.T) {
	scene := newTestScene()
	spawn(scene, Position{})
	spawn(scene, Velocity{})
	spawn(scene, Position{})

	query := ecs.NewQuery[struct{ *Position }](scene)
	query.Execute()

	entities := query.Entities()
	if len(entities) != 2 || entities[0] != 0 || entities[1] != 2 {
		t.Errorf("unexpected snapshot %v", entities)
	}

	entities[0] = 99
	if query.Entities()[0] != 0 {
		t.Error("Entities should return a copy")
	}
}
