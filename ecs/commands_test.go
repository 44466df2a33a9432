package ecs_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/plus3/turfwars/ecs"
)

type testSpawnSystem struct {
	executed bool
}

func (s *testSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	s.executed = true
	frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	frame.Commands.Spawn(Position{X: 3, Y: 4})
}

type testAddSystem struct {
	entity ecs.Entity
}

func (s *testAddSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.AddComponent(s.entity, Velocity{DX: 5, DY: 10})
}

type testRemoveSystem struct {
	entity ecs.Entity
}

func (s *testRemoveSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.RemoveComponent(s.entity, reflect.TypeOf(Velocity{}))
}

type testMixedSystem struct {
	entity ecs.Entity
}

func (s *testMixedSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{X: 10, Y: 20})
	frame.Commands.AddComponent(s.entity, Velocity{DX: 1, DY: 1})
	ecs.QueueRemove[Position](frame.Commands, s.entity)
	frame.Commands.Spawn(Health{Current: 100, Max: 100})
}

// Systems for cross-system entity mutation tests
type systemRemoveVelocity struct {
	entity ecs.Entity
}

func (s *systemRemoveVelocity) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.RemoveComponent(s.entity, reflect.TypeOf(Velocity{}))
}

type systemAddHealth struct {
	entity ecs.Entity
}

func (s *systemAddHealth) Execute(frame *ecs.UpdateFrame) {
	ecs.QueueAdd(frame.Commands, s.entity, Health{Current: 50, Max: 100})
}

type systemAddVelocity struct {
	entity ecs.Entity
}

func (s *systemAddVelocity) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.AddComponent(s.entity, Velocity{DX: 1, DY: 2})
}

type systemRemoveHealth struct {
	entity ecs.Entity
}

func (s *systemRemoveHealth) Execute(frame *ecs.UpdateFrame) {
	ecs.QueueRemove[Health](frame.Commands, s.entity)
}

func TestCommands(t *testing.T) {
	t.Run("spawn entities", func(t *testing.T) {
		scene := newTestScene()
		scheduler := ecs.NewScheduler(scene)

		system := &testSpawnSystem{}
		scheduler.Register(system)

		view := ecs.NewView[struct{ *Position }](scene)
		if view.Count() != 0 {
			t.Error("entities spawned before frame execution")
		}

		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		if count := view.Count(); count != 2 {
			t.Errorf("expected 2 entities after frame, got %d", count)
		}

		if !system.executed {
			t.Error("system was not executed")
		}
	})

	t.Run("add components", func(t *testing.T) {
		scene := newTestScene()
		entity := spawn(scene, Position{X: 1, Y: 2})

		scheduler := ecs.NewScheduler(scene)
		scheduler.Register(&testAddSystem{entity: entity})

		if ecs.HasComponent[Velocity](scene, entity) {
			t.Error("component added before frame execution")
		}

		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](scene)

		item := view.Get(entity)
		if item == nil || item.Velocity.DX != 5 || item.Velocity.DY != 10 {
			t.Error("component not added after frame or values incorrect")
		}
	})

	t.Run("remove components", func(t *testing.T) {
		scene := newTestScene()
		entity := spawn(scene, Position{X: 1, Y: 2}, Velocity{DX: 5, DY: 10})

		scheduler := ecs.NewScheduler(scene)
		scheduler.Register(&testRemoveSystem{entity: entity})

		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		if ecs.HasComponent[Velocity](scene, entity) {
			t.Error("velocity component not removed")
		}
		if !ecs.HasComponent[Position](scene, entity) {
			t.Error("entity with only position not found")
		}
	})

	t.Run("mixed operations", func(t *testing.T) {
		scene := newTestScene()
		e1 := spawn(scene, Position{X: 1, Y: 2})

		scheduler := ecs.NewScheduler(scene)
		scheduler.Register(&testMixedSystem{entity: e1})
		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		view := ecs.NewView[struct{ *Position }](scene)
		if count := view.Count(); count != 1 {
			t.Errorf("expected 1 position entity, got %d", count)
		}
		if !ecs.HasComponent[Velocity](scene, e1) {
			t.Error("expected velocity on the original entity")
		}
		if scene.EntityCount() != 3 {
			t.Errorf("expected 3 entities, got %d", scene.EntityCount())
		}
	})

	t.Run("cross-system remove then add same entity", func(t *testing.T) {
		scene := newTestScene()
		entity := spawn(scene, Position{X: 1, Y: 2}, Velocity{DX: 5, DY: 10})

		scheduler := ecs.NewScheduler(scene)
		scheduler.Register(&systemRemoveVelocity{entity: entity})
		scheduler.Register(&systemAddHealth{entity: entity})
		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		health, err := ecs.GetComponent[Health](scene, entity)
		if err != nil || health.Current != 50 || health.Max != 100 {
			t.Error("entity should have Position + Health after cross-system mutations")
		}
		if ecs.HasComponent[Velocity](scene, entity) {
			t.Error("entity should not have Velocity after RemoveComponent")
		}
	})

	t.Run("cross-system multiple adds same entity", func(t *testing.T) {
		scene := newTestScene()
		entity := spawn(scene, Position{X: 3, Y: 4})

		scheduler := ecs.NewScheduler(scene)
		scheduler.Register(&systemAddVelocity{entity: entity})
		scheduler.Register(&systemAddHealth{entity: entity})
		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		viewAll := ecs.NewView[struct {
			*Position
			*Velocity
			*Health
		}](scene)
		item := viewAll.Get(entity)
		if item == nil || item.Velocity.DY != 2 || item.Health.Current != 50 {
			t.Error("entity should have all three components after cross-system adds")
		}
	})

	t.Run("cross-system chained removes same entity", func(t *testing.T) {
		scene := newTestScene()
		entity := spawn(scene, Position{X: 5, Y: 6}, Velocity{DX: 1, DY: 1}, Health{Current: 100, Max: 100})

		scheduler := ecs.NewScheduler(scene)
		scheduler.Register(&systemRemoveVelocity{entity: entity})
		scheduler.Register(&systemRemoveHealth{entity: entity})
		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		mask, _ := scene.Mask(entity)
		if mask.Count() != 1 || !ecs.HasComponent[Position](scene, entity) {
			t.Errorf("entity should have only Position, mask %v", mask)
		}
	})

	t.Run("remove runs before add", func(t *testing.T) {
		scene := newTestScene()
		entity := spawn(scene, Velocity{DX: 1})

		cmds := ecs.NewCommands()
		ecs.QueueAdd(cmds, entity, Velocity{DX: 2})
		ecs.QueueRemove[Velocity](cmds, entity)
		if err := cmds.Flush(scene); err != nil {
			t.Fatal(err)
		}

		vel, err := ecs.GetComponent[Velocity](scene, entity)
		if err != nil || vel.DX != 2 {
			t.Errorf("expected re-added velocity, got %v, %v", vel, err)
		}
	})

	t.Run("create entity callback", func(t *testing.T) {
		scene := newTestScene()
		cmds := ecs.NewCommands()

		var created []ecs.Entity
		cmds.CreateEntity(func(e ecs.Entity) { created = append(created, e) }, Position{X: 1})
		cmds.CreateEntity(nil)
		cmds.Defer(func() {
			if len(created) != 1 {
				t.Error("defers should run after spawns")
			}
		})
		if cmds.Len() != 3 {
			t.Errorf("expected 3 queued commands, got %d", cmds.Len())
		}

		if err := cmds.Flush(scene); err != nil {
			t.Fatal(err)
		}
		if len(created) != 1 || !ecs.HasComponent[Position](scene, created[0]) {
			t.Errorf("callback did not see spawned entity: %v", created)
		}
		if cmds.Len() != 0 {
			t.Error("flush should reset the buffer")
		}
	})

	t.Run("flush joins errors", func(t *testing.T) {
		scene := newTestScene(ecs.WithEntityLimit(1))
		type unregistered struct{}

		cmds := ecs.NewCommands()
		cmds.AddComponent(7, Position{})
		cmds.Spawn(unregistered{})
		cmds.Spawn(Position{})

		err := cmds.Flush(scene)
		if !errors.Is(err, ecs.ErrOutOfRange) {
			t.Errorf("expected out of range error, got %v", err)
		}
		if !errors.Is(err, ecs.ErrHandleSpaceExhausted) {
			t.Errorf("expected handle space error, got %v", err)
		}
		if scene.EntityCount() != 1 {
			t.Errorf("expected 1 entity, got %d", scene.EntityCount())
		}
	})

	t.Run("scheduler reports flush errors", func(t *testing.T) {
		scene := newTestScene()
		scheduler := ecs.NewScheduler(scene)
		scheduler.Register(&testAddSystem{entity: 42})

		err := scheduler.Once(1.0)
		if !errors.Is(err, ecs.ErrOutOfRange) {
			t.Errorf("expected out of range error, got %v", err)
		}
	})
}

func TestCommandsSpawnUnregisteredType(t *testing.T) {
	type unregistered struct{ N int }
	scene := newTestScene()
	commands := ecs.NewCommands()

	called := false
	commands.CreateEntity(func(ecs.Entity) { called = true }, Position{X: 1}, unregistered{N: 2})
	var valid ecs.Entity
	commands.CreateEntity(func(e ecs.Entity) { valid = e }, Position{X: 3})

	err := commands.Flush(scene)
	if err == nil {
		t.Fatal("expected an error for the unregistered component")
	}
	if called {
		t.Error("created callback ran for a failed spawn")
	}
	if count := scene.EntityCount(); count != 1 {
		t.Errorf("expected only the valid spawn to create an entity, got %d", count)
	}
	if pos, err := ecs.GetComponent[Position](scene, valid); err != nil || pos.X != 3 {
		t.Errorf("expected valid spawn at X=3, got %v, %v", pos, err)
	}
}
