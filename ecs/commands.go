package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the scene while systems hold storage pointers.
type Commands struct {
	spawns  []spawnCommand
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
	created    func(Entity)
}

type addComponentCommand struct {
	entity Entity
	apply  func(*Scene) error
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues creation of an entity with the given components. Component
// types must be registered with the scene's registry.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// CreateEntity queues creation of an entity with the given components and
// calls created with the new entity once it exists.
func (c *Commands) CreateEntity(created func(Entity), components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components, created: created})
}

// AddComponent queues a component addition operation. The component type
// must be registered with the scene's registry.
func (c *Commands) AddComponent(entity Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity: entity,
		apply: func(s *Scene) error {
			return s.AddComponentValue(entity, component)
		},
	})
}

// QueueAdd queues setting e's T to value, registering T if needed.
func QueueAdd[T any](c *Commands, e Entity, value T) {
	c.adds = append(c.adds, addComponentCommand{
		entity: e,
		apply: func(s *Scene) error {
			_, err := SetComponent(s, e, value)
			return err
		},
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity Entity, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// QueueRemove queues removal of e's T.
func QueueRemove[T any](c *Commands, e Entity) {
	c.RemoveComponent(e, reflect.TypeFor[T]())
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all commands to the provided scene, resetting the buffer state.
// Removals run before additions, then spawns, then deferred functions. A
// failing command does not stop the rest; all failures are returned joined.
func (c *Commands) Flush(scene *Scene) error {
	var errs []error

	for _, cmd := range c.removes {
		if err := scene.RemoveComponentType(cmd.entity, cmd.compType); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.adds {
		if err := cmd.apply(scene); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.spawns {
		if err := scene.checkComponents(cmd.components...); err != nil {
			errs = append(errs, fmt.Errorf("spawn: %w", err))
			continue
		}
		e, err := scene.CreateEntity()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		failed := false
		for _, component := range cmd.components {
			if err := scene.AddComponentValue(e, component); err != nil {
				errs = append(errs, fmt.Errorf("spawn entity %d: %w", e, err))
				failed = true
			}
		}
		if cmd.created != nil && !failed {
			cmd.created(e)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
