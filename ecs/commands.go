package ecs

import "reflect"

// Commands queues structural changes made while systems iterate. Deletes mark the
// entity at once, so it stays visible to later systems of the frame; everything else
// waits for Flush.
type Commands struct {
	world  *World
	ops    []func(*World)
	defers []func()
}

func newCommands(world *World) *Commands {
	return &Commands{world: world}
}

// NewCommands creates a command buffer bound to the world.
func NewCommands(world *World) *Commands {
	return newCommands(world)
}

// Defer runs fn after the next Flush has applied the queued changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues a new entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.ops = append(c.ops, func(w *World) { w.Spawn(components...) })
}

// Delete marks the entity for removal at the next Flush.
func (c *Commands) Delete(entity EntityId) {
	c.world.MarkForRemoval(entity)
}

// AddComponent queues attaching a component, replacing one of the same kind.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.ops = append(c.ops, func(w *World) { w.AddComponent(entity, component) })
}

// RemoveComponent queues detaching a component kind.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.ops = append(c.ops, func(w *World) { w.RemoveComponent(entity, compType) })
}

// Flush commits pending removals, applies the queued changes in the order they were
// made and then runs the deferred functions. Changes aimed at removed entities are
// dropped. Commands queued by a deferred function wait for the following Flush.
func (c *Commands) Flush() {
	c.world.CommitRemovals()

	ops, defers := c.ops, c.defers
	c.ops, c.defers = nil, nil

	for _, op := range ops {
		op(c.world)
	}
	for _, fn := range defers {
		fn()
	}
}
