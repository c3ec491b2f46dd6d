package ecs

import (
	"iter"
)

// Query wraps a View with a per-frame snapshot of the matching entities.
// The snapshot is rebuilt only when the world changed structurally since the last Execute,
// so iterating a Query never observes entities spawned or deleted mid-frame.
type Query[T any] struct {
	view  *View[T]
	world *World

	lastVersion      uint64
	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query over the given world.
func NewQuery[T any](world *World) *Query[T] {
	q := &Query[T]{}
	q.Init(world)
	return q
}

// Init initializes or re-initializes the Query with a world.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(world *World) {
	q.view = NewView[T](world)
	q.world = world
	q.cacheValid = false
}

// Execute builds the entity and component snapshot for this frame.
// Called automatically by the Scheduler before the owning system runs.
func (q *Query[T]) Execute() {
	if q.cacheValid && q.lastVersion == q.world.Version() {
		return
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for id, item := range q.view.Iter() {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}

	q.lastVersion = q.world.Version()
	q.cacheValid = true
}

// Len returns the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
	q.ensure()
	return len(q.cachedEntities)
}

func (q *Query[T]) ensure() {
	if !q.cacheValid {
		q.Execute()
	}
}

// Iter returns an iterator over entity IDs and component data.
// Builds the snapshot on first use if Execute has not run yet.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.ensure()

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	q.ensure()

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
