package game

import (
	"iter"

	"github.com/kamstrup/intmap"

	"github.com/plus3/lilypad/ecs"
)

// Tag is a semantic role an entity plays in the level.
type Tag uint8

const (
	TagFrog Tag = iota
	TagLog
	TagCar
	TagWater
	TagGrass
	TagStar
	TagSkull
	TagGoal

	tagCount
)

var tagNames = [tagCount]string{
	TagFrog:  "frog",
	TagLog:   "log",
	TagCar:   "car",
	TagWater: "water",
	TagGrass: "grass",
	TagStar:  "star",
	TagSkull: "skull",
	TagGoal:  "woodenBox",
}

func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return "tag(?)"
}

// Tags lists every tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, tagCount)
	for i := range tags {
		tags[i] = Tag(i)
	}
	return tags
}

// TagForName maps an entity name to its tag.
func TagForName(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}
	return 0, false
}

// Registry indexes the level's special entities by tag. It is rebuilt when a scene is
// loaded or cleared and is read-only while systems run. Lookups skip entities that died
// since the last rebuild, such as collected stars.
type Registry struct {
	world   *ecs.World
	version uint64
	epoch   uint64
	groups  [tagCount][]ecs.EntityId
	tags    *intmap.Map[ecs.EntityId, Tag]
}

func NewRegistry() *Registry {
	return &Registry{tags: intmap.New[ecs.EntityId, Tag](64)}
}

// Rebuild indexes every entity of the world in slot order. Entities are tagged by name;
// unnamed lane entities fall back to their movement category.
func (r *Registry) Rebuild(world *ecs.World) {
	r.Clear()
	r.world = world
	r.version = world.Version()
	r.epoch = world.Epoch()

	for id := range world.Entities() {
		tag, ok := TagForName(world.Name(id))
		if !ok {
			tag, ok = tagForMovement(world, id)
		}
		if !ok {
			continue
		}
		r.groups[tag] = append(r.groups[tag], id)
		r.tags.Put(id, tag)
	}
}

func tagForMovement(world *ecs.World, id ecs.EntityId) (Tag, bool) {
	movement, ok := ecs.Get[Movement](world, id)
	if !ok {
		return 0, false
	}
	switch movement.Category {
	case CategoryLog, CategoryReverseLog:
		return TagLog, true
	case CategoryCar:
		return TagCar, true
	}
	return 0, false
}

// Clear forgets every indexed entity.
func (r *Registry) Clear() {
	for i := range r.groups {
		r.groups[i] = r.groups[i][:0]
	}
	r.tags.Clear()
	r.world = nil
	r.version = 0
	r.epoch = 0
}

// Indexed reports whether the registry was built from this world.
func (r *Registry) Indexed(world *ecs.World) bool {
	return r.world == world && world != nil
}

// BuiltAt returns the world version the registry was built at.
func (r *Registry) BuiltAt() uint64 {
	return r.version
}

// Epoch returns the world's clear count at the time of the rebuild.
func (r *Registry) Epoch() uint64 {
	return r.epoch
}

// First returns the first live entity with the tag.
func (r *Registry) First(tag Tag) (ecs.EntityId, bool) {
	for id := range r.Group(tag) {
		return id, true
	}
	return 0, false
}

// Frog returns the player entity.
func (r *Registry) Frog() (ecs.EntityId, bool) {
	return r.First(TagFrog)
}

// Goal returns the wooden box the frog has to reach.
func (r *Registry) Goal() (ecs.EntityId, bool) {
	return r.First(TagGoal)
}

// Skull returns the hazard skull used by the game-over animation.
func (r *Registry) Skull() (ecs.EntityId, bool) {
	return r.First(TagSkull)
}

// Group iterates the live entities with the tag in slot order.
func (r *Registry) Group(tag Tag) iter.Seq[ecs.EntityId] {
	return func(yield func(ecs.EntityId) bool) {
		if tag >= tagCount || r.world == nil {
			return
		}
		for _, id := range r.groups[tag] {
			if !r.world.IsAlive(id) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Count returns how many entities were indexed under the tag, alive or not.
func (r *Registry) Count(tag Tag) int {
	if tag >= tagCount {
		return 0
	}
	return len(r.groups[tag])
}

// TagOf returns the tag an entity was indexed under.
func (r *Registry) TagOf(id ecs.EntityId) (Tag, bool) {
	return r.tags.Get(id)
}
