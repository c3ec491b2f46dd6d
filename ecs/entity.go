package ecs

import "strconv"

// EntityId encodes both the generation (upper 32 bits) and the slot index (lower 32 bits).
// The zero value never refers to a live entity.
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) String() string {
	return strconv.FormatUint(uint64(e.Index()), 10) + "v" + strconv.FormatUint(uint64(e.Generation()), 10)
}

// Name is the human readable name of an entity. Passing a Name to Spawn sets it.
type Name string

// entityRecord is the per-slot bookkeeping for an entity. Records are heap allocated
// so pointers to the embedded transform stay valid while the slot table grows.
type entityRecord struct {
	generation uint32
	alive      bool
	name       string
	parent     EntityId
	transform  Transform
}
