package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component kind registration for a World.
// Each kind is a Go type paired with a stable string key; the key is what scene
// documents and debugging tools use to name the kind.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
	keys      map[reflect.Type]string
	types     map[string]reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
		keys:      make(map[reflect.Type]string),
		types:     make(map[string]reflect.Type),
	}
}

// RegisterComponent registers component type T under key.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry, key string) {
	t := reflect.TypeFor[T]()
	if key == "" {
		panic("component type " + t.String() + " registered without a key")
	}
	if existing, ok := r.types[key]; ok && existing != t {
		panic("component key \"" + key + "\" already registered for " + existing.String())
	}
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
	r.keys[t] = key
	r.types[key] = t
}

// Key returns the stable key of a registered component type.
func (r *ComponentRegistry) Key(t reflect.Type) (string, bool) {
	key, ok := r.keys[t]
	return key, ok
}

// Lookup returns the component type registered under key.
func (r *ComponentRegistry) Lookup(key string) (reflect.Type, bool) {
	t, ok := r.types[key]
	return t, ok
}

// New allocates a zero value of the component registered under key and returns a pointer to it.
func (r *ComponentRegistry) New(key string) (any, bool) {
	t, ok := r.types[key]
	if !ok {
		return nil, false
	}
	return reflect.New(t).Interface(), true
}

// Keys returns every registered key in no particular order.
func (r *ComponentRegistry) Keys() []string {
	keys := make([]string, 0, len(r.types))
	for key := range r.types {
		keys = append(keys, key)
	}
	return keys
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of type T in fixed blocks indexed by entity
// slot. Blocks are allocated individually so component pointers survive growth.
type genericComponentStorage[T any] struct {
	blocks []*[genericBlockSize]T
	filled []*[genericBlockSize]bool
	count  int
}

// Set stores item at the given slot, replacing any previous value.
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	for blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		cs.filled = append(cs.filled, new([genericBlockSize]bool))
	}

	if !cs.filled[blockIdx][slotIdx] {
		cs.count++
	}
	cs.blocks[blockIdx][slotIdx] = concreteItem
	cs.filled[blockIdx][slotIdx] = true
	return true
}

// Get returns a pointer to the component at the given slot.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	cs.filled[blockIdx][slotIdx] = false
	var zero T
	cs.blocks[blockIdx][slotIdx] = zero
	cs.count--
}

// Has checks if a component exists at the given slot.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}

	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.blocks) {
		return false
	}

	return cs.filled[blockIdx][index%genericBlockSize]
}

// IndexOf returns the slot holding the component ptr points at, or -1.
func (cs *genericComponentStorage[T]) IndexOf(ptr any) int {
	target, ok := ptr.(*T)
	if !ok || target == nil {
		return -1
	}
	for blockIdx, block := range cs.blocks {
		for slotIdx := range block {
			if &block[slotIdx] == target && cs.filled[blockIdx][slotIdx] {
				return blockIdx*genericBlockSize + slotIdx
			}
		}
	}
	return -1
}

// Len returns the number of stored components.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Clear drops every stored component.
func (cs *genericComponentStorage[T]) Clear() {
	cs.blocks = nil
	cs.filled = nil
	cs.count = 0
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for blockIdx, filled := range cs.filled {
			for slotIdx, ok := range filled {
				if ok && !yield(blockIdx*genericBlockSize+slotIdx) {
					return
				}
			}
		}
	}
}
