package ecs

import (
	"reflect"
	"unsafe"
)

// singletonEntry holds the single instance of a singleton kind.
type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// AddSingleton stores value as the world's singleton of its type, replacing any previous one.
// Pointer values are stored by their pointee.
func (w *World) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		panic("cannot add a nil singleton")
	}
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	entry := w.singletons[v.Type()]
	if entry == nil {
		entry = &singletonEntry{value: reflect.New(v.Type())}
		entry.dataPtr = entry.value.UnsafePointer()
		w.singletons[v.Type()] = entry
	}
	entry.value.Elem().Set(v)
}

// RemoveSingleton drops the singleton of the given type
func (w *World) RemoveSingleton(t reflect.Type) {
	delete(w.singletons, t)
}

// ReadSingleton sets *target to the singleton of the pointed-to type.
// target must be a pointer to a pointer, e.g. var cfg *Config; w.ReadSingleton(&cfg).
func (w *World) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	entry := w.singletons[tv.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	tv.Elem().Set(entry.value)
	return true
}

func (w *World) getSingletonEntry(t reflect.Type) *singletonEntry {
	return w.singletons[t]
}

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data.
type Singleton[T any] struct {
	world        *World
	componentPtr unsafe.Pointer
}

// NewSingleton creates a new Singleton accessor for the given world.
// If initializer is provided and the singleton doesn't exist yet,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists after the call.
func NewSingleton[T any](world *World, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	entry := world.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		world.AddSingleton(&value)
		entry = world.getSingletonEntry(componentType)
	}

	return &Singleton[T]{
		world:        world,
		componentPtr: entry.dataPtr,
	}
}

// Init initializes the Singleton with a world reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(world *World) {
	s.world = world
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to the world.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// updateCache refreshes the cached pointer from the world
func (s *Singleton[T]) updateCache() {
	if s.world == nil {
		return
	}
	entry := s.world.getSingletonEntry(reflect.TypeFor[T]())
	if entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}

// Exists returns true if the singleton component has been added to the world
func (s *Singleton[T]) Exists() bool {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return s.componentPtr != nil
}
