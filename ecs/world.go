package ecs

import (
	"iter"
	"reflect"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
)

var (
	transformType = reflect.TypeFor[Transform]()
	nameType      = reflect.TypeFor[Name]()
)

// World owns every entity, its local transform and its components.
// Entities are kept in slot order, which is also the iteration order.
type World struct {
	registry *ComponentRegistry
	records  []*entityRecord
	free     []uint32
	alive    int
	columns  map[reflect.Type]iComponentStorage

	// pending holds entities marked for removal, in marking order
	pending   []EntityId
	pendingAt *intmap.Map[EntityId, int]

	singletons map[reflect.Type]*singletonEntry
	version    uint64
	epoch      uint64
}

// NewWorld creates an empty world using the given component registry
func NewWorld(registry *ComponentRegistry) *World {
	return &World{
		registry:   registry,
		columns:    make(map[reflect.Type]iComponentStorage),
		pendingAt:  intmap.New[EntityId, int](32),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry this world was created with
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Epoch counts calls to Clear. Indexes built over the world's entities can compare
// it to notice that every entity they refer to is gone.
func (w *World) Epoch() uint64 {
	return w.epoch
}

// Version increases on every structural change (spawn, delete, component add or remove).
func (w *World) Version() uint64 {
	return w.version
}

func (w *World) record(id EntityId) *entityRecord {
	index := id.Index()
	if int(index) >= len(w.records) {
		return nil
	}
	rec := w.records[index]
	if !rec.alive || rec.generation != id.Generation() {
		return nil
	}
	return rec
}

func (w *World) idAt(index int) EntityId {
	return NewEntityId(uint32(index), w.records[index].generation)
}

// Spawn creates a new entity. A Transform argument sets its local transform, a Name
// argument sets its name and every other argument is attached as a component.
func (w *World) Spawn(components ...any) EntityId {
	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		index = uint32(len(w.records))
		w.records = append(w.records, &entityRecord{})
	}

	rec := w.records[index]
	rec.generation++
	rec.alive = true
	rec.name = ""
	rec.parent = 0
	rec.transform = NewTransform()
	w.alive++
	w.version++

	id := NewEntityId(index, rec.generation)
	for _, comp := range components {
		w.AddComponent(id, comp)
	}
	return id
}

// Delete removes the entity immediately. Children are detached and become roots.
func (w *World) Delete(id EntityId) {
	rec := w.record(id)
	if rec == nil {
		return
	}

	index := int(id.Index())
	for _, column := range w.columns {
		column.Delete(index)
	}
	for i, other := range w.records {
		if other.alive && other.parent == id {
			w.records[i].parent = 0
		}
	}

	rec.alive = false
	rec.name = ""
	rec.parent = 0
	w.free = append(w.free, id.Index())
	w.alive--
	w.version++

	if _, ok := w.pendingAt.Get(id); ok {
		w.unmark(id)
	}
}

// MarkForRemoval queues the entity for deletion on the next CommitRemovals.
// Marked entities remain fully visible until then.
func (w *World) MarkForRemoval(id EntityId) {
	if w.record(id) == nil {
		return
	}
	if _, ok := w.pendingAt.Get(id); ok {
		return
	}
	w.pendingAt.Put(id, len(w.pending))
	w.pending = append(w.pending, id)
}

// IsMarked reports whether the entity is waiting for CommitRemovals.
func (w *World) IsMarked(id EntityId) bool {
	_, ok := w.pendingAt.Get(id)
	return ok
}

func (w *World) unmark(id EntityId) {
	pos, ok := w.pendingAt.Get(id)
	if !ok {
		return
	}
	w.pending = slices.Delete(w.pending, pos, pos+1)
	w.pendingAt.Del(id)
	for i := pos; i < len(w.pending); i++ {
		w.pendingAt.Put(w.pending[i], i)
	}
}

// CommitRemovals deletes every marked entity in marking order and returns how many were removed.
func (w *World) CommitRemovals() int {
	if len(w.pending) == 0 {
		return 0
	}
	pending := w.pending
	w.pending = nil
	w.pendingAt.Clear()

	removed := 0
	for _, id := range pending {
		if w.record(id) != nil {
			w.Delete(id)
			removed++
		}
	}
	return removed
}

// PendingRemovals returns the number of entities waiting for CommitRemovals.
func (w *World) PendingRemovals() int {
	return len(w.pending)
}

// Clear destroys all entities. Previously issued ids stop resolving.
func (w *World) Clear() {
	for _, column := range w.columns {
		column.Clear()
	}
	w.free = w.free[:0]
	for i := len(w.records) - 1; i >= 0; i-- {
		rec := w.records[i]
		rec.alive = false
		rec.name = ""
		rec.parent = 0
		w.free = append(w.free, uint32(i))
	}
	w.alive = 0
	w.pending = nil
	w.pendingAt.Clear()
	w.version++
	w.epoch++
}

// IsAlive reports whether id refers to a live entity
func (w *World) IsAlive(id EntityId) bool {
	return w.record(id) != nil
}

// Len returns the number of live entities
func (w *World) Len() int {
	return w.alive
}

// Entities iterates live entities in slot order
func (w *World) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for i, rec := range w.records {
			if rec.alive && !yield(w.idAt(i)) {
				return
			}
		}
	}
}

// Name returns the entity's name, or "" when it has none or is not alive
func (w *World) Name(id EntityId) string {
	if rec := w.record(id); rec != nil {
		return rec.name
	}
	return ""
}

// SetName renames an entity
func (w *World) SetName(id EntityId, name string) {
	if rec := w.record(id); rec != nil {
		rec.name = name
	}
}

// FindByName returns the first entity in slot order with the given name.
// This scans every entity on each call.
func (w *World) FindByName(name string) (EntityId, bool) {
	for i, rec := range w.records {
		if rec.alive && rec.name == name {
			return w.idAt(i), true
		}
	}
	return 0, false
}

// Transform returns a pointer to the entity's local transform, or nil if it is not alive
func (w *World) Transform(id EntityId) *Transform {
	if rec := w.record(id); rec != nil {
		return &rec.transform
	}
	return nil
}

// Parent returns the entity's parent, if any
func (w *World) Parent(id EntityId) (EntityId, bool) {
	rec := w.record(id)
	if rec == nil || rec.parent == 0 {
		return 0, false
	}
	return rec.parent, true
}

// SetParent attaches child under parent. A zero parent detaches the child.
// Creating a cycle is a programming error and is not checked.
func (w *World) SetParent(child, parent EntityId) {
	rec := w.record(child)
	if rec == nil {
		return
	}
	if parent != 0 && w.record(parent) == nil {
		return
	}
	rec.parent = parent
}

// Children iterates the direct children of an entity in slot order
func (w *World) Children(id EntityId) iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if w.record(id) == nil {
			return
		}
		for i, rec := range w.records {
			if rec.alive && rec.parent == id && !yield(w.idAt(i)) {
				return
			}
		}
	}
}

// LocalToWorld composes the transforms from the root of the entity's parent chain
// down to the entity itself.
func (w *World) LocalToWorld(id EntityId) mgl32.Mat4 {
	rec := w.record(id)
	if rec == nil {
		return mgl32.Ident4()
	}
	matrix := rec.transform.ToMat4()
	for parent := rec.parent; parent != 0; {
		parentRec := w.record(parent)
		if parentRec == nil {
			break
		}
		matrix = parentRec.transform.ToMat4().Mul4(matrix)
		parent = parentRec.parent
	}
	return matrix
}

// AddComponent attaches a component to the entity, replacing any component of the same kind.
func (w *World) AddComponent(id EntityId, component any) {
	rec := w.record(id)
	if rec == nil {
		return
	}

	compType := componentType(component)
	switch compType {
	case transformType:
		rec.transform = *asPointer[Transform](component)
		return
	case nameType:
		rec.name = string(*asPointer[Name](component))
		return
	}

	column := w.column(compType)
	if !column.Has(int(id.Index())) {
		w.version++
	}
	column.Set(int(id.Index()), component)
}

// RemoveComponent detaches the component of the given kind
func (w *World) RemoveComponent(id EntityId, compType reflect.Type) {
	if w.record(id) == nil {
		return
	}
	column, ok := w.columns[compType]
	if !ok || !column.Has(int(id.Index())) {
		return
	}
	column.Delete(int(id.Index()))
	w.version++
}

// GetComponent returns a pointer to the entity's component of the given kind, or nil
func (w *World) GetComponent(id EntityId, compType reflect.Type) any {
	if w.record(id) == nil {
		return nil
	}
	if compType == transformType {
		return w.Transform(id)
	}
	column, ok := w.columns[compType]
	if !ok {
		return nil
	}
	return column.Get(int(id.Index()))
}

// HasComponent checks if an entity has a component of the given kind
func (w *World) HasComponent(id EntityId, compType reflect.Type) bool {
	if w.record(id) == nil {
		return false
	}
	column, ok := w.columns[compType]
	return ok && column.Has(int(id.Index()))
}

// ComponentTypes lists the component kinds attached to an entity
func (w *World) ComponentTypes(id EntityId) []reflect.Type {
	if w.record(id) == nil {
		return nil
	}
	types := make([]reflect.Type, 0, 4)
	for t, column := range w.columns {
		if column.Has(int(id.Index())) {
			types = append(types, t)
		}
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		if a.String() < b.String() {
			return -1
		}
		if a.String() > b.String() {
			return 1
		}
		return 0
	})
	return types
}

// Owner returns the entity owning the component that ptr points at
func (w *World) Owner(ptr any) (EntityId, bool) {
	if ptr == nil {
		return 0, false
	}
	compType := reflect.TypeOf(ptr)
	if compType.Kind() != reflect.Ptr {
		return 0, false
	}
	column, ok := w.columns[compType.Elem()]
	if !ok {
		return 0, false
	}
	index := column.IndexOf(ptr)
	if index < 0 || !w.records[index].alive {
		return 0, false
	}
	return w.idAt(index), true
}

func (w *World) column(compType reflect.Type) iComponentStorage {
	column, ok := w.columns[compType]
	if ok {
		return column
	}
	factory := w.registry.getFactory(compType)
	if factory == nil {
		panic("component type " + compType.String() + " not registered")
	}
	column = factory()
	w.columns[compType] = column
	return column
}

// componentType returns the value type of a component, rejecting kinds that cannot be stored.
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("cannot store a nil component")
	}

	// If it's a pointer, get the underlying type
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
		compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

func asPointer[T any](component any) *T {
	if ptr, ok := component.(*T); ok {
		return ptr
	}
	value := component.(T)
	return &value
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil when absent
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// Get returns the entity's component of type T and whether it was present
func Get[T any](reader ComponentReader, entityId EntityId) (*T, bool) {
	comp := ReadComponent[T](reader, entityId)
	return comp, comp != nil
}
