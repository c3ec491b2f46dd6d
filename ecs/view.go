package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type viewFieldKind uint8

const (
	viewFieldComponent viewFieldKind = iota
	viewFieldTransform
	viewFieldEntityId
)

var entityIdType = reflect.TypeFor[EntityId]()

// iface mirrors the runtime layout of an interface value; populate uses it to take the
// data pointer of a stored component without another allocation.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

type viewField struct {
	kind     viewFieldKind
	compType reflect.Type
	optional bool
	offset   uintptr
}

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded or named pointer fields for each component type.
// A *Transform field receives the entity's local transform and an EntityId field receives its id.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
type View[T any] struct {
	world  *World
	fields []viewField
}

// NewView creates a new view for the given struct type
// Embedded fields are always required
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
func NewView[T any](world *World) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			fields = append(fields, viewField{kind: viewFieldEntityId, offset: field.Offset})
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		// Parse struct tag to check if component is optional
		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		kind := viewFieldComponent
		if fieldType.Elem() == transformType {
			kind = viewFieldTransform
		}
		fields = append(fields, viewField{
			kind:     kind,
			compType: fieldType.Elem(),
			optional: isOptional,
			offset:   field.Offset,
		})
	}

	return &View[T]{
		world:  world,
		fields: fields,
	}
}

// columns resolves the storage for each component field; nil when the kind was never stored
func (v *View[T]) columns() []iComponentStorage {
	columns := make([]iComponentStorage, len(v.fields))
	for i, field := range v.fields {
		if field.kind == viewFieldComponent {
			columns[i] = v.world.columns[field.compType]
		}
	}
	return columns
}

func (v *View[T]) populate(structPtr unsafe.Pointer, index int, columns []iComponentStorage) bool {
	rec := v.world.records[index]
	for i, field := range v.fields {
		fieldPtr := unsafe.Add(structPtr, field.offset)

		switch field.kind {
		case viewFieldEntityId:
			*(*EntityId)(fieldPtr) = NewEntityId(uint32(index), rec.generation)
		case viewFieldTransform:
			*(*unsafe.Pointer)(fieldPtr) = unsafe.Pointer(&rec.transform)
		default:
			var component any
			if columns[i] != nil {
				component = columns[i].Get(index)
			}
			if component == nil {
				if !field.optional {
					return false
				}
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			// Extract the data pointer from the interface value
			*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
		}
	}
	return true
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is missing any required components
// Optional components are set to nil if not present
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if v.world.record(id) == nil {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), int(id.Index()), v.columns())
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter returns an iterator over all entities that have all the required components for this view.
// Entities are visited in slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		columns := v.columns()
		var result T
		resultPtr := unsafe.Pointer(&result)

		for index, rec := range v.world.records {
			if !rec.alive {
				continue
			}
			if !v.populate(resultPtr, index, columns) {
				continue
			}
			if !yield(NewEntityId(uint32(index), rec.generation), result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// First returns the first matching entity in slot order
func (v *View[T]) First() (EntityId, T, bool) {
	for id, value := range v.Iter() {
		return id, value, true
	}
	var zero T
	return 0, zero, false
}

// Spawn creates a new entity with components extracted from the view struct
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	for _, field := range v.fields {
		if field.kind == viewFieldEntityId {
			continue
		}

		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, field.offset))
		if componentPtr == nil {
			if !field.optional && field.kind == viewFieldComponent {
				panic("required component is nil in View.Spawn")
			}
			continue
		}

		components = append(components, reflect.NewAt(field.compType, componentPtr).Elem().Interface())
	}

	return v.world.Spawn(components...)
}
