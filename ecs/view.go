package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View matches entities against a struct shape. Every pointer field of T names
// a component type; the field is filled with a pointer into storage. A field
// of type EntityId receives the entity's id. Named pointer fields tagged
// `ecs:"optional"` may be nil; all other component fields are required.
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*Transform
//		*Bunny
//		Label *Label `ecs:"optional"`
//	}](storage)
type View[T any] struct {
	storage   *Storage
	fields    []viewField
	idOffsets []uintptr
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView builds a view for T, panicking if T is not a valid view shape.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: view type must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffsets = append(v.idOffsets, field.Offset)
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: view field " + field.Name + " must be a pointer or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("ecs: invalid ecs tag on view field " + field.Name)
			}
			optional = true
		}

		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
	return v
}

// Get returns the view of entity id, or nil when the entity is gone or lacks
// a required component.
func (v *View[T]) Get(id EntityId) *T {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id.Index()) || !v.matches(archetype) {
		return nil
	}

	var result T
	if !v.fill(unsafe.Pointer(&result), archetype, v.columnIndices(archetype), int(id.Index()), id) {
		return nil
	}
	return &result
}

// Iter yields every matching entity. Archetype order is unspecified; within an
// archetype entities come in slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values yields the view structs without their ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for _, archetype := range v.storage.archetypes {
		if v.matches(archetype) {
			n += archetype.Len()
		}
	}
	return n
}

// Single returns the only entity matching v. Anything other than exactly one
// match is a broken world invariant and panics.
func Single[T any](v *View[T]) (EntityId, T) {
	var (
		found  EntityId
		result T
		count  int
	)
	for id, item := range v.Iter() {
		found, result = id, item
		count++
	}
	if count != 1 {
		panic("ecs: expected exactly one " + reflect.TypeFor[T]().String())
	}
	return found, result
}

func (v *View[T]) matches(archetype *Archetype) bool {
	if len(archetype.columns) == 0 {
		return false
	}
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.fields))
	for i, f := range v.fields {
		indices[i] = archetype.columnIndex(f.typ)
	}
	return indices
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		indices := v.columnIndices(archetype)

		var result T
		ptr := unsafe.Pointer(&result)
		for slot := range archetype.columns[0].Iter() {
			id := NewEntityId(archetype.id, uint32(slot))
			if !v.fill(ptr, archetype, indices, slot, id) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

func (v *View[T]) fill(ptr unsafe.Pointer, archetype *Archetype, indices []int, slot int, id EntityId) bool {
	for i, f := range v.fields {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(ptr, f.offset))

		var comp any
		if indices[i] != -1 {
			comp = archetype.columns[indices[i]].Get(slot)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*fieldPtr = nil
			continue
		}
		*fieldPtr = (*eface)(unsafe.Pointer(&comp)).data
	}

	for _, offset := range v.idOffsets {
		*(*EntityId)(unsafe.Add(ptr, offset)) = id
	}
	return true
}
