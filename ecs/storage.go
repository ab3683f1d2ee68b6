package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

// Storage owns every entity, component and singleton of one ECS world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	dataPtr unsafe.Pointer
	value   reflect.Value
}

// NewStorage creates an empty world that accepts the components of registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Spawn creates an entity with the given components. Components may be passed
// by value or by pointer; the stored copy is always owned by the storage.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	sorted, types := sortComponents(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.spawn(sorted))
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Delete removes the entity and all of its components. Deleting an unknown or
// already deleted entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.delete(id.Index())
	}
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.alive(id.Index())
}

// GetComponent returns a pointer to the entity's component of type compType,
// or nil if the entity does not have one.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.component(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// GetArchetype returns the archetype with the given id, or nil.
func (s *Storage) GetArchetype(id uint32) *Archetype {
	return s.archetypes[id]
}

// GetArchetypes returns every archetype created so far, sorted by id.
func (s *Storage) GetArchetypes() []*Archetype {
	result := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		result = append(result, archetype)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].id < result[j].id })
	return result
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous value of the same type. Pointers already handed out by
// Singleton.Get keep pointing at the replaced value.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t == nil {
		panic("ecs: cannot add nil singleton")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		value = reflect.ValueOf(value).Elem().Interface()
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{
		dataPtr: ptr.UnsafePointer(),
		value:   ptr,
	}
}

// RemoveSingleton drops the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

// ReadSingleton fills target, which must be a **T, with a pointer to the
// singleton of type T. It reports whether the singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Ptr {
		panic("ecs: ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(ptr.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	ptr.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ComponentReader is implemented by anything that can resolve a component of
// an entity, such as *Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}

// sortComponents validates the component values and orders them by type name,
// returning the components and their types in matching order.
func sortComponents(components []any) ([]any, []reflect.Type) {
	type pair struct {
		comp any
		typ  reflect.Type
	}

	pairs := make([]pair, len(components))
	for i, comp := range components {
		t := reflect.TypeOf(comp)
		if t == nil {
			panic("ecs: nil component")
		}
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}

		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}
		pairs[i] = pair{comp: comp, typ: t}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].typ.String() < pairs[j].typ.String()
	})

	sorted := make([]any, len(pairs))
	types := make([]reflect.Type, len(pairs))
	for i, p := range pairs {
		if i > 0 && types[i-1] == p.typ {
			panic("ecs: duplicate component type " + p.typ.String())
		}
		sorted[i] = p.comp
		types[i] = p.typ
	}
	return sorted, types
}

// eface mirrors the runtime layout of an interface value.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typePointer returns the address of the runtime type descriptor behind t,
// which is unique per type for the life of the process.
func typePointer(t reflect.Type) uintptr {
	return uintptr((*eface)(unsafe.Pointer(&t)).data)
}

// hashTypes derives an archetype id from a sorted type list with 32-bit
// FNV-1a over the type descriptor addresses. Zero is reserved.
func hashTypes(types []reflect.Type) uint32 {
	const prime uint32 = 16777619
	h := uint32(2166136261)

	for _, t := range types {
		p := typePointer(t)
		val := uint32(p)
		if unsafe.Sizeof(p) == 8 {
			val ^= uint32(uint64(p) >> 32)
		}
		h ^= val
		h *= prime
	}

	if h == 0 {
		h = 1
	}
	return h
}
