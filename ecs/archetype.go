package ecs

import (
	"reflect"
	"slices"
	"sort"
	"strings"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly the same set of component
// types. Each component type gets one column; an entity's components share
// the same slot index in every column.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// spawn writes one component per column and returns the shared slot index.
// components must already be sorted by type name.
func (a *Archetype) spawn(components []any) uint32 {
	slot := -1
	for i, comp := range components {
		index := a.columns[i].Append(comp)
		if slot != -1 && index != slot {
			panic("ecs: archetype columns out of step")
		}
		slot = index
	}
	return uint32(slot)
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// component returns a pointer to the component of type t stored at slot, or
// nil when the archetype lacks the type or the slot is empty.
func (a *Archetype) component(slot uint32, t reflect.Type) any {
	i := a.columnIndex(t)
	if i == -1 {
		return nil
	}
	return a.columns[i].Get(int(slot))
}

func (a *Archetype) delete(slot uint32) {
	for _, c := range a.columns {
		c.Delete(int(slot))
	}
}

func (a *Archetype) alive(slot uint32) bool {
	return len(a.columns) > 0 && a.columns[0].Has(int(slot))
}

// HasComponent reports whether entities of this archetype carry type t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// String lists the component type names, e.g. "[bunnymark.Bunny bunnymark.Transform]".
func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Iter yields the id of every live entity in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for slot := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

func sortTypes(types []reflect.Type) {
	sort.Sort(byTypeName(types))
}
