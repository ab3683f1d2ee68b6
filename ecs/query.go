package ecs

import (
	"iter"
)

// Query is a View that remembers its matching archetypes and snapshots the
// matching entities once per frame. Declare queries as fields of a system;
// the Scheduler initialises them on registration and executes them right
// before the system runs.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	archetypes         []*Archetype
	lastArchetypeCount int

	entities   []EntityId
	components []T
	valid      bool
}

// NewQuery creates a query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops every cache.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.lastArchetypeCount = -1
	q.valid = false
}

// Execute rebuilds the entity snapshot. The archetype list is only rebuilt
// when archetypes were created since the last call.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.lastArchetypeCount {
		q.archetypes = q.archetypes[:0]
		for _, archetype := range q.storage.archetypes {
			if q.view.matches(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}

	q.entities = q.entities[:0]
	clear(q.components)
	q.components = q.components[:0]
	for _, archetype := range q.archetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.entities = append(q.entities, id)
			q.components = append(q.components, item)
		}
	}
	q.valid = true
}

// Invalidate forces the next Iter to re-execute.
func (q *Query[T]) Invalidate() {
	q.valid = false
}

// Len returns the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
	q.ensure()
	return len(q.entities)
}

// Iter yields the entities of the current snapshot, executing the query
// first if it has not run yet.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.ensure()
	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// Values yields only the view structs of the current snapshot.
func (q *Query[T]) Values() iter.Seq[T] {
	q.ensure()
	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}

func (q *Query[T]) ensure() {
	if !q.valid {
		q.Execute()
	}
}
