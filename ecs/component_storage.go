package ecs

import (
	"iter"
	"reflect"
)

// columnBlockSize is the number of components held by one block of a column.
// Blocks are allocated individually so growing a column never moves the
// components that were already written.
const columnBlockSize = 256

// column is the type-erased storage of a single component type inside an
// archetype.
type column interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry records which component types an ECS instance accepts
// and how to build a column for each of them.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component. Spawning an entity with an
// unregistered component type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory := r.factories[t]
	if factory == nil {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

// blockColumn stores components of type T in fixed size heap blocks. Freed
// slots are recycled before the column grows.
type blockColumn[T any] struct {
	blocks    []*[columnBlockSize]T
	filled    []*[columnBlockSize]bool
	freeSlots []int
	next      int
	live      int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		index = c.next
		c.next++
		if index/columnBlockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([columnBlockSize]T))
			c.filled = append(c.filled, new([columnBlockSize]bool))
		}
	}

	block, slot := index/columnBlockSize, index%columnBlockSize
	c.blocks[block][slot] = value
	c.filled[block][slot] = true
	c.live++
	return index
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (c *blockColumn[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/columnBlockSize][index%columnBlockSize]
}

func (c *blockColumn[T]) Has(index int) bool {
	if index < 0 || index >= c.next {
		return false
	}
	return c.filled[index/columnBlockSize][index%columnBlockSize]
}

func (c *blockColumn[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	block, slot := index/columnBlockSize, index%columnBlockSize
	var zero T
	c.blocks[block][slot] = zero
	c.filled[block][slot] = false
	c.freeSlots = append(c.freeSlots, index)
	c.live--
}

func (c *blockColumn[T]) Len() int {
	return c.live
}

func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if !c.filled[i/columnBlockSize][i%columnBlockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
