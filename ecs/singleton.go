package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton gives a system direct access to a value of type T that lives
// outside any entity: configuration, counters, window state and the like.
// Declare it as a field of a system and the Scheduler wires it up.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns an accessor for the T singleton of storage, creating
// the singleton from initializer (or the zero value) if it does not exist yet.
// An existing singleton is never overwritten.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The Scheduler calls it on registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

// Get returns the singleton, or nil if it has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return (*T)(s.ptr)
}

// MustGet is Get for singletons the caller cannot run without.
func (s *Singleton[T]) MustGet() *T {
	v := s.Get()
	if v == nil {
		panic("ecs: singleton " + reflect.TypeFor[T]().String() + " missing")
	}
	return v
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	}
}
