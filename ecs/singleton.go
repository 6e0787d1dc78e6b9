package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed handle to the one value of type T held by a Storage.
// The zero value is usable once Init has bound it, which the Scheduler does
// for every Singleton field of a registered system. Singletons are replaced
// in place and never removed, so a resolved pointer stays valid.
type Singleton[T any] struct {
	storage *Storage
	typ     reflect.Type
	ptr     unsafe.Pointer
}

// NewSingleton returns a handle to the T singleton of storage, creating it
// from initializer (or the zero value) when it does not exist yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{}
	s.Init(storage)

	if s.ptr == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
		s.resolve()
	}
	return s
}

// Init binds the handle to storage.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.typ = reflect.TypeFor[T]()
	s.resolve()
}

// Get returns the singleton, or nil if storage holds none yet.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.resolve()
	}
	return (*T)(s.ptr)
}

func (s *Singleton[T]) resolve() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(s.typ); entry != nil {
		s.ptr = entry.dataPtr
	}
}
