package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

// Storage holds the singleton components shared by every system of a scheduler.
type Storage struct {
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// StorageStats summarises the contents of a Storage.
type StorageStats struct {
	SingletonCount int
	SingletonTypes []string
}

// NewStorage creates an empty storage.
func NewStorage() *Storage {
	return &Storage{
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// AddSingleton stores value as the singleton of its type, replacing the
// contents of any existing singleton in place so cached pointers stay valid.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		panic("singleton value must not be nil")
	}
	if typ.Kind() == reflect.Ptr {
		panic("singletons must be stored by value, got " + typ.String())
	}

	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points out (a **T) at the stored singleton of type T.
// Returns false if no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	outValue := reflect.ValueOf(out)
	if outValue.Kind() != reflect.Ptr || outValue.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(outValue.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	outValue.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// CollectStats reports the singletons currently held.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		SingletonCount: len(s.singletons),
		SingletonTypes: make([]string, 0, len(s.singletons)),
	}
	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	sort.Strings(stats.SingletonTypes)
	return stats
}
