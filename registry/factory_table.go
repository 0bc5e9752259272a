/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"
	"sync"
)

// ExceptionFactory returns a fresh, empty instance of a remote exception type.
type ExceptionFactory func() error

// ObjectFactory returns a fresh, empty instance of an object type.
type ObjectFactory func() any

// ObjectOf returns an ObjectFactory producing a new *T.
func ObjectOf[T any]() ObjectFactory {
	return func() any {
		return new(T)
	}
}

// ExceptionOf returns an ExceptionFactory producing a new *T, where *T implements error.
func ExceptionOf[T any, PT interface {
	*T
	error
}]() ExceptionFactory {
	return func() error {
		return PT(new(T))
	}
}

type factoryEntry[F any] struct {
	factory F
	refs    int
}

// factoryMap is a reference counted mapping from type-id to factory.
type factoryMap[F any] struct {
	mu      sync.RWMutex
	entries map[string]*factoryEntry[F]
}

func newFactoryMap[F any]() *factoryMap[F] {
	return &factoryMap[F]{
		entries: make(map[string]*factoryEntry[F]),
	}
}

func (m *factoryMap[F]) add(typeID string, f F) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, exists := m.entries[typeID]; exists {
		e.refs++
		return
	}
	m.entries[typeID] = &factoryEntry[F]{factory: f, refs: 1}
}

func (m *factoryMap[F]) get(typeID string) (F, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[typeID]
	if !ok {
		var zero F
		return zero, false
	}
	return e.factory, true
}

func (m *factoryMap[F]) remove(typeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[typeID]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(m.entries, typeID)
	}
}

func (m *factoryMap[F]) refs(typeID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, ok := m.entries[typeID]; ok {
		return e.refs
	}
	return 0
}

func (m *factoryMap[F]) typeIDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

func (m *factoryMap[F]) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*factoryEntry[F])
}

// FactoryTable maps type-ids to exception and object factories.
// The two mappings are independent: the same type-id may appear in both.
type FactoryTable struct {
	exceptions *factoryMap[ExceptionFactory]
	objects    *factoryMap[ObjectFactory]
}

// NewFactoryTable creates an empty FactoryTable.
// Most callers should obtain the shared table through a Lifecycle instead.
func NewFactoryTable() *FactoryTable {
	return &FactoryTable{
		exceptions: newFactoryMap[ExceptionFactory](),
		objects:    newFactoryMap[ObjectFactory](),
	}
}

// AddExceptionFactory registers f for typeID. If typeID is already registered the
// stored factory is kept and only its reference count is incremented.
// It panics if f is nil.
func (t *FactoryTable) AddExceptionFactory(typeID string, f ExceptionFactory) {
	if f == nil {
		panic("registry: nil exception factory for " + typeID)
	}
	t.exceptions.add(typeID, f)
}

// GetExceptionFactory returns the exception factory registered for typeID.
// The second result is false if nothing is registered.
func (t *FactoryTable) GetExceptionFactory(typeID string) (ExceptionFactory, bool) {
	return t.exceptions.get(typeID)
}

// RemoveExceptionFactory drops one registration of typeID. The entry disappears
// when its last registration is removed. Unknown type-ids are ignored.
func (t *FactoryTable) RemoveExceptionFactory(typeID string) {
	t.exceptions.remove(typeID)
}

// AddObjectFactory registers f for typeID. If typeID is already registered the
// stored factory is kept and only its reference count is incremented.
// It panics if f is nil.
func (t *FactoryTable) AddObjectFactory(typeID string, f ObjectFactory) {
	if f == nil {
		panic("registry: nil object factory for " + typeID)
	}
	t.objects.add(typeID, f)
}

// GetObjectFactory returns the object factory registered for typeID.
// The second result is false if nothing is registered.
func (t *FactoryTable) GetObjectFactory(typeID string) (ObjectFactory, bool) {
	return t.objects.get(typeID)
}

// RemoveObjectFactory drops one registration of typeID. The entry disappears
// when its last registration is removed. Unknown type-ids are ignored.
func (t *FactoryTable) RemoveObjectFactory(typeID string) {
	t.objects.remove(typeID)
}

// ExceptionRefs returns the number of outstanding registrations for an exception type-id.
func (t *FactoryTable) ExceptionRefs(typeID string) int {
	return t.exceptions.refs(typeID)
}

// ObjectRefs returns the number of outstanding registrations for an object type-id.
func (t *FactoryTable) ObjectRefs(typeID string) int {
	return t.objects.refs(typeID)
}

// ExceptionTypeIDs returns the registered exception type-ids in sorted order.
func (t *FactoryTable) ExceptionTypeIDs() []string {
	return t.exceptions.typeIDs()
}

// ObjectTypeIDs returns the registered object type-ids in sorted order.
func (t *FactoryTable) ObjectTypeIDs() []string {
	return t.objects.typeIDs()
}

// destroy drops every remaining registration. Called by the Lifecycle once the
// table has been unpublished.
func (t *FactoryTable) destroy() {
	t.exceptions.clear()
	t.objects.clear()
}
