/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import "sync"

type exceptionRegistration struct {
	typeID  string
	factory ExceptionFactory
}

type objectRegistration struct {
	typeID  string
	factory ObjectFactory
}

// Module describes the factories contributed by one generated code module.
// Build it once and Load it into a Lifecycle; the Module itself holds no state
// about where it is loaded, so it may be loaded any number of times.
type Module struct {
	name       string
	exceptions []exceptionRegistration
	objects    []objectRegistration
}

// NewModule creates an empty module description.
func NewModule(name string) *Module {
	return &Module{name: name}
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Exception adds an exception type to the module. It panics if f is nil.
func (m *Module) Exception(typeID string, f ExceptionFactory) *Module {
	if f == nil {
		panic("registry: nil exception factory for " + typeID)
	}
	m.exceptions = append(m.exceptions, exceptionRegistration{typeID: typeID, factory: f})
	return m
}

// Object adds an object type to the module. It panics if f is nil.
func (m *Module) Object(typeID string, f ObjectFactory) *Module {
	if f == nil {
		panic("registry: nil object factory for " + typeID)
	}
	m.objects = append(m.objects, objectRegistration{typeID: typeID, factory: f})
	return m
}

// ExceptionTypeIDs returns the exception type-ids in registration order.
func (m *Module) ExceptionTypeIDs() []string {
	ids := make([]string, len(m.exceptions))
	for i, r := range m.exceptions {
		ids[i] = r.typeID
	}
	return ids
}

// ObjectTypeIDs returns the object type-ids in registration order.
func (m *Module) ObjectTypeIDs() []string {
	ids := make([]string, len(m.objects))
	for i, r := range m.objects {
		ids[i] = r.typeID
	}
	return ids
}

// Load acquires lc's table and registers every factory of the module.
// The returned LoadedModule undoes both steps on Unload.
func (m *Module) Load(lc *Lifecycle) *LoadedModule {
	lease := lc.Acquire()
	table := lease.Table()

	// Snapshot so later builder calls don't affect what Unload removes.
	loaded := &LoadedModule{
		name:       m.name,
		lease:      lease,
		exceptions: append([]exceptionRegistration(nil), m.exceptions...),
		objects:    append([]objectRegistration(nil), m.objects...),
	}
	for _, r := range loaded.exceptions {
		table.AddExceptionFactory(r.typeID, r.factory)
	}
	for _, r := range loaded.objects {
		table.AddObjectFactory(r.typeID, r.factory)
	}
	return loaded
}

// LoadedModule is a module whose factories are registered in a live table.
type LoadedModule struct {
	name       string
	lease      *Lease
	exceptions []exceptionRegistration
	objects    []objectRegistration
	once       sync.Once
}

// Name returns the module name.
func (l *LoadedModule) Name() string {
	return l.name
}

// Table returns the table the module is registered in.
func (l *LoadedModule) Table() *FactoryTable {
	return l.lease.Table()
}

// Unload removes the module's registrations and releases its lease.
// Only the first call has any effect.
func (l *LoadedModule) Unload() {
	l.once.Do(func() {
		table := l.lease.Table()
		for _, r := range l.exceptions {
			table.RemoveExceptionFactory(r.typeID)
		}
		for _, r := range l.objects {
			table.RemoveObjectFactory(r.typeID)
		}
		l.lease.Release()
	})
}
