/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factorytable

import (
	"github.com/suparena/factorytable/registry"
	"go.uber.org/zap"
)

// shared is the process-wide Lifecycle. Its table exists only while at least
// one lease on it is outstanding.
var shared = registry.NewLifecycle()

// Shared returns the process-wide Lifecycle.
func Shared() *registry.Lifecycle {
	return shared
}

// Acquire takes a lease on the process-wide table, creating it if needed.
func Acquire() *registry.Lease {
	return shared.Acquire()
}

// Current returns the process-wide table, or nil if no lease is outstanding.
func Current() *registry.FactoryTable {
	return shared.Current()
}

// Load registers m's factories in the process-wide table.
func Load(m *registry.Module) *registry.LoadedModule {
	return m.Load(shared)
}

// Stats reports the process-wide Lifecycle counters.
func Stats() registry.LifecycleStats {
	return shared.Stats()
}

// SetLogger sets the logger of the process-wide Lifecycle.
func SetLogger(logger *zap.Logger) {
	shared.SetLogger(logger)
}
