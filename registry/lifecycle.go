/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Lifecycle owns a single shared FactoryTable. The table is created by the first
// Acquire and destroyed when the last outstanding Lease is released.
type Lifecycle struct {
	mu        sync.Mutex
	live      int
	created   uint64
	destroyed uint64

	// current is written under mu and read without it.
	current atomic.Pointer[FactoryTable]
	logger  atomic.Pointer[zap.Logger]
}

// LifecycleStats is a snapshot of a Lifecycle's counters.
type LifecycleStats struct {
	Live      int    // outstanding leases
	Created   uint64 // tables constructed so far
	Destroyed uint64 // tables destroyed so far
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithLogger sets the logger used to report table creation and destruction.
func WithLogger(logger *zap.Logger) LifecycleOption {
	return func(lc *Lifecycle) {
		lc.SetLogger(logger)
	}
}

// NewLifecycle creates a Lifecycle with no live table.
func NewLifecycle(opts ...LifecycleOption) *Lifecycle {
	lc := &Lifecycle{}
	lc.logger.Store(zap.NewNop())
	for _, opt := range opts {
		opt(lc)
	}
	return lc
}

// SetLogger replaces the logger. A nil logger disables logging.
func (lc *Lifecycle) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	lc.logger.Store(logger)
}

// Acquire marks the caller as depending on the shared table, creating the table
// if no other lease is outstanding. The returned Lease must be released once.
func (lc *Lifecycle) Acquire() *Lease {
	lc.mu.Lock()
	var table *FactoryTable
	fresh := lc.live == 0
	if fresh {
		table = NewFactoryTable()
		lc.current.Store(table)
		lc.created++
	} else {
		table = lc.current.Load()
	}
	lc.live++
	live := lc.live
	lc.mu.Unlock()

	if fresh {
		lc.logger.Load().Debug("factory table created", zap.Int("live", live))
	}
	return &Lease{lc: lc, table: table}
}

func (lc *Lifecycle) release() {
	lc.mu.Lock()
	if lc.live == 0 {
		lc.mu.Unlock()
		panic("registry: release without matching acquire")
	}
	lc.live--
	var table *FactoryTable
	if lc.live == 0 {
		table = lc.current.Swap(nil)
		lc.destroyed++
	}
	lc.mu.Unlock()

	if table != nil {
		table.destroy()
		lc.logger.Load().Debug("factory table destroyed")
	}
}

// Current returns the live table, or nil when no lease is outstanding.
// The result must only be used while the caller holds a Lease of its own.
func (lc *Lifecycle) Current() *FactoryTable {
	return lc.current.Load()
}

// Stats returns the current counters.
func (lc *Lifecycle) Stats() LifecycleStats {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return LifecycleStats{
		Live:      lc.live,
		Created:   lc.created,
		Destroyed: lc.destroyed,
	}
}

// Lease is one outstanding dependency on a Lifecycle's table.
type Lease struct {
	lc       *Lifecycle
	table    *FactoryTable
	released atomic.Bool
}

// Table returns the table kept alive by this lease.
func (l *Lease) Table() *FactoryTable {
	return l.table
}

// Release gives up the lease. Only the first call has any effect.
func (l *Lease) Release() {
	if l.released.CompareAndSwap(false, true) {
		l.lc.release()
	}
}
