// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import "sync"

// Allocator issues monotonically increasing handles and holds the
// mutual-exclusion domain shared by every table attached to it. A
// single lock across all tables keeps cross-table operations (erase
// everything, context lookup during callback dispatch) atomic without
// lock ordering concerns.
type Allocator struct {
	mu   sync.Mutex
	last Handle
}

// NewAllocator creates an allocator whose first issued handle is 1.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Last returns the most recently issued handle, or 0 if none has been
// issued yet.
func (alloc *Allocator) Last() Handle {
	alloc.mu.Lock()
	defer alloc.mu.Unlock()
	return alloc.last
}
