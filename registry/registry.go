// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"unsafe"
)

// ErrNotFound is returned when a handle does not exist in the table,
// either because it was never issued or because it has been erased.
var ErrNotFound = errors.New("registry: handle not found")

// Handle identifies an object across the foreign boundary. Handles are
// small positive integers, unique for the lifetime of the process, and
// never reused. Zero is never a valid handle.
type Handle = int

// Table maps handles to objects of one capability kind, plus the
// caller-supplied context pointer for each handle. All operations are
// safe for concurrent use. The critical section covers table mutation
// only; callers operate on returned objects after the lock is released.
//
// Objects are reference types (interfaces or pointers), so an object
// returned by Get stays valid even if the handle is erased concurrently:
// erasure drops the table's reference, not the object.
type Table[T any] struct {
	alloc    *Allocator
	objects  map[Handle]T
	contexts map[Handle]unsafe.Pointer
}

// NewTable creates an empty table drawing handles from alloc. Tables
// sharing an allocator never issue the same handle value, which lets
// disjoint capability kinds share one handle space.
func NewTable[T any](alloc *Allocator) *Table[T] {
	return &Table[T]{
		alloc:    alloc,
		objects:  make(map[Handle]T),
		contexts: make(map[Handle]unsafe.Pointer),
	}
}

// Insert registers object under a freshly allocated handle and returns
// the handle. The context pointer for the new handle starts nil.
func (table *Table[T]) Insert(object T) Handle {
	table.alloc.mu.Lock()
	defer table.alloc.mu.Unlock()

	table.alloc.last++
	handle := table.alloc.last
	table.objects[handle] = object
	table.contexts[handle] = nil
	return handle
}

// Get returns the object registered under handle. The returned value is
// a strong reference: it remains usable after the lock is released and
// after a concurrent Erase.
func (table *Table[T]) Get(handle Handle) (T, error) {
	table.alloc.mu.Lock()
	defer table.alloc.mu.Unlock()

	object, ok := table.objects[handle]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return object, nil
}

// Erase removes the object and context entries for handle. Erasing a
// handle that does not exist returns ErrNotFound. Erase never touches
// the object itself; references obtained from Get before the erase
// stay valid.
func (table *Table[T]) Erase(handle Handle) error {
	table.alloc.mu.Lock()
	defer table.alloc.mu.Unlock()

	if _, ok := table.objects[handle]; !ok {
		return ErrNotFound
	}
	delete(table.objects, handle)
	delete(table.contexts, handle)
	return nil
}

// EraseAll empties the table and returns the number of objects removed.
// Used for process-wide teardown.
func (table *Table[T]) EraseAll() int {
	table.alloc.mu.Lock()
	defer table.alloc.mu.Unlock()

	count := len(table.objects)
	clear(table.objects)
	clear(table.contexts)
	return count
}

// SetContext associates the opaque context pointer with handle.
// Setting a context for a handle that does not exist returns
// ErrNotFound.
func (table *Table[T]) SetContext(handle Handle, ptr unsafe.Pointer) error {
	table.alloc.mu.Lock()
	defer table.alloc.mu.Unlock()

	if _, ok := table.objects[handle]; !ok {
		return ErrNotFound
	}
	table.contexts[handle] = ptr
	return nil
}

// Context returns the context pointer for handle. The second result is
// false when the handle does not exist (erased or never issued); a live
// handle whose context was never set reports (nil, true).
func (table *Table[T]) Context(handle Handle) (unsafe.Pointer, bool) {
	table.alloc.mu.Lock()
	defer table.alloc.mu.Unlock()

	ptr, ok := table.contexts[handle]
	return ptr, ok
}

// Values returns the objects currently registered, in no particular
// order. The returned references stay valid regardless of concurrent
// erasure; callers use this to close objects after a bulk erase.
func (table *Table[T]) Values() []T {
	table.alloc.mu.Lock()
	defer table.alloc.mu.Unlock()

	values := make([]T, 0, len(table.objects))
	for _, object := range table.objects {
		values = append(values, object)
	}
	return values
}

// Len returns the number of live handles in the table.
func (table *Table[T]) Len() int {
	table.alloc.mu.Lock()
	defer table.alloc.mu.Unlock()
	return len(table.objects)
}
