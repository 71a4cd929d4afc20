// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry provides the thread-safe handle tables at the core
// of the foreign boundary: small integer handles mapped to internally
// owned objects and to caller-supplied opaque context pointers.
//
// [Table] is generic over the capability kind it stores. Two disjoint
// tables exist in practice — one for peer connections, one shared by
// data channels and web sockets — but both are the same type attached
// to one [Allocator], so handles are unique process-wide and a handle
// value identifies its kind implicitly.
//
// Handles are never reused. Erasing a handle removes the table's
// reference only; strong references obtained from [Table.Get] before
// the erase remain valid, which is what makes it safe for a native
// event to operate on an object concurrently with its deletion from
// the foreign side.
package registry
