// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package capi is the flat, foreign-callable surface over the channel
// capabilities. It owns the handle tables: every peer connection and
// every channel (data channel or websocket) created through an [API]
// is registered under a positive integer handle, and all subsequent
// operations name objects by handle rather than by reference. Handles
// are allocated from a single monotonic counter shared by both tables
// and are never reused, so a stale handle fails with [CodeInvalid]
// instead of aliasing a newer object.
//
// Every operation returns an int status: [CodeSuccess] (or a
// non-negative payload such as a handle or byte count) on success, and
// one of the negative codes on failure. Backend errors, including
// panics out of backend callbacks' setup paths, are translated by a
// single wrapper so foreign callers never observe a Go panic.
//
// Callbacks are delivered with the opaque context pointer registered
// for the handle via [API.SetUserPointer]. A handle with no context
// pointer, or a nil one, has its events suppressed; this is the gate a
// caller uses to make sure no callback fires before its own state is
// ready. Inbound data channels opened by the remote peer are
// registered automatically and seeded with the parent connection's
// context pointer; see [API.SetDataChannelCallback].
//
// String and message payloads cross the boundary through the sizing
// protocol in the wire package: call once with a nil buffer to learn
// the required size, then again with a buffer at least that large.
// Strings are copied with a trailing NUL; the sizing result counts the
// terminator, the copy result does not.
//
// [DefaultBackends] wires the production adapters from backend/pion
// and backend/ws; tests substitute their own [Backends] to exercise
// the surface without networking.
package capi
