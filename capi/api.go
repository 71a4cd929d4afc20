// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package capi

import (
	"io"
	"log/slog"
	"unsafe"

	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/registry"
)

// Backends supplies the concrete capability constructors. Production
// wiring uses the pion and ws adapters (see DefaultBackends); tests
// inject scripted fakes.
type Backends struct {
	// NewPeerConnection creates a peer connection from bare ICE
	// server URLs.
	NewPeerConnection func(iceServers []string) (channel.PeerConnection, error)

	// NewWebSocket starts connecting to url. Asynchronous failures
	// surface through the channel's error callback, not the return
	// value.
	NewWebSocket func(url string, config channel.WebSocketConfig) (channel.Channel, error)

	// Preload optionally warms up the backend (certificate
	// generation, engine initialization). May be nil.
	Preload func() error
}

// API is the foreign-facing surface: an explicit value holding the
// handle registries, the backend constructors, and the logger. There
// is no package-level state; embedders create one API per loaded
// library instance and tear it down with Cleanup.
//
// Two registries share one handle allocator: peer connections in one,
// data channels and web sockets unified in the other. A handle value
// is therefore unique across all kinds for the life of the process.
type API struct {
	logger   *slog.Logger
	backends Backends

	peers    *registry.Table[channel.PeerConnection]
	channels *registry.Table[channel.Channel]
}

// New creates an API with empty registries. A nil logger discards all
// output.
func New(backends Backends, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	alloc := registry.NewAllocator()
	return &API{
		logger:   logger,
		backends: backends,
		peers:    registry.NewTable[channel.PeerConnection](alloc),
		channels: registry.NewTable[channel.Channel](alloc),
	}
}

// SetUserPointer associates the opaque context pointer with handle.
// The pointer is passed back on every callback for that handle; a
// handle with no pointer set (or set to nil) has its callbacks
// suppressed.
func (api *API) SetUserPointer(handle int, ptr unsafe.Pointer) int {
	return api.wrap("SetUserPointer", func() (int, error) {
		if err := api.channels.SetContext(handle, ptr); err == nil {
			return CodeSuccess, nil
		}
		if err := api.peers.SetContext(handle, ptr); err != nil {
			return 0, err
		}
		return CodeSuccess, nil
	})
}

// UserPointer returns the context pointer for handle, or nil when the
// handle is unknown or no pointer has been set.
func (api *API) UserPointer(handle int) unsafe.Pointer {
	if ptr, ok := api.channels.Context(handle); ok {
		return ptr
	}
	if ptr, ok := api.peers.Context(handle); ok {
		return ptr
	}
	return nil
}

// Preload warms the backend up. Best effort: failures are logged and
// swallowed.
func (api *API) Preload() {
	defer func() {
		if recovered := recover(); recovered != nil {
			api.logger.Warn("preload panicked", "panic", recovered)
		}
	}()
	if api.backends.Preload == nil {
		return
	}
	if err := api.backends.Preload(); err != nil {
		api.logger.Warn("preload failed", "error", err)
	}
}

// Cleanup erases every live handle from both registries and returns
// the number of objects removed. The underlying objects are closed
// best-effort after erasure; failures are swallowed.
func (api *API) Cleanup() (count int) {
	defer func() {
		if recovered := recover(); recovered != nil {
			api.logger.Warn("cleanup panicked", "panic", recovered)
		}
	}()

	channels := api.channels.Values()
	peers := api.peers.Values()
	count = api.channels.EraseAll() + api.peers.EraseAll()

	for _, object := range channels {
		object.Close()
	}
	for _, object := range peers {
		object.Close()
	}
	api.logger.Debug("cleanup complete", "erased", count)
	return count
}

// liveContext resolves the context pointer for a handle at callback
// fire time. Returns ok == false when the handle has been erased or
// no non-nil pointer is set; either way delivery is suppressed.
func liveContext[T any](table *registry.Table[T], handle int) (unsafe.Pointer, bool) {
	ptr, ok := table.Context(handle)
	if !ok || ptr == nil {
		return nil, false
	}
	return ptr, true
}
