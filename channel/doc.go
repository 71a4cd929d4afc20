// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package channel defines the capability interfaces the boundary layer
// wraps: [Channel] (the operation set shared by data channels and web
// sockets), [DataChannel], and [PeerConnection], together with the
// shared vocabulary types — [Reliability] and [DataChannelInit] for
// channel creation, [Description] and [Candidate] for negotiation, and
// the four state enumerations whose numeric values are fixed by the
// foreign ABI.
//
// Concrete implementations live in the backend packages: backend/pion
// sources events from a native pion/webrtc engine, backend/ws from a
// WebSocket client. The registry, codec, and facade layers depend only
// on the interfaces here, so the two backend shapes are
// interchangeable and tests substitute scripted fakes.
//
// Event callbacks are single-slot per family: registering replaces,
// registering nil clears. Implementations must tolerate callbacks
// being swapped while events are in flight; an event already being
// delivered when a callback is cleared may still complete.
package channel
