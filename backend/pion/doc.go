// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package pion is the native-object backend adapter: it implements
// channel.PeerConnection and channel.DataChannel on an in-process
// pion/webrtc engine.
//
// The adapter registers its own pion event handlers exactly once at
// construction and dispatches to swappable user callbacks, because
// pion's On* registration is single-slot and the boundary layer needs
// both internal state mirroring and user delivery from the same
// events. State accessors return the last value observed from pion,
// never a locally computed one.
//
// pion has no onLocalDescription event, so [PeerConnection.SetLocalDescription]
// fires the stored callback itself after the generated offer or answer
// is applied; trickled candidates arrive through pion's OnICECandidate
// and are forwarded as they come.
//
// [ICEConfig] and [LoadICEConfig] carry STUN/TURN server entries,
// loadable from a single YAML file. The setting engine enables
// loopback candidates so two peer connections in one process can
// connect with no network interface, which the tests rely on.
package pion
