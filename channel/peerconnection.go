// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import "errors"

// ErrUnknownDescriptionType is returned when a description type string
// is not one of "offer", "answer", "pranswer", or "rollback".
var ErrUnknownDescriptionType = errors.New("channel: unknown description type")

// Description is an SDP session description paired with its type
// ("offer", "answer", "pranswer", or "rollback").
type Description struct {
	SDP  string
	Type string
}

// Candidate is an ICE candidate paired with its media stream
// identification tag.
type Candidate struct {
	Candidate string
	Mid       string
}

// PeerConnection is the capability of a WebRTC peer connection:
// negotiation, child data channel creation, and observation of the
// four backend-driven state machines. The state accessors return the
// last value observed from the backend, defaulting to the initial
// enumerant before any event has fired — this layer never computes
// state locally.
//
// Callback registration follows the same single-slot, nil-clears
// discipline as Channel.
type PeerConnection interface {
	// Close shuts the connection and every child data channel down.
	// Idempotent.
	Close() error

	// CreateDataChannel opens a new outgoing data channel. The init's
	// reliability descriptor is validated: setting both
	// MaxPacketLifeTime and MaxRetransmits is a configuration error.
	CreateDataChannel(label string, init DataChannelInit) (DataChannel, error)

	// SetLocalDescription generates and applies the local description.
	// An empty sdpType picks offer or answer from the signaling state;
	// otherwise sdpType must be "offer" or "answer".
	SetLocalDescription(sdpType string) error

	// SetRemoteDescription applies the remote peer's description. An
	// empty sdpType is inferred from the SDP when possible.
	SetRemoteDescription(sdp, sdpType string) error

	// AddRemoteCandidate adds a remote ICE candidate. mid may be
	// empty.
	AddRemoteCandidate(candidate, mid string) error

	// LocalDescription returns the current local description, or
	// ErrNotAvailable before one has been produced.
	LocalDescription() (Description, error)

	// RemoteDescription returns the current remote description, or
	// ErrNotAvailable before one has been applied.
	RemoteDescription() (Description, error)

	State() State
	IceState() IceState
	GatheringState() GatheringState
	SignalingState() SignalingState

	OnLocalDescription(callback func(Description))
	OnLocalCandidate(callback func(Candidate))
	OnStateChange(callback func(State))
	OnIceStateChange(callback func(IceState))
	OnGatheringStateChange(callback func(GatheringState))
	OnSignalingStateChange(callback func(SignalingState))
	OnDataChannel(callback func(DataChannel))
}
