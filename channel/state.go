// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package channel

// State is the overall peer connection state. The numeric values are
// part of the foreign ABI and must not change.
type State int

const (
	StateNew          State = 0
	StateConnecting   State = 1
	StateConnected    State = 2
	StateDisconnected State = 3
	StateFailed       State = 4
	StateClosed       State = 5
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// IceState is the ICE transport state. The numeric values are part of
// the foreign ABI.
type IceState int

const (
	IceStateNew          IceState = 0
	IceStateChecking     IceState = 1
	IceStateConnected    IceState = 2
	IceStateCompleted    IceState = 3
	IceStateFailed       IceState = 4
	IceStateDisconnected IceState = 5
	IceStateClosed       IceState = 6
)

func (s IceState) String() string {
	switch s {
	case IceStateNew:
		return "new"
	case IceStateChecking:
		return "checking"
	case IceStateConnected:
		return "connected"
	case IceStateCompleted:
		return "completed"
	case IceStateFailed:
		return "failed"
	case IceStateDisconnected:
		return "disconnected"
	case IceStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// GatheringState is the ICE candidate gathering state. The numeric
// values are part of the foreign ABI.
type GatheringState int

const (
	GatheringStateNew        GatheringState = 0
	GatheringStateInProgress GatheringState = 1
	GatheringStateComplete   GatheringState = 2
)

func (s GatheringState) String() string {
	switch s {
	case GatheringStateNew:
		return "new"
	case GatheringStateInProgress:
		return "in-progress"
	case GatheringStateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// SignalingState is the SDP negotiation state. The numeric values are
// part of the foreign ABI.
type SignalingState int

const (
	SignalingStateStable             SignalingState = 0
	SignalingStateHaveLocalOffer     SignalingState = 1
	SignalingStateHaveRemoteOffer    SignalingState = 2
	SignalingStateHaveLocalPranswer  SignalingState = 3
	SignalingStateHaveRemotePranswer SignalingState = 4
)

func (s SignalingState) String() string {
	switch s {
	case SignalingStateStable:
		return "stable"
	case SignalingStateHaveLocalOffer:
		return "have-local-offer"
	case SignalingStateHaveRemoteOffer:
		return "have-remote-offer"
	case SignalingStateHaveLocalPranswer:
		return "have-local-pranswer"
	case SignalingStateHaveRemotePranswer:
		return "have-remote-pranswer"
	default:
		return "unknown"
	}
}
