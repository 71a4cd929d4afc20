// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package pion

import (
	"github.com/pion/webrtc/v4"

	"github.com/rtcbind/rtcbind/channel"
)

// The mapping functions translate pion enumerations into the fixed
// foreign ABI values. Unmapped states (pion's Unknown variants, the
// closed signaling state that has no foreign enumerant) report ok ==
// false and leave the mirrored state untouched.

func mapConnectionState(state webrtc.PeerConnectionState) (channel.State, bool) {
	switch state {
	case webrtc.PeerConnectionStateNew:
		return channel.StateNew, true
	case webrtc.PeerConnectionStateConnecting:
		return channel.StateConnecting, true
	case webrtc.PeerConnectionStateConnected:
		return channel.StateConnected, true
	case webrtc.PeerConnectionStateDisconnected:
		return channel.StateDisconnected, true
	case webrtc.PeerConnectionStateFailed:
		return channel.StateFailed, true
	case webrtc.PeerConnectionStateClosed:
		return channel.StateClosed, true
	default:
		return 0, false
	}
}

func mapICEConnectionState(state webrtc.ICEConnectionState) (channel.IceState, bool) {
	switch state {
	case webrtc.ICEConnectionStateNew:
		return channel.IceStateNew, true
	case webrtc.ICEConnectionStateChecking:
		return channel.IceStateChecking, true
	case webrtc.ICEConnectionStateConnected:
		return channel.IceStateConnected, true
	case webrtc.ICEConnectionStateCompleted:
		return channel.IceStateCompleted, true
	case webrtc.ICEConnectionStateFailed:
		return channel.IceStateFailed, true
	case webrtc.ICEConnectionStateDisconnected:
		return channel.IceStateDisconnected, true
	case webrtc.ICEConnectionStateClosed:
		return channel.IceStateClosed, true
	default:
		return 0, false
	}
}

func mapGatheringState(state webrtc.ICEGatheringState) (channel.GatheringState, bool) {
	switch state {
	case webrtc.ICEGatheringStateNew:
		return channel.GatheringStateNew, true
	case webrtc.ICEGatheringStateGathering:
		return channel.GatheringStateInProgress, true
	case webrtc.ICEGatheringStateComplete:
		return channel.GatheringStateComplete, true
	default:
		return 0, false
	}
}

func mapSignalingState(state webrtc.SignalingState) (channel.SignalingState, bool) {
	switch state {
	case webrtc.SignalingStateStable:
		return channel.SignalingStateStable, true
	case webrtc.SignalingStateHaveLocalOffer:
		return channel.SignalingStateHaveLocalOffer, true
	case webrtc.SignalingStateHaveRemoteOffer:
		return channel.SignalingStateHaveRemoteOffer, true
	case webrtc.SignalingStateHaveLocalPranswer:
		return channel.SignalingStateHaveLocalPranswer, true
	case webrtc.SignalingStateHaveRemotePranswer:
		return channel.SignalingStateHaveRemotePranswer, true
	default:
		return 0, false
	}
}
