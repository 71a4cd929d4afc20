// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package capi

import (
	"unsafe"

	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/wire"
)

// Foreign callback shapes. Each carries the handle the event fired on
// and the context pointer registered for that handle at fire time; a
// handle whose context pointer is unset or nil never has its
// callbacks invoked.
type (
	// OpenCallback fires when the channel's transport confirms
	// readiness.
	OpenCallback func(id int, ptr unsafe.Pointer)

	// ClosedCallback fires when the channel reaches its terminal
	// state.
	ClosedCallback func(id int, ptr unsafe.Pointer)

	// ErrorCallback carries a backend error message.
	ErrorCallback func(id int, message string, ptr unsafe.Pointer)

	// MessageCallback carries an incoming message encoded per the
	// wire codec: size >= 0 is binary of that length, size < 0 is
	// text of encoded length -size - 1.
	MessageCallback func(id int, data []byte, size int, ptr unsafe.Pointer)

	// BufferedAmountLowCallback fires when queued data drains to the
	// configured threshold.
	BufferedAmountLowCallback func(id int, ptr unsafe.Pointer)

	// DescriptionCallback carries a freshly produced local
	// description.
	DescriptionCallback func(pc int, sdp, sdpType string, ptr unsafe.Pointer)

	// CandidateCallback carries a trickled local ICE candidate.
	CandidateCallback func(pc int, candidate, mid string, ptr unsafe.Pointer)

	// StateCallback carries a peer connection state transition.
	StateCallback func(pc int, state channel.State, ptr unsafe.Pointer)

	// IceStateCallback carries an ICE transport state transition.
	IceStateCallback func(pc int, state channel.IceState, ptr unsafe.Pointer)

	// GatheringStateCallback carries a candidate gathering state
	// transition.
	GatheringStateCallback func(pc int, state channel.GatheringState, ptr unsafe.Pointer)

	// SignalingStateCallback carries a signaling state transition.
	SignalingStateCallback func(pc int, state channel.SignalingState, ptr unsafe.Pointer)

	// DataChannelCallback fires when the remote peer opens a data
	// channel; dc is the handle of the newly registered channel.
	DataChannelCallback func(pc, dc int, ptr unsafe.Pointer)
)

// SetOpenCallback registers the open callback for a channel handle.
// Passing nil clears it. One callback per event family per handle;
// registering replaces the previous one.
func (api *API) SetOpenCallback(handle int, callback OpenCallback) int {
	return api.wrap("SetOpenCallback", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			chn.OnOpen(nil)
			return CodeSuccess, nil
		}
		chn.OnOpen(func() {
			if ptr, ok := liveContext(api.channels, handle); ok {
				callback(handle, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetClosedCallback registers the closed callback for a channel
// handle. Passing nil clears it.
func (api *API) SetClosedCallback(handle int, callback ClosedCallback) int {
	return api.wrap("SetClosedCallback", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			chn.OnClosed(nil)
			return CodeSuccess, nil
		}
		chn.OnClosed(func() {
			if ptr, ok := liveContext(api.channels, handle); ok {
				callback(handle, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetErrorCallback registers the error callback for a channel handle.
// Passing nil clears it.
func (api *API) SetErrorCallback(handle int, callback ErrorCallback) int {
	return api.wrap("SetErrorCallback", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			chn.OnError(nil)
			return CodeSuccess, nil
		}
		chn.OnError(func(message string) {
			if ptr, ok := liveContext(api.channels, handle); ok {
				callback(handle, message, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetMessageCallback registers the message callback for a channel
// handle. Passing nil clears it. Messages are delivered with the
// codec's signed-length convention, text and binary over the same
// callback.
func (api *API) SetMessageCallback(handle int, callback MessageCallback) int {
	return api.wrap("SetMessageCallback", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			chn.OnMessage(nil)
			return CodeSuccess, nil
		}
		chn.OnMessage(func(message wire.Message) {
			if ptr, ok := liveContext(api.channels, handle); ok {
				data, size := wire.Encode(message)
				callback(handle, data, size, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetBufferedAmountLowCallback registers the buffered-amount-low
// callback for a channel handle. Passing nil clears it.
func (api *API) SetBufferedAmountLowCallback(handle int, callback BufferedAmountLowCallback) int {
	return api.wrap("SetBufferedAmountLowCallback", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			chn.OnBufferedAmountLow(nil)
			return CodeSuccess, nil
		}
		chn.OnBufferedAmountLow(func() {
			if ptr, ok := liveContext(api.channels, handle); ok {
				callback(handle, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetLocalDescriptionCallback registers the local description
// callback for a peer connection handle. Passing nil clears it.
func (api *API) SetLocalDescriptionCallback(handle int, callback DescriptionCallback) int {
	return api.wrap("SetLocalDescriptionCallback", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			peer.OnLocalDescription(nil)
			return CodeSuccess, nil
		}
		peer.OnLocalDescription(func(description channel.Description) {
			if ptr, ok := liveContext(api.peers, handle); ok {
				callback(handle, description.SDP, description.Type, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetLocalCandidateCallback registers the local candidate callback
// for a peer connection handle. Passing nil clears it.
func (api *API) SetLocalCandidateCallback(handle int, callback CandidateCallback) int {
	return api.wrap("SetLocalCandidateCallback", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			peer.OnLocalCandidate(nil)
			return CodeSuccess, nil
		}
		peer.OnLocalCandidate(func(candidate channel.Candidate) {
			if ptr, ok := liveContext(api.peers, handle); ok {
				callback(handle, candidate.Candidate, candidate.Mid, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetStateChangeCallback registers the connection state callback for
// a peer connection handle. Passing nil clears it.
func (api *API) SetStateChangeCallback(handle int, callback StateCallback) int {
	return api.wrap("SetStateChangeCallback", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			peer.OnStateChange(nil)
			return CodeSuccess, nil
		}
		peer.OnStateChange(func(state channel.State) {
			if ptr, ok := liveContext(api.peers, handle); ok {
				callback(handle, state, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetIceStateChangeCallback registers the ICE state callback for a
// peer connection handle. Passing nil clears it.
func (api *API) SetIceStateChangeCallback(handle int, callback IceStateCallback) int {
	return api.wrap("SetIceStateChangeCallback", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			peer.OnIceStateChange(nil)
			return CodeSuccess, nil
		}
		peer.OnIceStateChange(func(state channel.IceState) {
			if ptr, ok := liveContext(api.peers, handle); ok {
				callback(handle, state, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetGatheringStateChangeCallback registers the gathering state
// callback for a peer connection handle. Passing nil clears it.
func (api *API) SetGatheringStateChangeCallback(handle int, callback GatheringStateCallback) int {
	return api.wrap("SetGatheringStateChangeCallback", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			peer.OnGatheringStateChange(nil)
			return CodeSuccess, nil
		}
		peer.OnGatheringStateChange(func(state channel.GatheringState) {
			if ptr, ok := liveContext(api.peers, handle); ok {
				callback(handle, state, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetSignalingStateChangeCallback registers the signaling state
// callback for a peer connection handle. Passing nil clears it.
func (api *API) SetSignalingStateChangeCallback(handle int, callback SignalingStateCallback) int {
	return api.wrap("SetSignalingStateChangeCallback", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			peer.OnSignalingStateChange(nil)
			return CodeSuccess, nil
		}
		peer.OnSignalingStateChange(func(state channel.SignalingState) {
			if ptr, ok := liveContext(api.peers, handle); ok {
				callback(handle, state, ptr)
			}
		})
		return CodeSuccess, nil
	})
}

// SetDataChannelCallback registers the inbound data channel callback
// for a peer connection handle. Passing nil clears it, which also
// stops inbound channels from being registered.
//
// An inbound channel is registered in the channel table
// unconditionally, then seeded with the parent connection's context
// pointer before delivery, so the foreign side need not re-register
// context for channels it did not explicitly create. When the parent
// has no context pointer set, the event is suppressed like any other,
// but the channel stays registered and reachable once a pointer is
// set.
func (api *API) SetDataChannelCallback(handle int, callback DataChannelCallback) int {
	return api.wrap("SetDataChannelCallback", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if callback == nil {
			peer.OnDataChannel(nil)
			return CodeSuccess, nil
		}
		peer.OnDataChannel(func(dc channel.DataChannel) {
			dcHandle := api.channels.Insert(dc)
			api.logger.Debug("inbound data channel registered", "handle", dcHandle, "pc", handle)

			ptr, ok := liveContext(api.peers, handle)
			if !ok {
				return
			}
			api.channels.SetContext(dcHandle, ptr)
			callback(handle, dcHandle, ptr)
		})
		return CodeSuccess, nil
	})
}
