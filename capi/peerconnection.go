// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package capi

import (
	"fmt"

	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/wire"
)

// CreatePeerConnection creates a peer connection with the given ICE
// server URLs (which may be empty for host candidates only) and
// returns its handle.
func (api *API) CreatePeerConnection(iceServers []string) int {
	return api.wrap("CreatePeerConnection", func() (int, error) {
		peer, err := api.backends.NewPeerConnection(iceServers)
		if err != nil {
			return 0, err
		}
		handle := api.peers.Insert(peer)
		api.logger.Debug("peer connection created", "handle", handle, "iceServers", len(iceServers))
		return handle, nil
	})
}

// ClosePeerConnection shuts the connection down without erasing its
// handle.
func (api *API) ClosePeerConnection(handle int) int {
	return api.wrap("ClosePeerConnection", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if err := peer.Close(); err != nil {
			return 0, err
		}
		return CodeSuccess, nil
	})
}

// DeletePeerConnection closes the connection and erases its handle.
func (api *API) DeletePeerConnection(handle int) int {
	return api.wrap("DeletePeerConnection", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		peer.Close()
		if err := api.peers.Erase(handle); err != nil {
			return 0, err
		}
		api.logger.Debug("peer connection deleted", "handle", handle)
		return CodeSuccess, nil
	})
}

// CreateDataChannel opens an outgoing data channel with default
// (ordered, reliable) delivery and returns its handle.
func (api *API) CreateDataChannel(pcHandle int, label string) int {
	return api.CreateDataChannelEx(pcHandle, label, channel.DataChannelInit{Stream: -1})
}

// CreateDataChannelEx is CreateDataChannel with explicit reliability,
// protocol, and negotiation parameters.
func (api *API) CreateDataChannelEx(pcHandle int, label string, init channel.DataChannelInit) int {
	return api.wrap("CreateDataChannelEx", func() (int, error) {
		peer, err := api.peers.Get(pcHandle)
		if err != nil {
			return 0, err
		}
		dc, err := peer.CreateDataChannel(label, init)
		if err != nil {
			return 0, err
		}
		handle := api.channels.Insert(dc)
		api.logger.Debug("data channel created", "handle", handle, "pc", pcHandle, "label", label)
		return handle, nil
	})
}

// SetLocalDescription generates and applies the local description. An
// empty sdpType derives offer or answer from the signaling state.
func (api *API) SetLocalDescription(handle int, sdpType string) int {
	return api.wrap("SetLocalDescription", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if err := peer.SetLocalDescription(sdpType); err != nil {
			return 0, err
		}
		return CodeSuccess, nil
	})
}

// SetRemoteDescription applies the remote peer's description.
func (api *API) SetRemoteDescription(handle int, sdp, sdpType string) int {
	return api.wrap("SetRemoteDescription", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if sdp == "" {
			return 0, fmt.Errorf("%w: empty remote description", errInvalid)
		}
		if err := peer.SetRemoteDescription(sdp, sdpType); err != nil {
			return 0, err
		}
		return CodeSuccess, nil
	})
}

// AddRemoteCandidate adds a remote ICE candidate; mid may be empty.
func (api *API) AddRemoteCandidate(handle int, candidate, mid string) int {
	return api.wrap("AddRemoteCandidate", func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		if candidate == "" {
			return 0, fmt.Errorf("%w: empty remote candidate", errInvalid)
		}
		if err := peer.AddRemoteCandidate(candidate, mid); err != nil {
			return 0, err
		}
		return CodeSuccess, nil
	})
}

// GetLocalDescription copies the local SDP out through buffer,
// following the sizing protocol. CodeNotAvailable before negotiation
// has produced a local description.
func (api *API) GetLocalDescription(handle int, buffer []byte) int {
	return api.describe(handle, buffer, "GetLocalDescription",
		channel.PeerConnection.LocalDescription, func(d channel.Description) string { return d.SDP })
}

// GetRemoteDescription copies the remote SDP out through buffer.
func (api *API) GetRemoteDescription(handle int, buffer []byte) int {
	return api.describe(handle, buffer, "GetRemoteDescription",
		channel.PeerConnection.RemoteDescription, func(d channel.Description) string { return d.SDP })
}

// GetLocalDescriptionType copies the local description's type string
// ("offer", "answer") out through buffer.
func (api *API) GetLocalDescriptionType(handle int, buffer []byte) int {
	return api.describe(handle, buffer, "GetLocalDescriptionType",
		channel.PeerConnection.LocalDescription, func(d channel.Description) string { return d.Type })
}

// GetRemoteDescriptionType copies the remote description's type
// string out through buffer.
func (api *API) GetRemoteDescriptionType(handle int, buffer []byte) int {
	return api.describe(handle, buffer, "GetRemoteDescriptionType",
		channel.PeerConnection.RemoteDescription, func(d channel.Description) string { return d.Type })
}

func (api *API) describe(handle int, buffer []byte, name string,
	fetch func(channel.PeerConnection) (channel.Description, error),
	field func(channel.Description) string,
) int {
	return api.wrap(name, func() (int, error) {
		peer, err := api.peers.Get(handle)
		if err != nil {
			return 0, err
		}
		description, err := fetch(peer)
		if err != nil {
			return 0, err
		}
		return wire.CopyString(field(description), buffer)
	})
}
