// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package capi

import (
	"log/slog"

	"github.com/rtcbind/rtcbind/backend/pion"
	"github.com/rtcbind/rtcbind/backend/ws"
	"github.com/rtcbind/rtcbind/channel"
)

// DefaultBackends wires the pion peer connection and websocket
// adapters. The logger is shared with the constructed objects.
func DefaultBackends(logger *slog.Logger) Backends {
	return Backends{
		NewPeerConnection: func(iceServers []string) (channel.PeerConnection, error) {
			return pion.NewPeerConnection(pion.ICEConfigFromURLs(iceServers), logger)
		},
		NewWebSocket: func(url string, config channel.WebSocketConfig) (channel.Channel, error) {
			return ws.Dial(url, config, logger), nil
		},
		Preload: func() error {
			// Constructing and discarding a connection forces the
			// certificate generation and transport setup that would
			// otherwise land on the first real connection.
			peer, err := pion.NewPeerConnection(pion.ICEConfig{}, logger)
			if err != nil {
				return err
			}
			return peer.Close()
		},
	}
}
