// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

// Rtcbind-loopback drives two in-process peer connections through the
// handle-based surface: it exchanges descriptions and candidates
// between them via the registered callbacks, opens a data channel,
// and round-trips a text and a binary message. It exists to exercise
// the full callback path against the real backend without a remote
// peer or a signaling server.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"
	"unsafe"

	"github.com/spf13/pflag"

	"github.com/rtcbind/rtcbind/backend/pion"
	"github.com/rtcbind/rtcbind/backend/ws"
	"github.com/rtcbind/rtcbind/capi"
	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rtcbind-loopback: %v\n", err)
		os.Exit(1)
	}
}

// peerTag is what the demo registers as the context pointer for every
// handle. Callbacks stay suppressed until a pointer is registered, so
// each handle gets its tag set immediately after creation.
type peerTag struct {
	name string
}

func run() error {
	iceConfigPath := pflag.String("ice-config", "", "path to a YAML ICE server configuration")
	timeout := pflag.Duration("timeout", 30*time.Second, "overall deadline for the round trip")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	iceConfig := pion.ICEConfig{}
	if *iceConfigPath != "" {
		loaded, err := pion.LoadICEConfig(*iceConfigPath)
		if err != nil {
			return err
		}
		iceConfig = loaded
	}

	api := capi.New(capi.Backends{
		NewPeerConnection: func(urls []string) (channel.PeerConnection, error) {
			config := iceConfig
			if len(urls) > 0 {
				config = pion.ICEConfigFromURLs(urls)
			}
			return pion.NewPeerConnection(config, logger)
		},
		NewWebSocket: func(url string, config channel.WebSocketConfig) (channel.Channel, error) {
			return ws.Dial(url, config, logger), nil
		},
	}, logger)
	defer api.Cleanup()

	left := api.CreatePeerConnection(nil)
	if left < 0 {
		return fmt.Errorf("creating left peer connection: code %d", left)
	}
	right := api.CreatePeerConnection(nil)
	if right < 0 {
		return fmt.Errorf("creating right peer connection: code %d", right)
	}
	api.SetUserPointer(left, unsafe.Pointer(&peerTag{name: "left"}))
	api.SetUserPointer(right, unsafe.Pointer(&peerTag{name: "right"}))

	// Cross-wire the signaling: each side's local description and
	// candidates are applied directly to the other side. The right
	// side answers as soon as the offer lands.
	api.SetLocalDescriptionCallback(left, func(_ int, sdp, sdpType string, _ unsafe.Pointer) {
		logger.Debug("left produced description", "type", sdpType)
		if code := api.SetRemoteDescription(right, sdp, sdpType); code != capi.CodeSuccess {
			logger.Error("applying offer on right", "code", code)
			return
		}
		if code := api.SetLocalDescription(right, ""); code != capi.CodeSuccess {
			logger.Error("answering on right", "code", code)
		}
	})
	api.SetLocalDescriptionCallback(right, func(_ int, sdp, sdpType string, _ unsafe.Pointer) {
		logger.Debug("right produced description", "type", sdpType)
		if code := api.SetRemoteDescription(left, sdp, sdpType); code != capi.CodeSuccess {
			logger.Error("applying answer on left", "code", code)
		}
	})
	api.SetLocalCandidateCallback(left, func(_ int, candidate, mid string, _ unsafe.Pointer) {
		api.AddRemoteCandidate(right, candidate, mid)
	})
	api.SetLocalCandidateCallback(right, func(_ int, candidate, mid string, _ unsafe.Pointer) {
		api.AddRemoteCandidate(left, candidate, mid)
	})
	api.SetStateChangeCallback(left, func(_ int, state channel.State, ptr unsafe.Pointer) {
		logger.Info("connection state", "peer", (*peerTag)(ptr).name, "state", state)
	})
	api.SetStateChangeCallback(right, func(_ int, state channel.State, ptr unsafe.Pointer) {
		logger.Info("connection state", "peer", (*peerTag)(ptr).name, "state", state)
	})

	// The right side echoes everything back on the inbound channel it
	// receives. The channel handle arrives pre-seeded with the parent
	// connection's context pointer.
	api.SetDataChannelCallback(right, func(_, dc int, ptr unsafe.Pointer) {
		logger.Info("inbound data channel", "peer", (*peerTag)(ptr).name, "handle", dc)
		api.SetMessageCallback(dc, func(id int, data []byte, size int, _ unsafe.Pointer) {
			if code := api.Send(id, data, size); code != capi.CodeSuccess {
				logger.Error("echoing message", "code", code)
			}
		})
	})

	echoes := make(chan wire.Message, 2)
	opened := make(chan struct{}, 1)

	sender := api.CreateDataChannel(left, "loopback")
	if sender < 0 {
		return fmt.Errorf("creating data channel: code %d", sender)
	}
	api.SetUserPointer(sender, unsafe.Pointer(&peerTag{name: "left"}))
	api.SetOpenCallback(sender, func(int, unsafe.Pointer) {
		opened <- struct{}{}
	})
	api.SetMessageCallback(sender, func(_ int, data []byte, size int, _ unsafe.Pointer) {
		message, err := wire.Decode(data, size)
		if err != nil {
			logger.Error("decoding echo", "error", err)
			return
		}
		echoes <- message
	})

	if code := api.SetLocalDescription(left, "offer"); code != capi.CodeSuccess {
		return fmt.Errorf("creating offer: code %d", code)
	}

	deadline := time.After(*timeout)
	select {
	case <-opened:
	case <-deadline:
		return fmt.Errorf("data channel did not open within %v", *timeout)
	}
	logger.Info("data channel open", "bufferedAmount", api.GetBufferedAmount(sender))

	text := wire.Text("ping over the loopback")
	data, size := wire.Encode(text)
	if code := api.Send(sender, data, size); code != capi.CodeSuccess {
		return fmt.Errorf("sending text: code %d", code)
	}
	binary := wire.Binary([]byte{0x00, 0x01, 0x02, 0xff})
	data, size = wire.Encode(binary)
	if code := api.Send(sender, data, size); code != capi.CodeSuccess {
		return fmt.Errorf("sending binary: code %d", code)
	}

	for received := 0; received < 2; received++ {
		select {
		case message := <-echoes:
			if message.IsText() {
				fmt.Printf("echoed text: %q\n", message.String())
			} else {
				fmt.Printf("echoed binary: %d bytes\n", message.Len())
			}
		case <-deadline:
			return fmt.Errorf("echo did not arrive within %v", *timeout)
		}
	}

	fmt.Printf("cleaned up %d handles\n", api.Cleanup())
	return nil
}
