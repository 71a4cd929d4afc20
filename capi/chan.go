// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package capi

import (
	"fmt"

	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/registry"
	"github.com/rtcbind/rtcbind/wire"
)

// CreateWebSocket starts connecting a WebSocket to url and returns its
// handle. Connection progress is reported through the open, error, and
// closed callbacks.
func (api *API) CreateWebSocket(url string) int {
	return api.CreateWebSocketEx(url, channel.WebSocketConfig{})
}

// CreateWebSocketEx is CreateWebSocket with explicit client
// configuration.
func (api *API) CreateWebSocketEx(url string, config channel.WebSocketConfig) int {
	return api.wrap("CreateWebSocketEx", func() (int, error) {
		if url == "" {
			return 0, fmt.Errorf("%w: empty URL", errInvalid)
		}
		socket, err := api.backends.NewWebSocket(url, config)
		if err != nil {
			return 0, err
		}
		handle := api.channels.Insert(socket)
		api.logger.Debug("websocket created", "handle", handle, "url", url)
		return handle, nil
	})
}

// Send transmits a message on the channel identified by handle. The
// size parameter carries the codec's signed-length convention: size >=
// 0 sends the first size bytes of data as binary, size < 0 sends text
// of encoded length -size - 1.
func (api *API) Send(handle int, data []byte, size int) int {
	return api.wrap("Send", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		if data == nil && size != 0 {
			return 0, fmt.Errorf("%w: nil data with size %d", errInvalid, size)
		}
		message, err := wire.Decode(data, size)
		if err != nil {
			return 0, err
		}
		if err := chn.Send(message); err != nil {
			return 0, err
		}
		return CodeSuccess, nil
	})
}

// Close shuts the channel down without erasing its handle; a closed
// handle remains valid for queries until deleted.
func (api *API) Close(handle int) int {
	return api.wrap("Close", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		if err := chn.Close(); err != nil {
			return 0, err
		}
		return CodeSuccess, nil
	})
}

// Delete closes the channel and erases its handle. Subsequent
// operations on the handle fail with CodeInvalid.
func (api *API) Delete(handle int) int {
	return api.wrap("Delete", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		chn.Close()
		if err := api.channels.Erase(handle); err != nil {
			return 0, err
		}
		api.logger.Debug("channel deleted", "handle", handle)
		return CodeSuccess, nil
	})
}

// IsOpen reports whether the channel is open. False for unknown
// handles.
func (api *API) IsOpen(handle int) bool {
	chn, err := api.channels.Get(handle)
	return err == nil && chn.IsOpen()
}

// IsClosed reports whether the channel has reached its terminal
// state. False for unknown handles.
func (api *API) IsClosed(handle int) bool {
	chn, err := api.channels.Get(handle)
	return err == nil && chn.IsClosed()
}

// GetBufferedAmount returns the number of bytes queued for
// transmission on the channel.
func (api *API) GetBufferedAmount(handle int) int {
	return api.wrap("GetBufferedAmount", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		return chn.BufferedAmount()
	})
}

// SetBufferedAmountLowThreshold configures the drain level at which
// the buffered-amount-low callback fires.
func (api *API) SetBufferedAmountLowThreshold(handle, amount int) int {
	return api.wrap("SetBufferedAmountLowThreshold", func() (int, error) {
		chn, err := api.channels.Get(handle)
		if err != nil {
			return 0, err
		}
		if err := chn.SetBufferedAmountLowThreshold(amount); err != nil {
			return 0, err
		}
		return CodeSuccess, nil
	})
}

// GetDataChannelLabel copies the data channel's label out through
// buffer, following the sizing protocol.
func (api *API) GetDataChannelLabel(handle int, buffer []byte) int {
	return api.wrap("GetDataChannelLabel", func() (int, error) {
		dc, err := api.dataChannel(handle)
		if err != nil {
			return 0, err
		}
		return wire.CopyString(dc.Label(), buffer)
	})
}

// GetDataChannelProtocol copies the data channel's subprotocol out
// through buffer, following the sizing protocol.
func (api *API) GetDataChannelProtocol(handle int, buffer []byte) int {
	return api.wrap("GetDataChannelProtocol", func() (int, error) {
		dc, err := api.dataChannel(handle)
		if err != nil {
			return 0, err
		}
		return wire.CopyString(dc.Protocol(), buffer)
	})
}

// GetDataChannelStream returns the channel's SCTP stream id, or
// CodeNotAvailable before one is assigned.
func (api *API) GetDataChannelStream(handle int) int {
	return api.wrap("GetDataChannelStream", func() (int, error) {
		dc, err := api.dataChannel(handle)
		if err != nil {
			return 0, err
		}
		stream := dc.Stream()
		if stream < 0 {
			return 0, channel.ErrNotAvailable
		}
		return stream, nil
	})
}

// GetDataChannelReliability returns the channel's reliability
// descriptor and a return code. Unreliable is reconstructed as true
// whenever either partial-reliability limit is set.
func (api *API) GetDataChannelReliability(handle int) (channel.Reliability, int) {
	var reliability channel.Reliability
	code := api.wrap("GetDataChannelReliability", func() (int, error) {
		dc, err := api.dataChannel(handle)
		if err != nil {
			return 0, err
		}
		reliability, err = dc.Reliability()
		if err != nil {
			return 0, err
		}
		return CodeSuccess, nil
	})
	return reliability, code
}

// dataChannel resolves handle to a data channel. A handle that exists
// but belongs to a WebSocket resolves like an unknown handle: the
// data-channel operations do not apply to it.
func (api *API) dataChannel(handle int) (channel.DataChannel, error) {
	chn, err := api.channels.Get(handle)
	if err != nil {
		return nil, err
	}
	dc, ok := chn.(channel.DataChannel)
	if !ok {
		return nil, fmt.Errorf("%w: handle %d is not a data channel", registry.ErrNotFound, handle)
	}
	return dc, nil
}
