// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package pion

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pion/webrtc/v4"

	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/wire"
)

// Compile-time interface check.
var _ channel.DataChannel = (*DataChannel)(nil)

// DataChannel implements channel.DataChannel on a pion data channel.
// pion's On* registration is single-slot, so the adapter installs its
// own handlers exactly once and fans events out to the swappable user
// callbacks stored under dc.mu.
type DataChannel struct {
	dc     *webrtc.DataChannel
	logger *slog.Logger

	mu     sync.Mutex
	open   bool
	closed bool

	openCallback              func()
	closedCallback            func()
	errorCallback             func(message string)
	messageCallback           func(message wire.Message)
	bufferedAmountLowCallback func()
}

func newDataChannel(dc *webrtc.DataChannel, logger *slog.Logger) *DataChannel {
	adapter := &DataChannel{dc: dc, logger: logger}

	dc.OnOpen(func() {
		adapter.mu.Lock()
		adapter.open = true
		callback := adapter.openCallback
		adapter.mu.Unlock()

		logger.Debug("data channel open", "label", dc.Label())
		if callback != nil {
			callback()
		}
	})

	dc.OnClose(func() {
		adapter.mu.Lock()
		adapter.open = false
		adapter.closed = true
		callback := adapter.closedCallback
		adapter.mu.Unlock()

		logger.Debug("data channel closed", "label", dc.Label())
		if callback != nil {
			callback()
		}
	})

	dc.OnError(func(err error) {
		adapter.mu.Lock()
		callback := adapter.errorCallback
		adapter.mu.Unlock()

		logger.Debug("data channel error", "label", dc.Label(), "error", err)
		if callback != nil && err != nil {
			callback(err.Error())
		}
	})

	dc.OnMessage(func(incoming webrtc.DataChannelMessage) {
		adapter.mu.Lock()
		callback := adapter.messageCallback
		adapter.mu.Unlock()
		if callback == nil {
			return
		}
		if incoming.IsString {
			callback(wire.Text(string(incoming.Data)))
		} else {
			callback(wire.Binary(incoming.Data))
		}
	})

	dc.OnBufferedAmountLow(func() {
		adapter.mu.Lock()
		callback := adapter.bufferedAmountLowCallback
		adapter.mu.Unlock()
		if callback != nil {
			callback()
		}
	})

	return adapter
}

// Close shuts the channel down. Idempotent; the mirrored closed flag
// flips immediately so IsClosed does not wait for the SCTP teardown
// event.
func (adapter *DataChannel) Close() error {
	adapter.mu.Lock()
	adapter.open = false
	adapter.closed = true
	adapter.mu.Unlock()

	if err := adapter.dc.Close(); err != nil {
		return fmt.Errorf("closing data channel %q: %w", adapter.dc.Label(), err)
	}
	return nil
}

// IsOpen reports whether the channel has confirmed open and has not
// closed since.
func (adapter *DataChannel) IsOpen() bool {
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	return adapter.open
}

// IsClosed reports whether the channel has reached its terminal state.
func (adapter *DataChannel) IsClosed() bool {
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	return adapter.closed
}

// Send transmits a message, preserving the text/binary distinction on
// the SCTP payload protocol identifier.
func (adapter *DataChannel) Send(message wire.Message) error {
	if !adapter.IsOpen() {
		return channel.ErrNotOpen
	}
	var err error
	if message.IsText() {
		err = adapter.dc.SendText(message.String())
	} else {
		err = adapter.dc.Send(message.Bytes())
	}
	if err != nil {
		return fmt.Errorf("sending on data channel %q: %w", adapter.dc.Label(), err)
	}
	return nil
}

// BufferedAmount returns the bytes queued for transmission.
func (adapter *DataChannel) BufferedAmount() (int, error) {
	return int(adapter.dc.BufferedAmount()), nil
}

// SetBufferedAmountLowThreshold sets the drain level at which the
// buffered-amount-low callback fires.
func (adapter *DataChannel) SetBufferedAmountLowThreshold(amount int) error {
	adapter.dc.SetBufferedAmountLowThreshold(uint64(amount))
	return nil
}

func (adapter *DataChannel) OnOpen(callback func()) {
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	adapter.openCallback = callback
}

func (adapter *DataChannel) OnClosed(callback func()) {
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	adapter.closedCallback = callback
}

func (adapter *DataChannel) OnError(callback func(message string)) {
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	adapter.errorCallback = callback
}

func (adapter *DataChannel) OnMessage(callback func(message wire.Message)) {
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	adapter.messageCallback = callback
}

func (adapter *DataChannel) OnBufferedAmountLow(callback func()) {
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	adapter.bufferedAmountLowCallback = callback
}

// Label returns the channel label.
func (adapter *DataChannel) Label() string {
	return adapter.dc.Label()
}

// Protocol returns the negotiated subprotocol, empty if none.
func (adapter *DataChannel) Protocol() string {
	return adapter.dc.Protocol()
}

// Stream returns the SCTP stream id, or -1 before assignment.
func (adapter *DataChannel) Stream() int {
	if id := adapter.dc.ID(); id != nil {
		return int(*id)
	}
	return -1
}

// Reliability reconstructs the reliability descriptor from the
// negotiated channel parameters. Unreliable is true exactly when one
// of the partial-reliability limits is set.
func (adapter *DataChannel) Reliability() (channel.Reliability, error) {
	reliability := channel.Reliability{
		Unordered: !adapter.dc.Ordered(),
	}
	if lifetime := adapter.dc.MaxPacketLifeTime(); lifetime != nil {
		duration := time.Duration(*lifetime) * time.Millisecond
		reliability.Unreliable = true
		reliability.MaxPacketLifeTime = &duration
	} else if retransmits := adapter.dc.MaxRetransmits(); retransmits != nil {
		count := int(*retransmits)
		reliability.Unreliable = true
		reliability.MaxRetransmits = &count
	}
	return reliability, nil
}
