// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"errors"

	"github.com/rtcbind/rtcbind/wire"
)

// ErrNotOpen is returned by Send when the underlying transport is not
// open: either it never finished opening or it has been closed.
var ErrNotOpen = errors.New("channel: not open")

// ErrNotAvailable is returned by read accessors whose value does not
// exist yet, such as a local description before negotiation.
var ErrNotAvailable = errors.New("channel: not available")

// Channel is the capability shared by data channels and web sockets: a
// message-oriented, bidirectional pipe with single-slot event
// callbacks. Implementations own their internal synchronization;
// callers may invoke any method from any goroutine.
//
// Each On* method stores at most one callback per event family.
// Registering replaces the previous callback; registering nil clears
// it. Callbacks are invoked synchronously on the event source's
// goroutine.
type Channel interface {
	// Close shuts the channel down. Idempotent; a closed channel
	// remains queryable.
	Close() error

	// IsOpen reports whether the transport has confirmed readiness
	// and has not yet closed.
	IsOpen() bool

	// IsClosed reports whether the channel has reached its terminal
	// closed state.
	IsClosed() bool

	// Send transmits a message. Returns ErrNotOpen when the transport
	// is not open; an empty text message is valid and distinct from
	// zero-length binary.
	Send(message wire.Message) error

	// BufferedAmount returns the number of bytes queued for
	// transmission but not yet sent.
	BufferedAmount() (int, error)

	// SetBufferedAmountLowThreshold sets the level at or below which
	// the buffered-amount-low callback fires as queued data drains.
	SetBufferedAmountLowThreshold(amount int) error

	OnOpen(callback func())
	OnClosed(callback func())
	OnError(callback func(message string))
	OnMessage(callback func(message wire.Message))
	OnBufferedAmountLow(callback func())
}

// DataChannel extends Channel with the attributes negotiated at
// creation.
type DataChannel interface {
	Channel

	// Label returns the channel's label.
	Label() string

	// Protocol returns the application subprotocol, empty if none.
	Protocol() string

	// Stream returns the SCTP stream id, or -1 before the id is
	// assigned.
	Stream() int

	// Reliability returns the channel's reliability descriptor.
	Reliability() (Reliability, error)
}
