// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"errors"
	"time"
)

// ErrConflictingReliability is returned when a reliability descriptor
// sets both MaxPacketLifeTime and MaxRetransmits; at most one may be
// set.
var ErrConflictingReliability = errors.New("channel: both maxPacketLifeTime and maxRetransmits are set")

// Reliability describes a data channel's delivery guarantees.
// Unreliable is true exactly when MaxPacketLifeTime or MaxRetransmits
// is set; a descriptor with neither is fully reliable.
type Reliability struct {
	// Unordered allows out-of-order delivery.
	Unordered bool

	// Unreliable marks partial-reliability mode. Derived from the two
	// limits below; callers constructing a descriptor need not set it.
	Unreliable bool

	// MaxPacketLifeTime bounds retransmission by time. Nil means no
	// time limit.
	MaxPacketLifeTime *time.Duration

	// MaxRetransmits bounds retransmission by count. Nil means no
	// count limit.
	MaxRetransmits *int
}

// Validate checks the mutual exclusivity of the two partial-reliability
// limits.
func (r Reliability) Validate() error {
	if r.MaxPacketLifeTime != nil && r.MaxRetransmits != nil {
		return ErrConflictingReliability
	}
	return nil
}

// DataChannelInit carries the creation parameters of an outgoing data
// channel.
type DataChannelInit struct {
	Reliability Reliability

	// Protocol is the application subprotocol, empty for none.
	Protocol string

	// Negotiated disables in-band negotiation; both sides must create
	// the channel with the same Stream id.
	Negotiated bool

	// Stream is the SCTP stream id used when Negotiated is true.
	// Negative means automatic assignment.
	Stream int
}
