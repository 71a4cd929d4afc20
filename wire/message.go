// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// Message is the payload carried over a channel: either raw binary
// bytes or UTF-8 text. The distinction is preserved end to end — the
// receiving side observes the same kind the sender chose.
type Message struct {
	text bool
	data []byte
}

// Binary returns a binary message carrying data. The slice is not
// copied; callers that reuse buffers must copy first. A nil or empty
// slice is a valid zero-length binary message.
func Binary(data []byte) Message {
	return Message{data: data}
}

// Text returns a text message carrying s.
func Text(s string) Message {
	return Message{text: true, data: []byte(s)}
}

// IsText reports whether the message is text.
func (m Message) IsText() bool { return m.text }

// Bytes returns the payload bytes. For text messages this is the UTF-8
// encoding without any terminator.
func (m Message) Bytes() []byte { return m.data }

// String returns the payload as a string. Meaningful for text
// messages; for binary it returns the raw bytes reinterpreted.
func (m Message) String() string { return string(m.data) }

// Len returns the payload length in bytes.
func (m Message) Len() int { return len(m.data) }
