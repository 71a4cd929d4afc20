// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "errors"

// ErrNilData is returned by Decode when data is nil but size implies a
// non-empty payload.
var ErrNilData = errors.New("wire: nil data with nonzero size")

// EncodedLength returns the signed length that represents m on the
// wire: the byte length for binary, -(byte length + 1) for text. The
// extra one on the text side keeps zero-length text distinguishable
// from zero-length binary — empty text encodes as -1, empty binary as
// 0.
func EncodedLength(m Message) int {
	if m.text {
		return -(len(m.data) + 1)
	}
	return len(m.data)
}

// Encode converts m to the (data, size) pair transmitted across the
// boundary. The returned slice aliases the message payload.
func Encode(m Message) ([]byte, int) {
	return m.data, EncodedLength(m)
}

// Decode converts a (data, size) pair back into a Message. A size of
// zero or more is a binary payload of exactly that many bytes of data
// (which may contain NUL bytes — binary is never truncated). A
// negative size is a text payload of -size - 1 bytes; in particular
// size == -1 always decodes as the empty text message, never as an
// "unspecified length" marker. Callers that hold a NUL-terminated C
// string of unknown length must measure it before calling Decode.
func Decode(data []byte, size int) (Message, error) {
	if size >= 0 {
		if data == nil && size != 0 {
			return Message{}, ErrNilData
		}
		if len(data) < size {
			return Message{}, errors.New("wire: data shorter than declared size")
		}
		return Binary(data[:size:size]), nil
	}

	length := -size - 1
	if data == nil && length != 0 {
		return Message{}, ErrNilData
	}
	if len(data) < length {
		return Message{}, errors.New("wire: data shorter than declared size")
	}
	return Text(string(data[:length])), nil
}
