// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "errors"

// ErrBufferTooSmall is returned when a copy-out destination cannot hold
// the full value. No partial copy is performed.
var ErrBufferTooSmall = errors.New("wire: buffer too small")

// CopyString copies s into dst followed by a single NUL terminator,
// following the two-phase sizing protocol: when dst is nil, no copy is
// performed and the required capacity (len(s) + 1, terminator included)
// is returned. When dst is non-nil but shorter than required,
// ErrBufferTooSmall is returned and dst is left unmodified. On success
// the returned count excludes the terminator: the sizing query answers
// "how much to allocate", the copy answers "how long is the string".
func CopyString(s string, dst []byte) (int, error) {
	required := len(s) + 1
	if dst == nil {
		return required, nil
	}
	if len(dst) < required {
		return 0, ErrBufferTooSmall
	}
	copy(dst, s)
	dst[len(s)] = 0
	return len(s), nil
}

// CopyBytes copies b into dst with no terminator. A nil dst returns the
// required capacity (exactly len(b)); a short dst returns
// ErrBufferTooSmall with dst unmodified. On success the byte count
// copied is returned.
func CopyBytes(b []byte, dst []byte) (int, error) {
	if dst == nil {
		return len(b), nil
	}
	if len(dst) < len(b) {
		return 0, ErrBufferTooSmall
	}
	copy(dst, b)
	return len(b), nil
}
