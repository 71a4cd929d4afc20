// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the two data conventions of the foreign
// boundary.
//
// The message codec transmits a [Message] — binary bytes or UTF-8
// text — over a single (data, size) pair with no explicit type tag:
// a non-negative size is binary of that length, a negative size is
// text whose encoded length is -size - 1. [Encode] and [Decode]
// round-trip the convention; [EncodedLength] computes the signed size
// alone.
//
// The copy-out protocol ([CopyString], [CopyBytes]) returns
// variable-length values into caller-owned buffers: a nil destination
// is a sizing query, a short destination fails without a partial
// write, and text values gain a NUL terminator that binary values do
// not. A caller probes with nil, allocates exactly the reported size,
// and retries.
package wire
