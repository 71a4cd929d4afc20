// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package ws is the bridged-host backend adapter: it implements
// channel.Channel on a coder/websocket client connection, sourcing
// open, message, error, and closed events from a dial goroutine and a
// read loop instead of a native engine.
//
// The adapter follows the same lifecycle contract as the data channel
// backend: creation starts the asynchronous open, readiness is
// confirmed by the open event, a backend-originated end of stream or a
// foreign Close forces the terminal closed state, and the closed event
// fires exactly once. Send preserves the text/binary frame
// distinction and fails with channel.ErrNotOpen before the handshake
// completes or after closure.
package ws
