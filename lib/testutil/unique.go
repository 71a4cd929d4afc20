// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use this instead of time.Now()
// when tests need message bodies or labels that must be
// distinguishable on a shared transport.
//
//	label := testutil.UniqueID("chat")      // "chat-1", "chat-2", ...
//	body := testutil.UniqueID("hello")      // "hello-3", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
