// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for rtcbind packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls. Almost
// everything interesting in this module happens on a backend goroutine
// and surfaces through a callback, so tests funnel callback arguments
// into channels and use these helpers to wait without hanging the
// suite on a lost event.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation. Use it instead of time.Now() when tests need
// distinguishable labels or message bodies on shared transports.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no rtcbind-internal dependencies.
package testutil
