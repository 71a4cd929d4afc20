// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package capi

import (
	"errors"

	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/registry"
	"github.com/rtcbind/rtcbind/wire"
)

// Foreign return codes. Every entry point returns CodeSuccess or a
// non-negative value on success and one of the negative codes on
// failure; no error value ever crosses the boundary.
const (
	CodeSuccess      = 0
	CodeInvalid      = -1 // malformed or missing input, unknown handle
	CodeFailure      = -2 // any other internal or backend failure
	CodeNotAvailable = -3 // well-formed request for a value that does not exist yet
	CodeTooSmall     = -4 // copy-out destination buffer insufficient
)

// errInvalid marks locally detected argument errors (nil required
// pointers, empty required strings) for translation to CodeInvalid.
var errInvalid = errors.New("capi: invalid argument")

// translate maps an internal error to its foreign return code.
func translate(err error) int {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, registry.ErrNotFound),
		errors.Is(err, channel.ErrConflictingReliability),
		errors.Is(err, channel.ErrUnknownDescriptionType),
		errors.Is(err, wire.ErrNilData),
		errors.Is(err, errInvalid):
		return CodeInvalid
	case errors.Is(err, channel.ErrNotAvailable):
		return CodeNotAvailable
	case errors.Is(err, wire.ErrBufferTooSmall):
		return CodeTooSmall
	default:
		return CodeFailure
	}
}

// wrap executes op and translates its outcome to a foreign return
// code. A non-negative value returned by op passes through unchanged
// (sizing queries and buffered amounts return counts, not codes).
// Panics are caught here so that no fault can cross the boundary.
func (api *API) wrap(name string, op func() (int, error)) (result int) {
	defer func() {
		if recovered := recover(); recovered != nil {
			api.logger.Error("panic at foreign boundary", "op", name, "panic", recovered)
			result = CodeFailure
		}
	}()

	value, err := op()
	if err != nil {
		code := translate(err)
		if code == CodeFailure {
			api.logger.Warn("foreign call failed", "op", name, "error", err)
		}
		return code
	}
	return value
}
