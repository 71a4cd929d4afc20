// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

// Command export builds the C-callable shared library. Every exported
// function is a thin translation of the corresponding capi.API method:
// C strings and (pointer, length) buffers are converted at the
// boundary, C function pointers are wrapped in Go closures that invoke
// them through the inline trampolines below, and all status codes pass
// through unchanged. Build with -buildmode=c-shared.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef void (*rtcbindHandleCallback)(int id, void *ptr);
typedef void (*rtcbindErrorCallback)(int id, const char *error, void *ptr);
typedef void (*rtcbindMessageCallback)(int id, const char *message, int size, void *ptr);
typedef void (*rtcbindDescriptionCallback)(int pc, const char *sdp, const char *type, void *ptr);
typedef void (*rtcbindCandidateCallback)(int pc, const char *cand, const char *mid, void *ptr);
typedef void (*rtcbindStateCallback)(int pc, int state, void *ptr);
typedef void (*rtcbindDataChannelCallback)(int pc, int dc, void *ptr);

static inline void invokeHandle(rtcbindHandleCallback cb, int id, void *ptr) {
  cb(id, ptr);
}
static inline void invokeError(rtcbindErrorCallback cb, int id, const char *error, void *ptr) {
  cb(id, error, ptr);
}
static inline void invokeMessage(rtcbindMessageCallback cb, int id, const char *message, int size, void *ptr) {
  cb(id, message, size, ptr);
}
static inline void invokeDescription(rtcbindDescriptionCallback cb, int pc, const char *sdp, const char *type, void *ptr) {
  cb(pc, sdp, type, ptr);
}
static inline void invokeCandidate(rtcbindCandidateCallback cb, int pc, const char *cand, const char *mid, void *ptr) {
  cb(pc, cand, mid, ptr);
}
static inline void invokeState(rtcbindStateCallback cb, int pc, int state, void *ptr) {
  cb(pc, state, ptr);
}
static inline void invokeDataChannel(rtcbindDataChannelCallback cb, int pc, int dc, void *ptr) {
  cb(pc, dc, ptr);
}
*/
import "C"

import (
	"log/slog"
	"os"
	"time"
	"unsafe"

	"github.com/rtcbind/rtcbind/capi"
	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/wire"
)

// One process-wide API instance backs all exported functions, matching
// the flat C surface.
var api = newAPI()

func newAPI() *capi.API {
	logger := defaultLogger()
	return capi.New(capi.DefaultBackends(logger), logger)
}

func defaultLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("RTCBIND_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// outBuffer maps the C copy-out convention onto the Go one: a NULL
// buffer requests sizing, anything else is a destination of exactly
// size bytes.
func outBuffer(buffer *C.char, size C.int) []byte {
	if buffer == nil || size < 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(buffer)), int(size))
}

// goStrings converts a C array of count strings.
func goStrings(array **C.char, count C.int) []string {
	if array == nil || count <= 0 {
		return nil
	}
	out := make([]string, 0, int(count))
	for _, s := range unsafe.Slice(array, int(count)) {
		out = append(out, C.GoString(s))
	}
	return out
}

//export rtcbindCreatePeerConnection
func rtcbindCreatePeerConnection(iceServers **C.char, count C.int) C.int {
	return C.int(api.CreatePeerConnection(goStrings(iceServers, count)))
}

//export rtcbindClosePeerConnection
func rtcbindClosePeerConnection(pc C.int) C.int {
	return C.int(api.ClosePeerConnection(int(pc)))
}

//export rtcbindDeletePeerConnection
func rtcbindDeletePeerConnection(pc C.int) C.int {
	return C.int(api.DeletePeerConnection(int(pc)))
}

//export rtcbindSetLocalDescription
func rtcbindSetLocalDescription(pc C.int, sdpType *C.char) C.int {
	return C.int(api.SetLocalDescription(int(pc), C.GoString(sdpType)))
}

//export rtcbindSetRemoteDescription
func rtcbindSetRemoteDescription(pc C.int, sdp, sdpType *C.char) C.int {
	return C.int(api.SetRemoteDescription(int(pc), C.GoString(sdp), C.GoString(sdpType)))
}

//export rtcbindAddRemoteCandidate
func rtcbindAddRemoteCandidate(pc C.int, candidate, mid *C.char) C.int {
	return C.int(api.AddRemoteCandidate(int(pc), C.GoString(candidate), C.GoString(mid)))
}

//export rtcbindGetLocalDescription
func rtcbindGetLocalDescription(pc C.int, buffer *C.char, size C.int) C.int {
	return C.int(api.GetLocalDescription(int(pc), outBuffer(buffer, size)))
}

//export rtcbindGetRemoteDescription
func rtcbindGetRemoteDescription(pc C.int, buffer *C.char, size C.int) C.int {
	return C.int(api.GetRemoteDescription(int(pc), outBuffer(buffer, size)))
}

//export rtcbindGetLocalDescriptionType
func rtcbindGetLocalDescriptionType(pc C.int, buffer *C.char, size C.int) C.int {
	return C.int(api.GetLocalDescriptionType(int(pc), outBuffer(buffer, size)))
}

//export rtcbindGetRemoteDescriptionType
func rtcbindGetRemoteDescriptionType(pc C.int, buffer *C.char, size C.int) C.int {
	return C.int(api.GetRemoteDescriptionType(int(pc), outBuffer(buffer, size)))
}

//export rtcbindCreateDataChannel
func rtcbindCreateDataChannel(pc C.int, label *C.char) C.int {
	return C.int(api.CreateDataChannel(int(pc), C.GoString(label)))
}

// rtcbindCreateDataChannelEx takes the init parameters flattened:
// negative maxPacketLifeTimeMs, maxRetransmits, and stream mean unset.
//
//export rtcbindCreateDataChannelEx
func rtcbindCreateDataChannelEx(pc C.int, label *C.char, unordered C.int, maxPacketLifeTimeMs, maxRetransmits C.int, protocol *C.char, negotiated C.int, stream C.int) C.int {
	init := channel.DataChannelInit{
		Protocol:   C.GoString(protocol),
		Negotiated: negotiated != 0,
		Stream:     int(stream),
	}
	init.Reliability.Unordered = unordered != 0
	if maxPacketLifeTimeMs >= 0 {
		lifetime := time.Duration(maxPacketLifeTimeMs) * time.Millisecond
		init.Reliability.MaxPacketLifeTime = &lifetime
	}
	if maxRetransmits >= 0 {
		retransmits := int(maxRetransmits)
		init.Reliability.MaxRetransmits = &retransmits
	}
	return C.int(api.CreateDataChannelEx(int(pc), C.GoString(label), init))
}

//export rtcbindCreateWebSocket
func rtcbindCreateWebSocket(url *C.char) C.int {
	return C.int(api.CreateWebSocket(C.GoString(url)))
}

// rtcbindCreateWebSocketEx takes the configuration flattened: zero
// connectTimeoutMs selects the default, negative disables the timeout.
//
//export rtcbindCreateWebSocketEx
func rtcbindCreateWebSocketEx(url *C.char, protocols **C.char, protocolCount C.int, connectTimeoutMs, pingIntervalMs C.int, maxMessageSize C.int) C.int {
	config := channel.WebSocketConfig{
		Protocols:      goStrings(protocols, protocolCount),
		PingInterval:   time.Duration(pingIntervalMs) * time.Millisecond,
		MaxMessageSize: int(maxMessageSize),
	}
	switch {
	case connectTimeoutMs > 0:
		config.ConnectTimeout = time.Duration(connectTimeoutMs) * time.Millisecond
	case connectTimeoutMs < 0:
		config.ConnectTimeout = -1
	}
	return C.int(api.CreateWebSocketEx(C.GoString(url), config))
}

// rtcbindSendMessage follows the signed-size convention: size >= 0
// sends that many bytes as binary, size < 0 sends data as a
// NUL-terminated text message.
//
//export rtcbindSendMessage
func rtcbindSendMessage(id C.int, data *C.char, size C.int) C.int {
	if size >= 0 {
		var payload []byte
		if data != nil {
			payload = C.GoBytes(unsafe.Pointer(data), size)
		}
		return C.int(api.Send(int(id), payload, int(size)))
	}
	if data == nil {
		return C.int(api.Send(int(id), nil, int(size)))
	}
	text := C.GoString(data)
	return C.int(api.Send(int(id), []byte(text), wire.EncodedLength(wire.Text(text))))
}

//export rtcbindClose
func rtcbindClose(id C.int) C.int {
	return C.int(api.Close(int(id)))
}

//export rtcbindDelete
func rtcbindDelete(id C.int) C.int {
	return C.int(api.Delete(int(id)))
}

//export rtcbindIsOpen
func rtcbindIsOpen(id C.int) C.int {
	if api.IsOpen(int(id)) {
		return 1
	}
	return 0
}

//export rtcbindIsClosed
func rtcbindIsClosed(id C.int) C.int {
	if api.IsClosed(int(id)) {
		return 1
	}
	return 0
}

//export rtcbindGetBufferedAmount
func rtcbindGetBufferedAmount(id C.int) C.int {
	return C.int(api.GetBufferedAmount(int(id)))
}

//export rtcbindSetBufferedAmountLowThreshold
func rtcbindSetBufferedAmountLowThreshold(id C.int, amount C.int) C.int {
	return C.int(api.SetBufferedAmountLowThreshold(int(id), int(amount)))
}

//export rtcbindGetDataChannelLabel
func rtcbindGetDataChannelLabel(dc C.int, buffer *C.char, size C.int) C.int {
	return C.int(api.GetDataChannelLabel(int(dc), outBuffer(buffer, size)))
}

//export rtcbindGetDataChannelProtocol
func rtcbindGetDataChannelProtocol(dc C.int, buffer *C.char, size C.int) C.int {
	return C.int(api.GetDataChannelProtocol(int(dc), outBuffer(buffer, size)))
}

//export rtcbindGetDataChannelStream
func rtcbindGetDataChannelStream(dc C.int) C.int {
	return C.int(api.GetDataChannelStream(int(dc)))
}

// rtcbindGetDataChannelReliability writes the reliability parameters
// through the out pointers: unset limits are written as -1.
//
//export rtcbindGetDataChannelReliability
func rtcbindGetDataChannelReliability(dc C.int, unordered, maxPacketLifeTimeMs, maxRetransmits *C.int) C.int {
	reliability, code := api.GetDataChannelReliability(int(dc))
	if code != capi.CodeSuccess {
		return C.int(code)
	}
	if unordered != nil {
		*unordered = boolToC(reliability.Unordered)
	}
	if maxPacketLifeTimeMs != nil {
		*maxPacketLifeTimeMs = -1
		if reliability.MaxPacketLifeTime != nil {
			*maxPacketLifeTimeMs = C.int(reliability.MaxPacketLifeTime.Milliseconds())
		}
	}
	if maxRetransmits != nil {
		*maxRetransmits = -1
		if reliability.MaxRetransmits != nil {
			*maxRetransmits = C.int(*reliability.MaxRetransmits)
		}
	}
	return C.int(capi.CodeSuccess)
}

func boolToC(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

//export rtcbindSetUserPointer
func rtcbindSetUserPointer(id C.int, ptr unsafe.Pointer) C.int {
	return C.int(api.SetUserPointer(int(id), ptr))
}

//export rtcbindGetUserPointer
func rtcbindGetUserPointer(id C.int) unsafe.Pointer {
	return api.UserPointer(int(id))
}

//export rtcbindPreload
func rtcbindPreload() {
	api.Preload()
}

//export rtcbindCleanup
func rtcbindCleanup() C.int {
	return C.int(api.Cleanup())
}

//export rtcbindSetOpenCallback
func rtcbindSetOpenCallback(id C.int, cb C.rtcbindHandleCallback) C.int {
	if cb == nil {
		return C.int(api.SetOpenCallback(int(id), nil))
	}
	return C.int(api.SetOpenCallback(int(id), func(handle int, ptr unsafe.Pointer) {
		C.invokeHandle(cb, C.int(handle), ptr)
	}))
}

//export rtcbindSetClosedCallback
func rtcbindSetClosedCallback(id C.int, cb C.rtcbindHandleCallback) C.int {
	if cb == nil {
		return C.int(api.SetClosedCallback(int(id), nil))
	}
	return C.int(api.SetClosedCallback(int(id), func(handle int, ptr unsafe.Pointer) {
		C.invokeHandle(cb, C.int(handle), ptr)
	}))
}

//export rtcbindSetErrorCallback
func rtcbindSetErrorCallback(id C.int, cb C.rtcbindErrorCallback) C.int {
	if cb == nil {
		return C.int(api.SetErrorCallback(int(id), nil))
	}
	return C.int(api.SetErrorCallback(int(id), func(handle int, message string, ptr unsafe.Pointer) {
		cMessage := C.CString(message)
		defer C.free(unsafe.Pointer(cMessage))
		C.invokeError(cb, C.int(handle), cMessage, ptr)
	}))
}

//export rtcbindSetMessageCallback
func rtcbindSetMessageCallback(id C.int, cb C.rtcbindMessageCallback) C.int {
	if cb == nil {
		return C.int(api.SetMessageCallback(int(id), nil))
	}
	return C.int(api.SetMessageCallback(int(id), func(handle int, data []byte, size int, ptr unsafe.Pointer) {
		// Text payloads (negative size) are delivered NUL-terminated,
		// binary payloads exactly as sized. The pointer is only valid
		// for the duration of the call.
		buf := make([]byte, len(data)+1)
		copy(buf, data)
		C.invokeMessage(cb, C.int(handle), (*C.char)(unsafe.Pointer(&buf[0])), C.int(size), ptr)
	}))
}

//export rtcbindSetBufferedAmountLowCallback
func rtcbindSetBufferedAmountLowCallback(id C.int, cb C.rtcbindHandleCallback) C.int {
	if cb == nil {
		return C.int(api.SetBufferedAmountLowCallback(int(id), nil))
	}
	return C.int(api.SetBufferedAmountLowCallback(int(id), func(handle int, ptr unsafe.Pointer) {
		C.invokeHandle(cb, C.int(handle), ptr)
	}))
}

//export rtcbindSetLocalDescriptionCallback
func rtcbindSetLocalDescriptionCallback(pc C.int, cb C.rtcbindDescriptionCallback) C.int {
	if cb == nil {
		return C.int(api.SetLocalDescriptionCallback(int(pc), nil))
	}
	return C.int(api.SetLocalDescriptionCallback(int(pc), func(handle int, sdp, sdpType string, ptr unsafe.Pointer) {
		cSDP := C.CString(sdp)
		cType := C.CString(sdpType)
		defer C.free(unsafe.Pointer(cSDP))
		defer C.free(unsafe.Pointer(cType))
		C.invokeDescription(cb, C.int(handle), cSDP, cType, ptr)
	}))
}

//export rtcbindSetLocalCandidateCallback
func rtcbindSetLocalCandidateCallback(pc C.int, cb C.rtcbindCandidateCallback) C.int {
	if cb == nil {
		return C.int(api.SetLocalCandidateCallback(int(pc), nil))
	}
	return C.int(api.SetLocalCandidateCallback(int(pc), func(handle int, candidate, mid string, ptr unsafe.Pointer) {
		cCandidate := C.CString(candidate)
		cMid := C.CString(mid)
		defer C.free(unsafe.Pointer(cCandidate))
		defer C.free(unsafe.Pointer(cMid))
		C.invokeCandidate(cb, C.int(handle), cCandidate, cMid, ptr)
	}))
}

//export rtcbindSetStateChangeCallback
func rtcbindSetStateChangeCallback(pc C.int, cb C.rtcbindStateCallback) C.int {
	if cb == nil {
		return C.int(api.SetStateChangeCallback(int(pc), nil))
	}
	return C.int(api.SetStateChangeCallback(int(pc), func(handle int, state channel.State, ptr unsafe.Pointer) {
		C.invokeState(cb, C.int(handle), C.int(state), ptr)
	}))
}

//export rtcbindSetIceStateChangeCallback
func rtcbindSetIceStateChangeCallback(pc C.int, cb C.rtcbindStateCallback) C.int {
	if cb == nil {
		return C.int(api.SetIceStateChangeCallback(int(pc), nil))
	}
	return C.int(api.SetIceStateChangeCallback(int(pc), func(handle int, state channel.IceState, ptr unsafe.Pointer) {
		C.invokeState(cb, C.int(handle), C.int(state), ptr)
	}))
}

//export rtcbindSetGatheringStateChangeCallback
func rtcbindSetGatheringStateChangeCallback(pc C.int, cb C.rtcbindStateCallback) C.int {
	if cb == nil {
		return C.int(api.SetGatheringStateChangeCallback(int(pc), nil))
	}
	return C.int(api.SetGatheringStateChangeCallback(int(pc), func(handle int, state channel.GatheringState, ptr unsafe.Pointer) {
		C.invokeState(cb, C.int(handle), C.int(state), ptr)
	}))
}

//export rtcbindSetSignalingStateChangeCallback
func rtcbindSetSignalingStateChangeCallback(pc C.int, cb C.rtcbindStateCallback) C.int {
	if cb == nil {
		return C.int(api.SetSignalingStateChangeCallback(int(pc), nil))
	}
	return C.int(api.SetSignalingStateChangeCallback(int(pc), func(handle int, state channel.SignalingState, ptr unsafe.Pointer) {
		C.invokeState(cb, C.int(handle), C.int(state), ptr)
	}))
}

//export rtcbindSetDataChannelCallback
func rtcbindSetDataChannelCallback(pc C.int, cb C.rtcbindDataChannelCallback) C.int {
	if cb == nil {
		return C.int(api.SetDataChannelCallback(int(pc), nil))
	}
	return C.int(api.SetDataChannelCallback(int(pc), func(pcHandle, dcHandle int, ptr unsafe.Pointer) {
		C.invokeDataChannel(cb, C.int(pcHandle), C.int(dcHandle), ptr)
	}))
}

func main() {}
