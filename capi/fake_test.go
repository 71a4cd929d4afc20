// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package capi

import (
	"sync"
	"time"

	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/wire"
)

// dataChannelInit builds an unordered partially-reliable init when a
// lifetime is given, a plain ordered reliable one otherwise.
func dataChannelInit(protocol string, lifetime *time.Duration) channel.DataChannelInit {
	init := channel.DataChannelInit{Protocol: protocol, Stream: -1}
	if lifetime != nil {
		init.Reliability.Unordered = true
		init.Reliability.MaxPacketLifeTime = lifetime
	}
	return init
}

// fakeChannel is a scripted channel.Channel. Tests flip its state and
// fire its events directly; everything is synchronous.
type fakeChannel struct {
	mu        sync.Mutex
	open      bool
	closed    bool
	sent      []wire.Message
	sendErr   error
	buffered  int
	threshold int

	closeCount int
	closePanic bool

	onOpen    func()
	onClosed  func()
	onError   func(string)
	onMessage func(wire.Message)
	onLow     func()
}

var _ channel.Channel = (*fakeChannel)(nil)

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closePanic {
		panic("close exploded")
	}
	f.closeCount++
	f.open = false
	f.closed = true
	return nil
}

func (f *fakeChannel) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *fakeChannel) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeChannel) Send(message wire.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	if !f.open {
		return channel.ErrNotOpen
	}
	f.sent = append(f.sent, message)
	return nil
}

func (f *fakeChannel) BufferedAmount() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buffered, nil
}

func (f *fakeChannel) SetBufferedAmountLowThreshold(amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threshold = amount
	return nil
}

func (f *fakeChannel) OnOpen(callback func()) { f.mu.Lock(); f.onOpen = callback; f.mu.Unlock() }

func (f *fakeChannel) OnClosed(callback func()) { f.mu.Lock(); f.onClosed = callback; f.mu.Unlock() }

func (f *fakeChannel) OnError(callback func(string)) { f.mu.Lock(); f.onError = callback; f.mu.Unlock() }

func (f *fakeChannel) OnMessage(callback func(wire.Message)) {
	f.mu.Lock()
	f.onMessage = callback
	f.mu.Unlock()
}

func (f *fakeChannel) OnBufferedAmountLow(callback func()) { f.mu.Lock(); f.onLow = callback; f.mu.Unlock() }

func (f *fakeChannel) fireOpen() {
	f.mu.Lock()
	f.open = true
	callback := f.onOpen
	f.mu.Unlock()
	if callback != nil {
		callback()
	}
}

func (f *fakeChannel) fireMessage(message wire.Message) {
	f.mu.Lock()
	callback := f.onMessage
	f.mu.Unlock()
	if callback != nil {
		callback(message)
	}
}

func (f *fakeChannel) fireError(message string) {
	f.mu.Lock()
	callback := f.onError
	f.mu.Unlock()
	if callback != nil {
		callback(message)
	}
}

// fakeDataChannel extends fakeChannel with the negotiated attributes.
type fakeDataChannel struct {
	fakeChannel
	label       string
	protocol    string
	stream      int
	reliability channel.Reliability
}

var _ channel.DataChannel = (*fakeDataChannel)(nil)

func (f *fakeDataChannel) Label() string    { return f.label }
func (f *fakeDataChannel) Protocol() string { return f.protocol }
func (f *fakeDataChannel) Stream() int      { return f.stream }

func (f *fakeDataChannel) Reliability() (channel.Reliability, error) {
	return f.reliability, nil
}

// fakePeerConnection is a scripted channel.PeerConnection. Descriptions
// are recorded verbatim; SetLocalDescription synthesizes one and fires
// the local-description callback like the real backend.
type fakePeerConnection struct {
	mu         sync.Mutex
	closeCount int
	local      *channel.Description
	remote     *channel.Description
	candidates []channel.Candidate
	created    []*fakeDataChannel

	state channel.State

	onLocalDescription func(channel.Description)
	onLocalCandidate   func(channel.Candidate)
	onStateChange      func(channel.State)
	onIceStateChange   func(channel.IceState)
	onGatheringState   func(channel.GatheringState)
	onSignalingState   func(channel.SignalingState)
	onDataChannel      func(channel.DataChannel)
}

var _ channel.PeerConnection = (*fakePeerConnection)(nil)

func (f *fakePeerConnection) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCount++
	return nil
}

func (f *fakePeerConnection) CreateDataChannel(label string, init channel.DataChannelInit) (channel.DataChannel, error) {
	if err := init.Reliability.Validate(); err != nil {
		return nil, err
	}
	dc := &fakeDataChannel{
		label:       label,
		protocol:    init.Protocol,
		stream:      init.Stream,
		reliability: init.Reliability,
	}
	f.mu.Lock()
	f.created = append(f.created, dc)
	f.mu.Unlock()
	return dc, nil
}

func (f *fakePeerConnection) SetLocalDescription(sdpType string) error {
	if sdpType == "" {
		sdpType = "offer"
	}
	description := channel.Description{SDP: "v=0 fake", Type: sdpType}
	f.mu.Lock()
	f.local = &description
	callback := f.onLocalDescription
	f.mu.Unlock()
	if callback != nil {
		callback(description)
	}
	return nil
}

func (f *fakePeerConnection) SetRemoteDescription(sdp, sdpType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remote = &channel.Description{SDP: sdp, Type: sdpType}
	return nil
}

func (f *fakePeerConnection) AddRemoteCandidate(candidate, mid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.candidates = append(f.candidates, channel.Candidate{Candidate: candidate, Mid: mid})
	return nil
}

func (f *fakePeerConnection) LocalDescription() (channel.Description, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.local == nil {
		return channel.Description{}, channel.ErrNotAvailable
	}
	return *f.local, nil
}

func (f *fakePeerConnection) RemoteDescription() (channel.Description, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.remote == nil {
		return channel.Description{}, channel.ErrNotAvailable
	}
	return *f.remote, nil
}

func (f *fakePeerConnection) State() channel.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakePeerConnection) IceState() channel.IceState             { return channel.IceStateNew }
func (f *fakePeerConnection) GatheringState() channel.GatheringState { return channel.GatheringStateNew }
func (f *fakePeerConnection) SignalingState() channel.SignalingState { return channel.SignalingStateStable }

func (f *fakePeerConnection) OnLocalDescription(callback func(channel.Description)) {
	f.mu.Lock()
	f.onLocalDescription = callback
	f.mu.Unlock()
}

func (f *fakePeerConnection) OnLocalCandidate(callback func(channel.Candidate)) {
	f.mu.Lock()
	f.onLocalCandidate = callback
	f.mu.Unlock()
}

func (f *fakePeerConnection) OnStateChange(callback func(channel.State)) {
	f.mu.Lock()
	f.onStateChange = callback
	f.mu.Unlock()
}

func (f *fakePeerConnection) OnIceStateChange(callback func(channel.IceState)) {
	f.mu.Lock()
	f.onIceStateChange = callback
	f.mu.Unlock()
}

func (f *fakePeerConnection) OnGatheringStateChange(callback func(channel.GatheringState)) {
	f.mu.Lock()
	f.onGatheringState = callback
	f.mu.Unlock()
}

func (f *fakePeerConnection) OnSignalingStateChange(callback func(channel.SignalingState)) {
	f.mu.Lock()
	f.onSignalingState = callback
	f.mu.Unlock()
}

func (f *fakePeerConnection) OnDataChannel(callback func(channel.DataChannel)) {
	f.mu.Lock()
	f.onDataChannel = callback
	f.mu.Unlock()
}

func (f *fakePeerConnection) fireStateChange(state channel.State) {
	f.mu.Lock()
	f.state = state
	callback := f.onStateChange
	f.mu.Unlock()
	if callback != nil {
		callback(state)
	}
}

func (f *fakePeerConnection) fireLocalCandidate(candidate channel.Candidate) {
	f.mu.Lock()
	callback := f.onLocalCandidate
	f.mu.Unlock()
	if callback != nil {
		callback(candidate)
	}
}

func (f *fakePeerConnection) fireDataChannel(dc channel.DataChannel) {
	f.mu.Lock()
	callback := f.onDataChannel
	f.mu.Unlock()
	if callback != nil {
		callback(dc)
	}
}

// fakeEnvironment bundles an API over scripted backends and records
// what the backends produced.
type fakeEnvironment struct {
	api      *API
	peers    []*fakePeerConnection
	sockets  []*fakeChannel
	pcErr    error
	wsErr    error
	pcPanics bool
}

func newFakeEnvironment() *fakeEnvironment {
	env := &fakeEnvironment{}
	env.api = New(Backends{
		NewPeerConnection: func(iceServers []string) (channel.PeerConnection, error) {
			if env.pcPanics {
				panic("constructor exploded")
			}
			if env.pcErr != nil {
				return nil, env.pcErr
			}
			pc := &fakePeerConnection{}
			env.peers = append(env.peers, pc)
			return pc, nil
		},
		NewWebSocket: func(url string, config channel.WebSocketConfig) (channel.Channel, error) {
			if env.wsErr != nil {
				return nil, env.wsErr
			}
			socket := &fakeChannel{}
			env.sockets = append(env.sockets, socket)
			return socket, nil
		},
	}, nil)
	return env
}
