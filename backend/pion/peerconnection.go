// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package pion

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pion/webrtc/v4"

	"github.com/rtcbind/rtcbind/channel"
)

// Compile-time interface check.
var _ channel.PeerConnection = (*PeerConnection)(nil)

// PeerConnection implements channel.PeerConnection on a native pion
// engine. Event callbacks arriving from pion's internal goroutines
// update the mirrored state under pc.mu, then dispatch to the stored
// user callback outside any pion lock.
type PeerConnection struct {
	conn   *webrtc.PeerConnection
	logger *slog.Logger

	mu             sync.Mutex
	closed         bool
	state          channel.State
	iceState       channel.IceState
	gatheringState channel.GatheringState
	signalingState channel.SignalingState

	localDescriptionCallback func(channel.Description)
	localCandidateCallback   func(channel.Candidate)
	stateCallback            func(channel.State)
	iceStateCallback         func(channel.IceState)
	gatheringStateCallback   func(channel.GatheringState)
	signalingStateCallback   func(channel.SignalingState)
	dataChannelCallback      func(channel.DataChannel)
}

// NewPeerConnection creates a peer connection with the given ICE
// configuration. The setting engine enables loopback candidates so
// that two connections in the same process can reach each other
// without a network interface.
func NewPeerConnection(config ICEConfig, logger *slog.Logger) (*PeerConnection, error) {
	settingEngine := webrtc.SettingEngine{}
	settingEngine.SetIncludeLoopbackCandidate(true)

	api := webrtc.NewAPI(webrtc.WithSettingEngine(settingEngine))
	conn, err := api.NewPeerConnection(webrtc.Configuration{
		ICEServers: config.servers(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating pion PeerConnection: %w", err)
	}

	pc := &PeerConnection{
		conn:   conn,
		logger: logger,
	}

	// Single registration of every pion handler. User callbacks are
	// swappable afterwards without touching pion again.
	conn.OnConnectionStateChange(pc.handleConnectionState)
	conn.OnICEConnectionStateChange(pc.handleICEConnectionState)
	conn.OnICEGatheringStateChange(pc.handleICEGatheringState)
	conn.OnSignalingStateChange(pc.handleSignalingState)
	conn.OnICECandidate(pc.handleICECandidate)
	conn.OnDataChannel(pc.handleDataChannel)

	return pc, nil
}

// Close shuts the connection down. Idempotent: pion tolerates repeated
// Close calls, and the mirrored state transitions to Closed
// immediately rather than waiting for the state event.
func (pc *PeerConnection) Close() error {
	pc.mu.Lock()
	if pc.closed {
		pc.mu.Unlock()
		return nil
	}
	pc.closed = true
	pc.mu.Unlock()

	if err := pc.conn.Close(); err != nil {
		return fmt.Errorf("closing pion PeerConnection: %w", err)
	}
	return nil
}

// CreateDataChannel opens an outgoing data channel after validating
// the reliability descriptor.
func (pc *PeerConnection) CreateDataChannel(label string, init channel.DataChannelInit) (channel.DataChannel, error) {
	if err := init.Reliability.Validate(); err != nil {
		return nil, err
	}

	options := &webrtc.DataChannelInit{}
	if init.Reliability.Unordered {
		ordered := false
		options.Ordered = &ordered
	}
	if init.Reliability.MaxPacketLifeTime != nil {
		lifetime := uint16(init.Reliability.MaxPacketLifeTime.Milliseconds())
		options.MaxPacketLifeTime = &lifetime
	}
	if init.Reliability.MaxRetransmits != nil {
		retransmits := uint16(*init.Reliability.MaxRetransmits)
		options.MaxRetransmits = &retransmits
	}
	if init.Protocol != "" {
		protocol := init.Protocol
		options.Protocol = &protocol
	}
	if init.Negotiated {
		negotiated := true
		options.Negotiated = &negotiated
		if init.Stream >= 0 {
			stream := uint16(init.Stream)
			options.ID = &stream
		}
	}

	dc, err := pc.conn.CreateDataChannel(label, options)
	if err != nil {
		return nil, fmt.Errorf("creating data channel %q: %w", label, err)
	}
	return newDataChannel(dc, pc.logger), nil
}

// SetLocalDescription generates an offer or answer and applies it as
// the local description. When sdpType is empty the type is derived from
// the signaling state: an answer when a remote offer is pending, an
// offer otherwise. The stored local-description callback fires after
// the description is applied; pion has no equivalent event, so this
// adapter sources it.
func (pc *PeerConnection) SetLocalDescription(sdpType string) error {
	resolved := sdpType
	if resolved == "" {
		if pc.conn.SignalingState() == webrtc.SignalingStateHaveRemoteOffer {
			resolved = "answer"
		} else {
			resolved = "offer"
		}
	}

	var description webrtc.SessionDescription
	var err error
	switch resolved {
	case "offer":
		description, err = pc.conn.CreateOffer(nil)
	case "answer":
		description, err = pc.conn.CreateAnswer(nil)
	default:
		return fmt.Errorf("%w: %q", channel.ErrUnknownDescriptionType, sdpType)
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", resolved, err)
	}

	if err := pc.conn.SetLocalDescription(description); err != nil {
		return fmt.Errorf("setting local description: %w", err)
	}

	pc.mu.Lock()
	callback := pc.localDescriptionCallback
	pc.mu.Unlock()
	if callback != nil {
		callback(channel.Description{
			SDP:  description.SDP,
			Type: description.Type.String(),
		})
	}
	return nil
}

// SetRemoteDescription applies the remote peer's description. An empty
// sdpType is rejected: the pion engine needs an explicit type.
func (pc *PeerConnection) SetRemoteDescription(sdp, sdpType string) error {
	descriptionType := webrtc.NewSDPType(sdpType)
	if descriptionType == webrtc.SDPTypeUnknown {
		return fmt.Errorf("%w: %q", channel.ErrUnknownDescriptionType, sdpType)
	}

	err := pc.conn.SetRemoteDescription(webrtc.SessionDescription{
		Type: descriptionType,
		SDP:  sdp,
	})
	if err != nil {
		return fmt.Errorf("setting remote description: %w", err)
	}
	return nil
}

// AddRemoteCandidate adds a remote ICE candidate. mid may be empty for
// single-section SDPs.
func (pc *PeerConnection) AddRemoteCandidate(candidate, mid string) error {
	init := webrtc.ICECandidateInit{Candidate: candidate}
	if mid != "" {
		init.SDPMid = &mid
	}
	if err := pc.conn.AddICECandidate(init); err != nil {
		return fmt.Errorf("adding remote candidate: %w", err)
	}
	return nil
}

// LocalDescription returns the current local description including any
// gathered candidates, or channel.ErrNotAvailable before negotiation
// has produced one.
func (pc *PeerConnection) LocalDescription() (channel.Description, error) {
	description := pc.conn.LocalDescription()
	if description == nil {
		return channel.Description{}, channel.ErrNotAvailable
	}
	return channel.Description{
		SDP:  description.SDP,
		Type: description.Type.String(),
	}, nil
}

// RemoteDescription returns the current remote description, or
// channel.ErrNotAvailable before one has been applied.
func (pc *PeerConnection) RemoteDescription() (channel.Description, error) {
	description := pc.conn.RemoteDescription()
	if description == nil {
		return channel.Description{}, channel.ErrNotAvailable
	}
	return channel.Description{
		SDP:  description.SDP,
		Type: description.Type.String(),
	}, nil
}

// State returns the last connection state observed from pion.
func (pc *PeerConnection) State() channel.State {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.state
}

// IceState returns the last ICE transport state observed from pion.
func (pc *PeerConnection) IceState() channel.IceState {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.iceState
}

// GatheringState returns the last candidate gathering state observed
// from pion.
func (pc *PeerConnection) GatheringState() channel.GatheringState {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.gatheringState
}

// SignalingState returns the last signaling state observed from pion.
func (pc *PeerConnection) SignalingState() channel.SignalingState {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.signalingState
}

func (pc *PeerConnection) OnLocalDescription(callback func(channel.Description)) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.localDescriptionCallback = callback
}

func (pc *PeerConnection) OnLocalCandidate(callback func(channel.Candidate)) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.localCandidateCallback = callback
}

func (pc *PeerConnection) OnStateChange(callback func(channel.State)) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.stateCallback = callback
}

func (pc *PeerConnection) OnIceStateChange(callback func(channel.IceState)) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.iceStateCallback = callback
}

func (pc *PeerConnection) OnGatheringStateChange(callback func(channel.GatheringState)) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.gatheringStateCallback = callback
}

func (pc *PeerConnection) OnSignalingStateChange(callback func(channel.SignalingState)) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.signalingStateCallback = callback
}

func (pc *PeerConnection) OnDataChannel(callback func(channel.DataChannel)) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.dataChannelCallback = callback
}

func (pc *PeerConnection) handleConnectionState(state webrtc.PeerConnectionState) {
	mapped, ok := mapConnectionState(state)
	if !ok {
		return
	}
	pc.mu.Lock()
	pc.state = mapped
	callback := pc.stateCallback
	pc.mu.Unlock()

	pc.logger.Debug("peer connection state change", "state", mapped.String())
	if callback != nil {
		callback(mapped)
	}
}

func (pc *PeerConnection) handleICEConnectionState(state webrtc.ICEConnectionState) {
	mapped, ok := mapICEConnectionState(state)
	if !ok {
		return
	}
	pc.mu.Lock()
	pc.iceState = mapped
	callback := pc.iceStateCallback
	pc.mu.Unlock()

	pc.logger.Debug("ICE state change", "state", mapped.String())
	if callback != nil {
		callback(mapped)
	}
}

func (pc *PeerConnection) handleICEGatheringState(state webrtc.ICEGatheringState) {
	mapped, ok := mapGatheringState(state)
	if !ok {
		return
	}
	pc.mu.Lock()
	pc.gatheringState = mapped
	callback := pc.gatheringStateCallback
	pc.mu.Unlock()

	if callback != nil {
		callback(mapped)
	}
}

func (pc *PeerConnection) handleSignalingState(state webrtc.SignalingState) {
	mapped, ok := mapSignalingState(state)
	if !ok {
		return
	}
	pc.mu.Lock()
	pc.signalingState = mapped
	callback := pc.signalingStateCallback
	pc.mu.Unlock()

	if callback != nil {
		callback(mapped)
	}
}

// handleICECandidate forwards trickled candidates. pion signals the
// end of gathering with a nil candidate, which has no foreign
// equivalent and is dropped; the gathering state event carries that
// information instead.
func (pc *PeerConnection) handleICECandidate(candidate *webrtc.ICECandidate) {
	if candidate == nil {
		return
	}
	init := candidate.ToJSON()

	pc.mu.Lock()
	callback := pc.localCandidateCallback
	pc.mu.Unlock()
	if callback == nil {
		return
	}

	mid := ""
	if init.SDPMid != nil {
		mid = *init.SDPMid
	}
	callback(channel.Candidate{Candidate: init.Candidate, Mid: mid})
}

func (pc *PeerConnection) handleDataChannel(dc *webrtc.DataChannel) {
	pc.mu.Lock()
	callback := pc.dataChannelCallback
	pc.mu.Unlock()

	pc.logger.Debug("inbound data channel", "label", dc.Label())
	if callback != nil {
		callback(newDataChannel(dc, pc.logger))
	}
}
