// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package ws

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/wire"
)

// defaultConnectTimeout bounds connection establishment when the
// config does not specify one.
const defaultConnectTimeout = 10 * time.Second

// Compile-time interface check.
var _ channel.Channel = (*WebSocket)(nil)

// WebSocket implements channel.Channel on a coder/websocket client
// connection. Dialing is asynchronous: Dial returns immediately and
// the open event fires once the handshake completes, matching the
// backend-confirms-readiness lifecycle of the channel capability.
type WebSocket struct {
	url    string
	config channel.WebSocketConfig
	logger *slog.Logger

	// cancel stops the dial or the read loop, whichever is running.
	cancel context.CancelFunc

	mu           sync.Mutex
	conn         *websocket.Conn
	open         bool
	closed       bool
	thresholdSet bool

	openCallback              func()
	closedCallback            func()
	errorCallback             func(message string)
	messageCallback           func(message wire.Message)
	bufferedAmountLowCallback func()
}

// Dial starts connecting to url and returns the channel immediately.
// Connection failures surface through the error callback followed by
// the closed event, not through the return value, so the caller can
// register callbacks before the outcome is known.
func Dial(url string, config channel.WebSocketConfig, logger *slog.Logger) *WebSocket {
	ctx, cancel := context.WithCancel(context.Background())
	socket := &WebSocket{
		url:    url,
		config: config,
		logger: logger,
		cancel: cancel,
	}
	go socket.connect(ctx)
	return socket
}

func (socket *WebSocket) connect(ctx context.Context) {
	options := &websocket.DialOptions{
		Subprotocols: socket.config.Protocols,
	}
	if socket.config.DisableTLSVerification {
		options.HTTPClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}

	dialCtx := ctx
	if socket.config.ConnectTimeout >= 0 {
		timeout := socket.config.ConnectTimeout
		if timeout == 0 {
			timeout = defaultConnectTimeout
		}
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, response, err := websocket.Dial(dialCtx, socket.url, options)
	if response != nil && response.Body != nil {
		response.Body.Close()
	}
	if err != nil {
		socket.logger.Debug("websocket dial failed", "url", socket.url, "error", err)
		// A cancelled context means Close raced the dial; the socket is
		// already in its terminal state and the failure is not an error.
		if ctx.Err() == nil {
			socket.triggerError(fmt.Sprintf("websocket dial %s: %v", socket.url, err))
		}
		socket.shutdown()
		return
	}

	if socket.config.MaxMessageSize > 0 {
		conn.SetReadLimit(int64(socket.config.MaxMessageSize))
	}

	socket.mu.Lock()
	if socket.closed {
		// Closed from the foreign side while the dial was in flight.
		socket.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
		return
	}
	socket.conn = conn
	socket.open = true
	callback := socket.openCallback
	socket.mu.Unlock()

	socket.logger.Debug("websocket open", "url", socket.url, "subprotocol", conn.Subprotocol())
	if callback != nil {
		callback()
	}

	if socket.config.PingInterval > 0 {
		go socket.pingLoop(ctx, conn)
	}
	socket.readLoop(ctx, conn)
}

func (socket *WebSocket) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		messageType, data, err := conn.Read(ctx)
		if err != nil {
			// A close frame or a cancelled context is a normal end of
			// stream; anything else is a transport error reported
			// before the closed event.
			if websocket.CloseStatus(err) < 0 && ctx.Err() == nil {
				socket.triggerError(fmt.Sprintf("websocket read: %v", err))
			}
			socket.shutdown()
			return
		}

		socket.mu.Lock()
		callback := socket.messageCallback
		socket.mu.Unlock()
		if callback == nil {
			continue
		}
		if messageType == websocket.MessageText {
			callback(wire.Text(string(data)))
		} else {
			callback(wire.Binary(data))
		}
	}
}

func (socket *WebSocket) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(socket.config.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.Ping(ctx); err != nil {
				return
			}
		}
	}
}

// shutdown transitions to the terminal closed state and fires the
// closed event exactly once.
func (socket *WebSocket) shutdown() {
	socket.mu.Lock()
	if socket.closed {
		socket.mu.Unlock()
		return
	}
	socket.open = false
	socket.closed = true
	callback := socket.closedCallback
	socket.mu.Unlock()

	socket.logger.Debug("websocket closed", "url", socket.url)
	if callback != nil {
		callback()
	}
}

// Close shuts the connection down. Idempotent; fires the closed event
// if the socket had not already reached its terminal state.
func (socket *WebSocket) Close() error {
	socket.mu.Lock()
	conn := socket.conn
	alreadyClosed := socket.closed
	socket.mu.Unlock()

	socket.cancel()
	if conn != nil && !alreadyClosed {
		conn.Close(websocket.StatusNormalClosure, "")
	}
	socket.shutdown()
	return nil
}

// IsOpen reports whether the handshake has completed and the
// connection has not closed since.
func (socket *WebSocket) IsOpen() bool {
	socket.mu.Lock()
	defer socket.mu.Unlock()
	return socket.open
}

// IsClosed reports whether the socket has reached its terminal state.
func (socket *WebSocket) IsClosed() bool {
	socket.mu.Lock()
	defer socket.mu.Unlock()
	return socket.closed
}

// Send transmits a message, preserving the text/binary frame
// distinction.
func (socket *WebSocket) Send(message wire.Message) error {
	socket.mu.Lock()
	conn := socket.conn
	open := socket.open
	thresholdSet := socket.thresholdSet
	socket.mu.Unlock()

	if !open || conn == nil {
		return channel.ErrNotOpen
	}

	messageType := websocket.MessageBinary
	if message.IsText() {
		messageType = websocket.MessageText
	}
	if err := conn.Write(context.Background(), messageType, message.Bytes()); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}

	// Writes are synchronous, so the send buffer drains to zero as
	// each Write returns; that crossing is the buffered-amount-low
	// condition for callers that configured a threshold.
	if thresholdSet {
		socket.mu.Lock()
		callback := socket.bufferedAmountLowCallback
		socket.mu.Unlock()
		if callback != nil {
			callback()
		}
	}
	return nil
}

// BufferedAmount returns 0: writes are synchronous and nothing is
// queued once Send returns.
func (socket *WebSocket) BufferedAmount() (int, error) {
	return 0, nil
}

// SetBufferedAmountLowThreshold arms the buffered-amount-low event.
// Any threshold behaves the same here since the buffered amount only
// ever touches zero.
func (socket *WebSocket) SetBufferedAmountLowThreshold(amount int) error {
	socket.mu.Lock()
	defer socket.mu.Unlock()
	socket.thresholdSet = true
	return nil
}

func (socket *WebSocket) OnOpen(callback func()) {
	socket.mu.Lock()
	defer socket.mu.Unlock()
	socket.openCallback = callback
}

func (socket *WebSocket) OnClosed(callback func()) {
	socket.mu.Lock()
	defer socket.mu.Unlock()
	socket.closedCallback = callback
}

func (socket *WebSocket) OnError(callback func(message string)) {
	socket.mu.Lock()
	defer socket.mu.Unlock()
	socket.errorCallback = callback
}

func (socket *WebSocket) OnMessage(callback func(message wire.Message)) {
	socket.mu.Lock()
	defer socket.mu.Unlock()
	socket.messageCallback = callback
}

func (socket *WebSocket) OnBufferedAmountLow(callback func()) {
	socket.mu.Lock()
	defer socket.mu.Unlock()
	socket.bufferedAmountLowCallback = callback
}

func (socket *WebSocket) triggerError(message string) {
	socket.mu.Lock()
	callback := socket.errorCallback
	socket.mu.Unlock()
	if callback != nil {
		callback(message)
	}
}
