// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package ws

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rtcbind/rtcbind/channel"
	"github.com/rtcbind/rtcbind/lib/testutil"
	"github.com/rtcbind/rtcbind/wire"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// echoServer runs a websocket echo handler and returns its ws:// URL.
func echoServer(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			messageType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(messageType, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

// waitOpen polls until the handshake completes. The dial races the
// caller's callback registration, so tests gate on state rather than
// on the open event.
func waitOpen(t *testing.T, socket *WebSocket) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !socket.IsOpen() {
		if socket.IsClosed() {
			t.Fatal("socket closed while waiting for open")
		}
		if time.Now().After(deadline) {
			t.Fatal("socket did not open within 5s")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEchoRoundtrip(t *testing.T) {
	socket := Dial(echoServer(t), channel.WebSocketConfig{}, discardLogger())
	defer socket.Close()

	messages := make(chan wire.Message, 4)
	socket.OnMessage(func(message wire.Message) {
		testutil.RequireSend(t, messages, message, 5*time.Second, "queueing echo")
	})
	waitOpen(t, socket)

	text := testutil.UniqueID("hello")
	if err := socket.Send(wire.Text(text)); err != nil {
		t.Fatalf("Send text: %v", err)
	}
	echoed := testutil.RequireReceive(t, messages, 5*time.Second, "text echo")
	if !echoed.IsText() || echoed.String() != text {
		t.Errorf("echo = %+v, want text %q", echoed, text)
	}

	if err := socket.Send(wire.Binary([]byte{0x00, 0xff, 0x10})); err != nil {
		t.Fatalf("Send binary: %v", err)
	}
	echoed = testutil.RequireReceive(t, messages, 5*time.Second, "binary echo")
	if echoed.IsText() || echoed.Len() != 3 {
		t.Errorf("echo = %+v, want 3 binary bytes", echoed)
	}
}

func TestDialFailureFiresErrorThenClosed(t *testing.T) {
	// A server that is already gone: the port refuses connections.
	server := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	server.Close()

	socket := Dial(url, channel.WebSocketConfig{}, discardLogger())
	defer socket.Close()

	errored := make(chan string, 1)
	closed := make(chan struct{})
	socket.OnError(func(message string) {
		select {
		case errored <- message:
		default:
		}
	})
	socket.OnClosed(func() { close(closed) })

	testutil.RequireClosed(t, closed, 5*time.Second, "closed after failed dial")
	message := testutil.RequireReceive(t, errored, 5*time.Second, "dial error")
	if message == "" {
		t.Error("error callback delivered an empty message")
	}
	if socket.IsOpen() {
		t.Error("IsOpen = true after failed dial")
	}
	if !socket.IsClosed() {
		t.Error("IsClosed = false after failed dial")
	}
}

func TestSendBeforeOpen(t *testing.T) {
	// The handler stalls without upgrading, so the handshake never
	// completes.
	stall := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-stall
	}))
	t.Cleanup(func() { close(stall); server.Close() })

	socket := Dial("ws"+strings.TrimPrefix(server.URL, "http"), channel.WebSocketConfig{}, discardLogger())
	defer socket.Close()

	if err := socket.Send(wire.Text("too early")); err != channel.ErrNotOpen {
		t.Errorf("Send before open = %v, want ErrNotOpen", err)
	}
}

func TestCloseDuringDialSuppressesError(t *testing.T) {
	// The handler stalls without upgrading, so the socket is closed
	// from our side while the dial is still in flight.
	stall := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-stall
	}))
	t.Cleanup(func() { close(stall); server.Close() })

	socket := Dial("ws"+strings.TrimPrefix(server.URL, "http"), channel.WebSocketConfig{}, discardLogger())

	errored := make(chan string, 1)
	closed := make(chan struct{})
	socket.OnError(func(message string) {
		select {
		case errored <- message:
		default:
		}
	})
	socket.OnClosed(func() { close(closed) })

	if err := socket.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	testutil.RequireClosed(t, closed, 5*time.Second, "closed event")

	// Give the dial goroutine time to observe the cancellation; the
	// aborted dial must not surface as an error on a socket that
	// already reached its terminal state.
	time.Sleep(100 * time.Millisecond)
	select {
	case message := <-errored:
		t.Errorf("error callback fired after Close: %q", message)
	default:
	}
	if !socket.IsClosed() {
		t.Error("IsClosed = false after Close")
	}
}

func TestCloseFiresClosedExactlyOnce(t *testing.T) {
	socket := Dial(echoServer(t), channel.WebSocketConfig{}, discardLogger())

	var closedCount int
	closed := make(chan struct{})
	socket.OnClosed(func() {
		closedCount++
		close(closed)
	})
	waitOpen(t, socket)

	if err := socket.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	testutil.RequireClosed(t, closed, 5*time.Second, "closed event")

	// Close is idempotent and shutdown is synchronous, so a second
	// call must not fire the event again.
	if err := socket.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if closedCount != 1 {
		t.Errorf("closed fired %d times, want 1", closedCount)
	}
	if err := socket.Send(wire.Text("after close")); err != channel.ErrNotOpen {
		t.Errorf("Send after close = %v, want ErrNotOpen", err)
	}
}

func TestBufferedAmountLowAfterSend(t *testing.T) {
	socket := Dial(echoServer(t), channel.WebSocketConfig{}, discardLogger())
	defer socket.Close()
	waitOpen(t, socket)

	var fired int
	socket.OnBufferedAmountLow(func() { fired++ })

	// No threshold configured: sends do not fire the event.
	if err := socket.Send(wire.Text("one")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if fired != 0 {
		t.Fatalf("event fired %d times without a threshold", fired)
	}

	if err := socket.SetBufferedAmountLowThreshold(0); err != nil {
		t.Fatalf("SetBufferedAmountLowThreshold: %v", err)
	}
	if err := socket.Send(wire.Text("two")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if fired != 1 {
		t.Errorf("event fired %d times after send, want 1", fired)
	}

	if amount, err := socket.BufferedAmount(); err != nil || amount != 0 {
		t.Errorf("BufferedAmount = %d, %v, want 0, nil", amount, err)
	}
}

func TestSubprotocolOffered(t *testing.T) {
	upgrader := websocket.Upgrader{Subprotocols: []string{"feed.v1"}}
	negotiated := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		negotiated <- conn.Subprotocol()
		conn.Close()
	}))
	t.Cleanup(server.Close)

	config := channel.WebSocketConfig{Protocols: []string{"feed.v1", "feed.v0"}}
	socket := Dial("ws"+strings.TrimPrefix(server.URL, "http"), config, discardLogger())
	defer socket.Close()

	if got := testutil.RequireReceive(t, negotiated, 5*time.Second, "negotiated subprotocol"); got != "feed.v1" {
		t.Errorf("negotiated %q, want %q", got, "feed.v1")
	}
}
