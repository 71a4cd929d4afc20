// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodedLength(t *testing.T) {
	tests := []struct {
		name    string
		message Message
		want    int
	}{
		{"empty binary", Binary(nil), 0},
		{"binary", Binary([]byte{1, 2, 3}), 3},
		{"empty text", Text(""), -1},
		{"text", Text("hello"), -6},
		{"text with NUL", Text("a\x00b"), -4},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := EncodedLength(test.message); got != test.want {
				t.Errorf("EncodedLength = %d, want %d", got, test.want)
			}
		})
	}
}

func TestDecodeBinary(t *testing.T) {
	payload := []byte{0x00, 0x01, 0xff}
	message, err := Decode(payload, len(payload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if message.IsText() {
		t.Error("non-negative size decoded as text")
	}
	if !bytes.Equal(message.Bytes(), payload) {
		t.Errorf("Bytes = %v, want %v", message.Bytes(), payload)
	}
}

func TestDecodeBinaryTruncatesToSize(t *testing.T) {
	// The declared size governs, not the slice length.
	message, err := Decode([]byte{1, 2, 3, 4}, 2)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if message.Len() != 2 {
		t.Errorf("Len = %d, want 2", message.Len())
	}
}

func TestDecodeText(t *testing.T) {
	message, err := Decode([]byte("hello"), -6)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !message.IsText() {
		t.Error("negative size decoded as binary")
	}
	if message.String() != "hello" {
		t.Errorf("String = %q, want %q", message.String(), "hello")
	}
}

func TestDecodeEmptyText(t *testing.T) {
	// Size -1 is always the empty text message, with or without data.
	for _, data := range [][]byte{nil, {}, []byte("ignored")} {
		message, err := Decode(data, -1)
		if err != nil {
			t.Fatalf("Decode(%v, -1): %v", data, err)
		}
		if !message.IsText() || message.Len() != 0 {
			t.Errorf("Decode(%v, -1) = %+v, want empty text", data, message)
		}
	}
}

func TestDecodeEmptyBinary(t *testing.T) {
	message, err := Decode(nil, 0)
	if err != nil {
		t.Fatalf("Decode(nil, 0): %v", err)
	}
	if message.IsText() || message.Len() != 0 {
		t.Errorf("Decode(nil, 0) = %+v, want empty binary", message)
	}
}

func TestDecodeNilDataNonzeroSize(t *testing.T) {
	if _, err := Decode(nil, 5); !errors.Is(err, ErrNilData) {
		t.Errorf("Decode(nil, 5) error = %v, want ErrNilData", err)
	}
	if _, err := Decode(nil, -6); !errors.Is(err, ErrNilData) {
		t.Errorf("Decode(nil, -6) error = %v, want ErrNilData", err)
	}
}

func TestDecodeShortData(t *testing.T) {
	if _, err := Decode([]byte{1}, 4); err == nil {
		t.Error("Decode with short binary data succeeded")
	}
	if _, err := Decode([]byte("ab"), -4); err == nil {
		t.Error("Decode with short text data succeeded")
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	messages := []Message{
		Binary([]byte{0, 255, 127}),
		Binary(nil),
		Text("some text"),
		Text(""),
		Text("embedded\x00nul"),
	}
	for _, original := range messages {
		data, size := Encode(original)
		decoded, err := Decode(data, size)
		if err != nil {
			t.Fatalf("Decode(Encode(%+v)): %v", original, err)
		}
		if decoded.IsText() != original.IsText() {
			t.Errorf("roundtrip changed kind for %+v", original)
		}
		if !bytes.Equal(decoded.Bytes(), original.Bytes()) {
			t.Errorf("roundtrip payload = %v, want %v", decoded.Bytes(), original.Bytes())
		}
	}
}
