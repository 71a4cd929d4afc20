// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WebSocketConfig carries optional WebSocket client parameters. The
// zero value requests defaults throughout.
type WebSocketConfig struct {
	// Protocols lists the subprotocols offered during the handshake.
	Protocols []string `yaml:"protocols,omitempty"`

	// ConnectTimeout bounds connection establishment. Zero means the
	// default (10 seconds); negative disables the timeout.
	ConnectTimeout time.Duration `yaml:"connectTimeout,omitempty"`

	// PingInterval is the keepalive ping period. Zero disables
	// keepalive pings.
	PingInterval time.Duration `yaml:"pingInterval,omitempty"`

	// MaxMessageSize caps incoming message size in bytes. Zero or
	// negative means the transport default.
	MaxMessageSize int `yaml:"maxMessageSize,omitempty"`

	// DisableTLSVerification skips certificate verification for wss
	// URLs. For test endpoints with self-signed certificates only.
	DisableTLSVerification bool `yaml:"disableTlsVerification,omitempty"`
}

// LoadWebSocketConfig reads a WebSocketConfig from a YAML file. There
// is no search path and no fallback: the file must exist and parse.
func LoadWebSocketConfig(path string) (WebSocketConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WebSocketConfig{}, fmt.Errorf("reading websocket config: %w", err)
	}
	var config WebSocketConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return WebSocketConfig{}, fmt.Errorf("parsing websocket config %s: %w", path, err)
	}
	return config, nil
}

// UnmarshalYAML decodes the config, accepting human-readable duration
// strings ("10s", "500ms") for the timeout fields.
func (config *WebSocketConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Protocols              []string `yaml:"protocols"`
		ConnectTimeout         string   `yaml:"connectTimeout"`
		PingInterval           string   `yaml:"pingInterval"`
		MaxMessageSize         int      `yaml:"maxMessageSize"`
		DisableTLSVerification bool     `yaml:"disableTlsVerification"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed := WebSocketConfig{
		Protocols:              raw.Protocols,
		MaxMessageSize:         raw.MaxMessageSize,
		DisableTLSVerification: raw.DisableTLSVerification,
	}
	if raw.ConnectTimeout != "" {
		duration, err := time.ParseDuration(raw.ConnectTimeout)
		if err != nil {
			return fmt.Errorf("parsing connectTimeout: %w", err)
		}
		parsed.ConnectTimeout = duration
	}
	if raw.PingInterval != "" {
		duration, err := time.ParseDuration(raw.PingInterval)
		if err != nil {
			return fmt.Errorf("parsing pingInterval: %w", err)
		}
		parsed.PingInterval = duration
	}
	*config = parsed
	return nil
}
