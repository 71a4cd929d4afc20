// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package pion

import (
	"fmt"
	"os"

	"github.com/pion/webrtc/v4"
	"gopkg.in/yaml.v3"
)

// ICEConfig holds STUN/TURN server configuration for new peer
// connections. An empty config means host candidates only, which is
// sufficient for same-machine and same-LAN use.
type ICEConfig struct {
	// Servers is the list of ICE servers to use during candidate
	// gathering, tried in order.
	Servers []ICEServer `yaml:"servers"`
}

// ICEServer is one STUN or TURN entry.
type ICEServer struct {
	// URLs lists the server URLs, e.g. "stun:stun.example.org:3478"
	// or "turn:turn.example.org:3478?transport=tcp".
	URLs []string `yaml:"urls"`

	// Username authenticates against a TURN server. Empty for STUN.
	Username string `yaml:"username,omitempty"`

	// Credential is the TURN password. Empty for STUN.
	Credential string `yaml:"credential,omitempty"`
}

// ICEConfigFromURLs builds a config from bare server URLs with no
// credentials, the shape the foreign creation call provides.
func ICEConfigFromURLs(urls []string) ICEConfig {
	config := ICEConfig{}
	for _, url := range urls {
		config.Servers = append(config.Servers, ICEServer{URLs: []string{url}})
	}
	return config
}

// LoadICEConfig reads an ICEConfig from a YAML file. There is no
// search path and no fallback: the file must exist and parse.
func LoadICEConfig(path string) (ICEConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ICEConfig{}, fmt.Errorf("reading ICE config: %w", err)
	}
	var config ICEConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ICEConfig{}, fmt.Errorf("parsing ICE config %s: %w", path, err)
	}
	return config, nil
}

// servers converts the config to pion's ICE server entries.
func (config ICEConfig) servers() []webrtc.ICEServer {
	entries := make([]webrtc.ICEServer, 0, len(config.Servers))
	for _, server := range config.Servers {
		entry := webrtc.ICEServer{URLs: server.URLs}
		if server.Username != "" {
			entry.Username = server.Username
			entry.Credential = server.Credential
		}
		entries = append(entries, entry)
	}
	return entries
}
