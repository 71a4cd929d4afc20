// Copyright 2026 The Rtcbind Authors
// SPDX-License-Identifier: Apache-2.0

package pion

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadICEConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ice.yaml")
	content := `servers:
  - urls:
      - stun:stun.example.org:3478
  - urls:
      - turn:turn.example.org:3478?transport=tcp
    username: relay-user
    credential: relay-pass
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := LoadICEConfig(path)
	if err != nil {
		t.Fatalf("LoadICEConfig: %v", err)
	}
	if len(config.Servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(config.Servers))
	}
	if config.Servers[0].URLs[0] != "stun:stun.example.org:3478" {
		t.Errorf("first URL = %q", config.Servers[0].URLs[0])
	}
	if config.Servers[1].Username != "relay-user" || config.Servers[1].Credential != "relay-pass" {
		t.Errorf("TURN credentials = %q, %q", config.Servers[1].Username, config.Servers[1].Credential)
	}

	entries := config.servers()
	if len(entries) != 2 {
		t.Fatalf("servers() returned %d entries, want 2", len(entries))
	}
	if entries[0].Username != "" {
		t.Error("STUN entry carries a username")
	}
	if entries[1].Credential != "relay-pass" {
		t.Errorf("TURN entry credential = %v", entries[1].Credential)
	}
}

func TestLoadICEConfigMissingFile(t *testing.T) {
	if _, err := LoadICEConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadICEConfig on a missing file succeeded")
	}
}

func TestLoadICEConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ice.yaml")
	if err := os.WriteFile(path, []byte("servers: [not: {valid"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadICEConfig(path); err == nil {
		t.Error("LoadICEConfig on malformed YAML succeeded")
	}
}

func TestICEConfigFromURLs(t *testing.T) {
	config := ICEConfigFromURLs([]string{"stun:a.example.org:3478", "stun:b.example.org:3478"})
	if len(config.Servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(config.Servers))
	}
	for i, server := range config.Servers {
		if len(server.URLs) != 1 || server.Username != "" {
			t.Errorf("server %d = %+v, want single bare URL", i, server)
		}
	}
	if len(ICEConfigFromURLs(nil).Servers) != 0 {
		t.Error("empty URL list produced servers")
	}
}
