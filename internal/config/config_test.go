package config_test

import (
	"strings"
	"testing"
	"time"

	"mcrelay/internal/config"
)

func TestLoadFillsDefaultsForEmptyFile(t *testing.T) {
	cfg, err := config.Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 25565 {
		t.Fatalf("Port = %d, want 25565", cfg.Port)
	}
	if cfg.TokenTTL != 5*time.Minute {
		t.Fatalf("TokenTTL = %v, want 5m", cfg.TokenTTL)
	}
	if cfg.TokenGenerator == nil || cfg.MessageGenerator == nil {
		t.Fatalf("generator hooks must never be nil after Load")
	}
}

func TestLoadOverridesProvidedFields(t *testing.T) {
	yamlDoc := `
port: 25566
token_ttl_seconds: 60
forward_skin_properties: true
status:
  description: "custom description"
  max_players: 5
`
	cfg, err := config.Load(strings.NewReader(yamlDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 25566 {
		t.Fatalf("Port = %d, want 25566", cfg.Port)
	}
	if cfg.TokenTTL != time.Minute {
		t.Fatalf("TokenTTL = %v, want 1m", cfg.TokenTTL)
	}
	if !cfg.ForwardSkinProperties {
		t.Fatalf("ForwardSkinProperties = false, want true")
	}
	if cfg.Status.Description != "custom description" {
		t.Fatalf("Status.Description = %q, want custom description", cfg.Status.Description)
	}
	if cfg.Status.MaxPlayers != 5 {
		t.Fatalf("Status.MaxPlayers = %d, want 5", cfg.Status.MaxPlayers)
	}
	// Fields untouched by the file still fall back to defaults.
	if cfg.Status.VersionName != "mcrelay" {
		t.Fatalf("Status.VersionName = %q, want default mcrelay", cfg.Status.VersionName)
	}
}
