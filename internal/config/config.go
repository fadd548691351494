// Package config loads the YAML-backed ServerConfig this relay runs under,
// the way the teacher server loads its own server.yaml.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mcrelay/internal/textcomp"
	"mcrelay/internal/token"
)

// StatusConfig controls what a status ping sees before any handshake intent
// is known: the JSON status response's description, an optional favicon,
// and the plain-string description that legacy (pre-1.7) pings and modern
// clients below the minimum supported protocol get instead.
type StatusConfig struct {
	Description       string `yaml:"description"`
	LegacyDescription string `yaml:"legacy_description"`
	FaviconPath       string `yaml:"favicon_path"`
	VersionName       string `yaml:"version_name"`
	ProtocolVersion   int32  `yaml:"protocol_version"`
	MaxPlayers        int    `yaml:"max_players"`
}

func defaultStatus() StatusConfig {
	return StatusConfig{
		Description:       "Join to link your minecraft account",
		LegacyDescription: "Join to link your minecraft account",
		VersionName:       "mcrelay",
		ProtocolVersion:   768,
		MaxPlayers:        0,
	}
}

// ServerConfig is the full set of knobs the relay reads from its YAML file.
type ServerConfig struct {
	Port     uint16        `yaml:"port"`
	TokenTTL time.Duration `yaml:"token_ttl"`
	Status   StatusConfig  `yaml:"status"`

	// ForwardSkinProperties controls whether the authoritative GameProfile's
	// signed properties (skin, cape) are attached to the relay's own
	// LoginSuccess packet. The reference implementation never forwards them;
	// this relay keeps the option configurable since the relay already has
	// the signed properties in hand from the session-server response.
	ForwardSkinProperties bool `yaml:"forward_skin_properties"`

	TokenGenerator   token.Generator           `yaml:"-"`
	MessageGenerator textcomp.MessageGenerator `yaml:"-"`
}

// Default returns the configuration the relay runs under when no file field
// overrides it: port 25565, a five minute token TTL, the default message and
// token generators, and a generic join-to-link status description.
func Default() ServerConfig {
	return ServerConfig{
		Port:             25565,
		TokenTTL:         5 * time.Minute,
		Status:           defaultStatus(),
		TokenGenerator:   token.RandomGenerator{},
		MessageGenerator: textcomp.DefaultMessageGenerator{},
	}
}

// rawConfig mirrors ServerConfig's YAML-visible fields only, except that the
// TTL is read as whole seconds from token_ttl_seconds; the generator hooks
// aren't representable in YAML and are always filled from Default.
type rawConfig struct {
	Port                  uint16       `yaml:"port"`
	TokenTTLSeconds       int64        `yaml:"token_ttl_seconds"`
	Status                StatusConfig `yaml:"status"`
	ForwardSkinProperties bool         `yaml:"forward_skin_properties"`
}

// Load reads a YAML server configuration from r, filling in defaults for
// every field the file omits.
func Load(r io.Reader) (ServerConfig, error) {
	cfg := Default()

	var raw rawConfig
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil && err != io.EOF {
		return ServerConfig{}, fmt.Errorf("config: decoding yaml: %w", err)
	}

	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if raw.TokenTTLSeconds != 0 {
		cfg.TokenTTL = time.Duration(raw.TokenTTLSeconds) * time.Second
	}
	if raw.Status.Description != "" {
		cfg.Status.Description = raw.Status.Description
	}
	if raw.Status.LegacyDescription != "" {
		cfg.Status.LegacyDescription = raw.Status.LegacyDescription
	}
	if raw.Status.FaviconPath != "" {
		cfg.Status.FaviconPath = raw.Status.FaviconPath
	}
	if raw.Status.VersionName != "" {
		cfg.Status.VersionName = raw.Status.VersionName
	}
	if raw.Status.ProtocolVersion != 0 {
		cfg.Status.ProtocolVersion = raw.Status.ProtocolVersion
	}
	if raw.Status.MaxPlayers != 0 {
		cfg.Status.MaxPlayers = raw.Status.MaxPlayers
	}
	cfg.ForwardSkinProperties = raw.ForwardSkinProperties

	return cfg, nil
}

// LoadFile opens path and loads a ServerConfig from it.
func LoadFile(path string) (ServerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}
