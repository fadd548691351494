package relay

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"os"

	"mcrelay/internal/config"
	"mcrelay/internal/wire"
)

type statusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type statusPlayers struct {
	Max    int                  `json:"max"`
	Online int                  `json:"online"`
	Sample []statusPlayerSample `json:"sample"`
}

type statusPlayerSample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type statusDescription struct {
	Text string `json:"text"`
}

type statusResponse struct {
	Version            statusVersion   `json:"version"`
	Players            statusPlayers   `json:"players"`
	Description        json.RawMessage `json:"description"`
	Favicon            string          `json:"favicon,omitempty"`
	EnforcesSecureChat bool            `json:"enforcesSecureChat"`
}

// buildStatusJSON renders the status-ping response body. Below the
// supported minimum protocol, the configured description is swapped out
// for the plain legacy string, the way a real server nudges outdated
// clients toward upgrading.
func buildStatusJSON(protocolVersion int32, cfg config.StatusConfig) (string, error) {
	descriptionText := cfg.Description
	if protocolVersion < wire.MinSupportedProtocol {
		descriptionText = cfg.LegacyDescription
	}
	description, err := json.Marshal(statusDescription{Text: descriptionText})
	if err != nil {
		return "", err
	}

	favicon, err := loadFavicon(cfg.FaviconPath)
	if err != nil {
		return "", err
	}

	resp := statusResponse{
		Version: statusVersion{
			Name:     cfg.VersionName,
			Protocol: protocolVersion,
		},
		Players: statusPlayers{
			Max:    cfg.MaxPlayers,
			Online: 0,
			Sample: []statusPlayerSample{},
		},
		Description:        description,
		Favicon:            favicon,
		EnforcesSecureChat: false,
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("relay: marshaling status response: %w", err)
	}
	return string(out), nil
}

// loadFavicon reads and base64-encodes a PNG favicon, omitting it entirely
// (rather than failing the status response) when the configured path is
// empty or the image exceeds the 64x64 limit Minecraft clients enforce.
func loadFavicon(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("relay: reading favicon %s: %w", path, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("relay: decoding favicon %s: %w", path, err)
	}
	if cfg.Width > 64 || cfg.Height > 64 {
		return "", nil
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw), nil
}
