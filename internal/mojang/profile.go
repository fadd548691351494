package mojang

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// GameProfile is the body of Mojang's hasJoined response: the authoritative
// account identity for whoever just completed the encryption handshake.
type GameProfile struct {
	ID         uuid.UUID          `json:"-"`
	Name       string             `json:"name"`
	Properties []GameProfileProp  `json:"properties"`
}

// GameProfileProp is a single signed property (most commonly "textures",
// carrying the player's skin) attached to a GameProfile.
type GameProfileProp struct {
	Name      string  `json:"name"`
	Value     string  `json:"value"`
	Signature *string `json:"signature,omitempty"`
}

// gameProfileWire is the wire shape of GameProfile: Mojang serializes the
// UUID as a bare 32-character hex string with no hyphens, which doesn't
// round-trip through uuid.UUID's default JSON marshaling.
type gameProfileWire struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Properties []GameProfileProp `json:"properties"`
}

// UnmarshalJSON parses Mojang's hyphen-less hex UUID into ID.
func (p *GameProfile) UnmarshalJSON(data []byte) error {
	var wire gameProfileWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	id, err := parseUndashedUUID(wire.ID)
	if err != nil {
		return fmt.Errorf("mojang: parsing profile id %q: %w", wire.ID, err)
	}

	p.ID = id
	p.Name = wire.Name
	p.Properties = wire.Properties
	return nil
}

// MarshalJSON emits the same hyphen-less hex form Mojang uses, the inverse
// of UnmarshalJSON.
func (p GameProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameProfileWire{
		ID:         p.ID.String()[:8] + p.ID.String()[9:13] + p.ID.String()[14:18] + p.ID.String()[19:23] + p.ID.String()[24:],
		Name:       p.Name,
		Properties: p.Properties,
	})
}

func parseUndashedUUID(s string) (uuid.UUID, error) {
	if len(s) == 32 {
		s = s[:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:]
	}
	return uuid.Parse(s)
}
