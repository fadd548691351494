package relay

import (
	"bytes"

	"github.com/google/uuid"

	"mcrelay/internal/protocol"
	"mcrelay/internal/wire"
)

// LoginStart is the first packet a client sends once it has picked the
// login intent: its username, and — on newer clients — a self-asserted
// UUID that the relay never trusts (the authoritative one comes back from
// the session verifier).
type LoginStart struct {
	Name string
	UUID *uuid.UUID
}

// ReadLoginStart parses a LoginStart out of pkt's payload. The UUID field is
// optional: older clients omit it entirely.
func ReadLoginStart(pkt *protocol.Packet) (LoginStart, error) {
	r := bytes.NewReader(pkt.Data)

	name, err := wire.ReadString(r)
	if err != nil {
		return LoginStart{}, err
	}

	var id *uuid.UUID
	if r.Len() > 0 {
		parsed, err := wire.ReadRawUUID(r)
		if err != nil {
			return LoginStart{}, err
		}
		id = &parsed
	}

	return LoginStart{Name: name, UUID: id}, nil
}
