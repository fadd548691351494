package relay

import (
	"bytes"

	"mcrelay/internal/protocol"
	"mcrelay/internal/wire"
)

// Intent is the handshake's stated purpose: what state the client wants to
// move into next.
type Intent int32

const (
	IntentStatus   Intent = 1
	IntentLogin    Intent = 2
	IntentTransfer Intent = 3
)

// Handshake is the first packet a modern (1.7+) client sends.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	Intent          int32 // kept raw so Unknown values can be reported verbatim
}

// ReadHandshake parses a Handshake out of pkt's payload.
func ReadHandshake(pkt *protocol.Packet) (Handshake, error) {
	r := bytes.NewReader(pkt.Data)

	protocolVersion, err := wire.ReadVarInt(r)
	if err != nil {
		return Handshake{}, err
	}
	addr, err := wire.ReadString(r)
	if err != nil {
		return Handshake{}, err
	}

	var portBuf [2]byte
	if _, err := r.Read(portBuf[:]); err != nil {
		return Handshake{}, err
	}
	port := uint16(portBuf[0])<<8 | uint16(portBuf[1])

	intent, err := wire.ReadVarInt(r)
	if err != nil {
		return Handshake{}, err
	}

	return Handshake{
		ProtocolVersion: protocolVersion,
		ServerAddress:   addr,
		ServerPort:      port,
		Intent:          intent,
	}, nil
}
