package protocol

import (
	"fmt"
	"io"

	"mcrelay/internal/wire"
)

// InitKind discriminates what the very first bytes off a fresh connection
// turn out to be: one of the three pre-1.7 legacy ping dialects, or a
// modern handshake packet.
type InitKind int

const (
	InitLegacy1_6 InitKind = iota
	InitLegacy1_4To1_5
	InitLegacyBeta
	InitModern
)

// InitResult is what ReadInit produces: the dialect it sniffed, and — only
// for InitModern — the handshake packet already parsed out of the stream.
type InitResult struct {
	Kind   InitKind
	Packet *Packet
}

// ReadInit peeks the first bytes of a connection to tell a legacy
// server-list-ping apart from a modern framed packet, per the well-known
// signatures:
//
//	[0xFE, 0x01, 0xFA] -> legacy 1.6
//	[0xFE, 0x01, ...]  -> legacy 1.4-1.5
//	[0xFE, ...]        -> legacy beta 1.8-1.3
//	otherwise          -> modern: the bytes read so far are fed back into
//	                      VarInt parsing rather than unread from the socket.
//
// A beta client writes its single 0xFE byte and then just waits for the kick
// packet; it never sends the 2 further bytes a full 3-byte signature read
// would block on. So this takes whatever a single Read yields — 1, 2, or 3
// bytes — rather than filling the signature buffer, the same way the
// reference implementation does a single non-blocking stream read here.
func ReadInit(r wire.ByteReader) (InitResult, error) {
	var sig [3]byte
	n, err := r.Read(sig[:])
	if n == 0 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return InitResult{}, fmt.Errorf("protocol: reading init signature: %w", err)
	}

	switch {
	case sig[0] == 0xFE && sig[1] == 0x01 && sig[2] == 0xFA:
		return InitResult{Kind: InitLegacy1_6}, nil
	case sig[0] == 0xFE && sig[1] == 0x01:
		return InitResult{Kind: InitLegacy1_4To1_5}, nil
	case sig[0] == 0xFE:
		return InitResult{Kind: InitLegacyBeta}, nil
	}

	fed := wire.NewPrefixedByteReader(sig[:n], r)
	pkt, err := readPlain(fed)
	if err != nil {
		return InitResult{}, err
	}

	return InitResult{Kind: InitModern, Packet: pkt}, nil
}
