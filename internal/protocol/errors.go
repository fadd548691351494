package protocol

import (
	"errors"
	"fmt"
)

// PacketLimit is the largest a packet's declared length may be: 2^21 - 1,
// the ceiling a 3-byte VarInt can express.
const PacketLimit = 2097151

// ErrPacketTooLarge reports a declared packet length past PacketLimit.
type ErrPacketTooLarge struct {
	Length int32
}

func (e *ErrPacketTooLarge) Error() string {
	return fmt.Sprintf("protocol: packet length %d exceeds limit %d", e.Length, PacketLimit)
}

// ErrUnexpectedPacketID reports a packet id mismatch when the caller
// expected a specific one.
type ErrUnexpectedPacketID struct {
	Expected, Got int32
}

func (e *ErrUnexpectedPacketID) Error() string {
	return fmt.Sprintf("protocol: expected packet id 0x%02x, got 0x%02x", e.Expected, e.Got)
}

// ErrChunkTailNotEmpty would report a cipher that left an unconsumed partial
// block behind. CFB-8 (internal/mcipher) operates a byte at a time, so this
// can never actually be produced by this relay's cipher; it's kept only
// because the legacy block-cipher implementation this is modeled on could
// raise it.
var ErrChunkTailNotEmpty = errors.New("protocol: chunk tail was not empty after cipher pass")

// ErrBetaLegacyPacketTooBig reports a legacy beta status description that
// overflowed the 256 UTF-16 code unit cap.
var ErrBetaLegacyPacketTooBig = errors.New("protocol: beta legacy ping packet exceeds 256 code units")
