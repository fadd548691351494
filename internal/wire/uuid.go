package wire

import (
	"io"

	"github.com/google/uuid"
)

// WriteUUIDForProtocol encodes id the way the given protocol version expects
// it: raw 16 bytes from V1_16 onward, a hyphenated string for V1_7_6 through
// V1_16, and a compact (no-hyphen) string for anything older.
func WriteUUIDForProtocol(w io.Writer, id uuid.UUID, protocolVersion int32) error {
	switch {
	case protocolVersion >= ProtocolV1_16:
		_, err := w.Write(id[:])
		return err
	case protocolVersion >= ProtocolV1_7_6:
		return WriteString(w, id.String())
	default:
		return WriteString(w, id.String()[:8]+id.String()[9:13]+id.String()[14:18]+id.String()[19:23]+id.String()[24:])
	}
}

// ReadRawUUID reads a 16-byte big-endian UUID, the form LoginStart carries it
// in on protocols new enough to send one at all.
func ReadRawUUID(r ByteReader) (uuid.UUID, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return uuid.UUID{}, err
	}
	return uuid.FromBytes(buf[:])
}
