package relay

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"

	"mcrelay/internal/config"
	"mcrelay/internal/protocol"
)

// writeLegacyKick sends the UTF-16BE framed response every pre-1.7
// server-list-ping dialect expects: a 0xFF marker, a big-endian code-unit
// count, then the string itself as UTF-16BE code units.
func writeLegacyKick(w io.Writer, s string) error {
	units := utf16.Encode([]rune(s))

	var buf bytes.Buffer
	buf.WriteByte(0xFF)
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(units))); err != nil {
		return err
	}
	for _, u := range units {
		if err := binary.Write(&buf, binary.BigEndian, u); err != nil {
			return err
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// writeLegacy1_6 answers the 1.6 dialect ([0xFE, 0x01, 0xFA, "MC|PingHost", ...]):
// a full protocol/version/motd/player-count reply, the richest of the three.
func writeLegacy1_6(w io.Writer, cfg config.StatusConfig) error {
	s := fmt.Sprintf("§1\x00%d\x00%s\x00%s\x00%d\x00%d",
		cfg.ProtocolVersion, cfg.VersionName, cfg.LegacyDescription, 0, cfg.MaxPlayers)
	return writeLegacyKick(w, s)
}

// writeLegacy1_4To1_5 answers the 1.4-1.5 dialect ([0xFE, 0x01]): the same
// §1-prefixed shape as 1.6 but without having read any ping-host payload.
func writeLegacy1_4To1_5(w io.Writer, cfg config.StatusConfig) error {
	return writeLegacy1_6(w, cfg)
}

// writeLegacyBeta answers the oldest dialect (bare [0xFE]): a plain
// "description§0§0" string with no protocol-version prefix and both
// trailing fields hardcoded to zero, capped at 256 UTF-16 code units.
func writeLegacyBeta(w io.Writer, cfg config.StatusConfig) error {
	s := fmt.Sprintf("%s§0§0", cfg.LegacyDescription)

	if len(utf16.Encode([]rune(s))) > 256 {
		return protocol.ErrBetaLegacyPacketTooBig
	}

	return writeLegacyKick(w, s)
}
