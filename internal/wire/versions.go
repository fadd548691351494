// Package wire implements the Minecraft Java Edition wire primitives: VarInt,
// length-prefixed byte arrays, UTF-8 strings, optionals, and the
// protocol-version-gated UUID encoding.
package wire

// Protocol version numbers referenced by the login handshake and the UUID
// encoding rules. Named the way the upstream project names them, not after
// a particular Minecraft release string, since the wire format is keyed off
// the protocol number.
const (
	ProtocolV1_7_6  int32 = 5
	ProtocolV1_16   int32 = 735
	ProtocolV1_20_5 int32 = 766
	ProtocolV1_21_2 int32 = 768

	MinSupportedProtocol = ProtocolV1_21_2
)
