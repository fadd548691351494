package relay

// Packet ids the relay actually sends or expects. Client/server-bound ids
// collide by number across states; the constant names spell out which is
// which, and the caller's state already pins down which table applies.
const (
	idStatusRequest  int32 = 0x00
	idStatusResponse int32 = 0x00

	idPingRequest  int32 = 0x01
	idPongResponse int32 = 0x01

	idLoginStart         int32 = 0x00
	idEncryptionRequest  int32 = 0x01
	idEncryptionResponse int32 = 0x01
	idLoginSuccess       int32 = 0x02
	idSetCompression     int32 = 0x03
	idLoginAcknowledged  int32 = 0x03

	idDisconnectConfiguration int32 = 0x02
)
