package relay

import (
	"bytes"
	"io"

	"mcrelay/internal/mojang"
	"mcrelay/internal/textcomp"
	"mcrelay/internal/wire"
)

func encryptionRequestPayload(serverID string, encodedPublicKey, verifyToken []byte, shouldAuthenticate bool) []byte {
	var buf bytes.Buffer
	_ = wire.WriteString(&buf, serverID)
	_ = wire.WriteByteArray(&buf, encodedPublicKey)
	_ = wire.WriteByteArray(&buf, verifyToken)
	// The trailing should-authenticate flag is only part of the packet for
	// protocols new enough to carry it; older clients get no byte at all.
	if shouldAuthenticate {
		buf.WriteByte(boolByte(shouldAuthenticate))
	}
	return buf.Bytes()
}

type encryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

func readEncryptionResponse(data []byte) (encryptionResponse, error) {
	r := bytes.NewReader(data)

	secret, err := wire.ReadByteArray(r)
	if err != nil {
		return encryptionResponse{}, err
	}
	token, err := wire.ReadByteArray(r)
	if err != nil {
		return encryptionResponse{}, err
	}

	return encryptionResponse{SharedSecret: secret, VerifyToken: token}, nil
}

func setCompressionPayload(threshold int32) []byte {
	var buf bytes.Buffer
	_ = wire.WriteVarInt(&buf, threshold)
	return buf.Bytes()
}

// loginSuccessPayload builds the LoginSuccess body: the profile's uuid
// (encoded per protocol version), username, and signed properties — empty
// unless ServerConfig.ForwardSkinProperties asked for them.
func loginSuccessPayload(profile mojang.GameProfile, protocolVersion int32, forwardProperties bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteUUIDForProtocol(&buf, profile.ID, protocolVersion); err != nil {
		return nil, err
	}
	if err := wire.WriteString(&buf, profile.Name); err != nil {
		return nil, err
	}

	properties := profile.Properties
	if !forwardProperties {
		properties = nil
	}

	if err := wire.WriteVarInt(&buf, int32(len(properties))); err != nil {
		return nil, err
	}
	for _, prop := range properties {
		if err := wire.WriteString(&buf, prop.Name); err != nil {
			return nil, err
		}
		if err := wire.WriteString(&buf, prop.Value); err != nil {
			return nil, err
		}
		if err := wire.WriteOptional(&buf, prop.Signature, writeStringValue); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func writeStringValue(w io.Writer, s string) error {
	return wire.WriteString(w, s)
}

func disconnectConfigurationPayload(c textcomp.Component) ([]byte, error) {
	return textcomp.Encode(c)
}

func statusResponsePayload(json string) []byte {
	var buf bytes.Buffer
	_ = wire.WriteString(&buf, json)
	return buf.Bytes()
}

func pongResponsePayload(timestamp int64) []byte {
	var buf bytes.Buffer
	var b [8]byte
	putInt64(b[:], timestamp)
	buf.Write(b[:])
	return buf.Bytes()
}

func putInt64(b []byte, v int64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
