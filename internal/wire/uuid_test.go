package wire_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"

	"mcrelay/internal/wire"
)

func TestWriteUUIDForProtocolModern(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")

	var buf bytes.Buffer
	if err := wire.WriteUUIDForProtocol(&buf, id, wire.ProtocolV1_21_2); err != nil {
		t.Fatalf("WriteUUIDForProtocol: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), id[:]) {
		t.Fatalf("modern encoding should be raw 16 bytes, got %x", buf.Bytes())
	}

	got, err := wire.ReadRawUUID(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadRawUUID: %v", err)
	}
	if got != id {
		t.Fatalf("got %v, want %v", got, id)
	}
}

func TestWriteUUIDForProtocolLegacy(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")

	var buf bytes.Buffer
	if err := wire.WriteUUIDForProtocol(&buf, id, wire.ProtocolV1_7_6); err != nil {
		t.Fatalf("WriteUUIDForProtocol: %v", err)
	}

	s, err := wire.ReadString(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != id.String() {
		t.Fatalf("got %q, want hyphenated %q", s, id.String())
	}
}
