package wire_test

import (
	"bytes"
	"strings"
	"testing"

	"mcrelay/internal/wire"
)

func TestPacketStringRoundTrip(t *testing.T) {
	tests := []string{"", "Notch", "a server address with spaces", strings.Repeat("x", 254)}

	for _, s := range tests {
		var buf bytes.Buffer
		if err := wire.WriteString(&buf, s); err != nil {
			t.Fatalf("WriteString: %v", err)
		}

		got, err := wire.ReadString(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("ReadString: %v", err)
		}
		if got != s {
			t.Fatalf("roundtrip = %q, want %q", got, s)
		}
	}
}

func TestReadStringInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	_ = wire.WriteVarInt(&buf, 1)
	buf.WriteByte(0xff)

	_, err := wire.ReadString(bytes.NewReader(buf.Bytes()))
	if err != wire.ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestByteArrayRoundTrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	var buf bytes.Buffer
	if err := wire.WriteByteArray(&buf, data); err != nil {
		t.Fatalf("WriteByteArray: %v", err)
	}

	got, err := wire.ReadByteArray(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadByteArray: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("roundtrip = %v, want %v", got, data)
	}
}
