// Package protocol frames Minecraft packets onto a connection: plain,
// encrypted, and compressed-plus-encrypted, plus the legacy pre-1.7
// server-list-ping sniff that has to happen before any of that framing
// begins.
package protocol

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"mcrelay/internal/mcipher"
	"mcrelay/internal/wire"
)

// Packet is one parsed frame: an id and its payload, length already
// accounted for.
type Packet struct {
	ID   int32
	Data []byte
}

// Write sends id/data as a plain frame: length ‖ id ‖ payload.
func Write(w io.Writer, id int32, data []byte) error {
	frame, err := buildFrame(id, data)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

// WriteEncrypted sends id/data as a plain frame run through enc in place.
func WriteEncrypted(w io.Writer, enc *mcipher.Stream, id int32, data []byte) error {
	frame, err := buildFrame(id, data)
	if err != nil {
		return err
	}
	enc.InPlace(frame)
	_, err = w.Write(frame)
	return err
}

func buildFrame(id int32, data []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := wire.WriteVarInt(&body, id); err != nil {
		return nil, err
	}
	body.Write(data)

	var frame bytes.Buffer
	if err := wire.WriteVarInt(&frame, int32(body.Len())); err != nil {
		return nil, err
	}
	frame.Write(body.Bytes())
	return frame.Bytes(), nil
}

// WriteCompressedEncrypted sends id/data through the post-SetCompression
// frame shape: inner = id ‖ payload, zlib-compressed at level 4, then
// wrapped as outer = varint(outerLen) ‖ varint(uncompressedLen) ‖ zlib(inner),
// the whole thing finally run through enc in place.
func WriteCompressedEncrypted(w io.Writer, enc *mcipher.Stream, id int32, data []byte) error {
	var inner bytes.Buffer
	if err := wire.WriteVarInt(&inner, id); err != nil {
		return err
	}
	inner.Write(data)
	uncompressedLen := inner.Len()

	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, 4)
	if err != nil {
		return fmt.Errorf("protocol: creating zlib writer: %w", err)
	}
	if _, err := zw.Write(inner.Bytes()); err != nil {
		return fmt.Errorf("protocol: compressing packet: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("protocol: closing zlib writer: %w", err)
	}

	var outerBody bytes.Buffer
	if err := wire.WriteVarInt(&outerBody, int32(uncompressedLen)); err != nil {
		return err
	}
	outerBody.Write(compressed.Bytes())

	var frame bytes.Buffer
	if err := wire.WriteVarInt(&frame, int32(outerBody.Len())); err != nil {
		return err
	}
	frame.Write(outerBody.Bytes())

	out := frame.Bytes()
	enc.InPlace(out)
	_, err = w.Write(out)
	return err
}

// ReadExpected reads one plain frame and verifies its id matches expectedID.
func ReadExpected(r wire.ByteReader, expectedID int32) (*Packet, error) {
	pkt, err := readPlain(r)
	if err != nil {
		return nil, err
	}
	if pkt.ID != expectedID {
		return nil, &ErrUnexpectedPacketID{Expected: expectedID, Got: pkt.ID}
	}
	return pkt, nil
}

// readPlain reads one plain frame without asserting its id, used for the
// handshake packet (whose id the caller doesn't know ahead of parsing it).
func readPlain(r wire.ByteReader) (*Packet, error) {
	length, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if length > PacketLimit {
		return nil, &ErrPacketTooLarge{Length: length}
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("protocol: reading packet body: %w", err)
	}

	body := bytes.NewReader(buf)
	id, err := wire.ReadVarInt(body)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, body.Len())
	_, _ = body.Read(payload)

	return &Packet{ID: id, Data: payload}, nil
}

// ReadCompressedEncrypted reads one post-SetCompression frame: the outer
// VarInt length is itself encrypted, so its bytes are decrypted one at a
// time as they're read (the length isn't known until decryption reveals
// each continuation bit); the remaining outerLen bytes are then decrypted,
// decompressed, and the id parsed out of the result.
func ReadCompressedEncrypted(r wire.ByteReader, dec *mcipher.Stream, expectedID int32) (*Packet, error) {
	outerLen, err := readVarIntDecrypting(r, dec)
	if err != nil {
		return nil, err
	}

	outer := make([]byte, outerLen)
	if _, err := io.ReadFull(r, outer); err != nil {
		return nil, fmt.Errorf("protocol: reading compressed packet body: %w", err)
	}
	dec.InPlace(outer)

	outerReader := bytes.NewReader(outer)
	if _, err := wire.ReadVarInt(outerReader); err != nil { // uncompressed length, unused on read
		return nil, err
	}

	compressed := make([]byte, outerReader.Len())
	_, _ = outerReader.Read(compressed)

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("protocol: opening zlib reader: %w", err)
	}
	defer func() { _ = zr.Close() }()

	inner, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("protocol: decompressing packet: %w", err)
	}

	innerReader := bytes.NewReader(inner)
	id, err := wire.ReadVarInt(innerReader)
	if err != nil {
		return nil, err
	}
	if id != expectedID {
		return nil, &ErrUnexpectedPacketID{Expected: expectedID, Got: id}
	}

	payload := make([]byte, innerReader.Len())
	_, _ = innerReader.Read(payload)

	return &Packet{ID: id, Data: payload}, nil
}

func readVarIntDecrypting(r wire.ByteReader, dec *mcipher.Stream) (int32, error) {
	var value int32
	var position uint
	buf := make([]byte, 1)

	for {
		if position >= 35 {
			return 0, wire.ErrOversizedVarInt
		}

		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		buf[0] = b
		dec.InPlace(buf)

		value |= int32(buf[0]&0x7F) << position
		if buf[0]&0x80 == 0 {
			return value, nil
		}
		position += 7
	}
}
