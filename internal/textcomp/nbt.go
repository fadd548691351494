// Package textcomp builds the disconnect text component Minecraft clients
// render on screen, and encodes it as the small subset of (network) NBT the
// login/configuration Disconnect packets carry: a plain string, a compound,
// or a list of compounds.
package textcomp

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// Kind discriminates the three shapes a text component may take, matching
// spec.md §4.6's validation rule for the Disconnect payload.
type Kind int

const (
	KindString Kind = iota
	KindCompound
	KindList
)

// Field is a single named entry inside a Compound (e.g. "text", "color").
type Field struct {
	Key   string
	Value string
}

// Component is a text component value: a plain string, a compound of string
// fields, or a list of such compounds.
type Component struct {
	Kind   Kind
	Str    string
	Fields []Field
	Items  []Component
}

// String builds a plain-string text component.
func String(s string) Component { return Component{Kind: KindString, Str: s} }

// Compound builds a compound text component out of ordered fields.
func Compound(fields ...Field) Component { return Component{Kind: KindCompound, Fields: fields} }

// List builds a list-of-compound text component.
func List(items ...Component) Component { return Component{Kind: KindList, Items: items} }

// F is shorthand for a string-valued compound field.
func F(key, value string) Field { return Field{Key: key, Value: value} }

// ErrInvalidShape is spec.md §4.6's InvalidMessageNbtShape error: a
// Disconnect payload must be a Compound, a List of Compounds, or a plain
// String, nothing else.
var ErrInvalidShape = errors.New("textcomp: component must be a compound, a list of compounds, or a string")

// Validate enforces the shape invariant before the component is ever
// serialized onto the wire.
func Validate(c Component) error {
	switch c.Kind {
	case KindString, KindCompound:
		return nil
	case KindList:
		for _, item := range c.Items {
			if item.Kind != KindCompound {
				return ErrInvalidShape
			}
		}
		return nil
	default:
		return ErrInvalidShape
	}
}

const (
	tagEnd      = 0x00
	tagString   = 0x08
	tagCompound = 0x0A
	tagList     = 0x09
)

// Encode renders c as network NBT: a leading tag-type byte followed by the
// tag's payload, with no root name (the packet field itself is already typed
// as a text component, the way Minecraft's post-1.20.3 network NBT omits
// the redundant root name present in file-format NBT).
func Encode(c Component) ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte(tagTypeOf(c))
	writePayload(&buf, c)
	return buf.Bytes(), nil
}

func tagTypeOf(c Component) byte {
	switch c.Kind {
	case KindString:
		return tagString
	case KindList:
		return tagList
	default:
		return tagCompound
	}
}

func writePayload(buf *bytes.Buffer, c Component) {
	switch c.Kind {
	case KindString:
		writeNBTString(buf, c.Str)
	case KindCompound:
		writeCompoundPayload(buf, c.Fields)
	case KindList:
		writeListPayload(buf, c.Items)
	}
}

func writeCompoundPayload(buf *bytes.Buffer, fields []Field) {
	for _, f := range fields {
		buf.WriteByte(tagString)
		writeNBTString(buf, f.Key)
		writeNBTString(buf, f.Value)
	}
	buf.WriteByte(tagEnd)
}

func writeListPayload(buf *bytes.Buffer, items []Component) {
	if len(items) == 0 {
		buf.WriteByte(tagEnd)
		_ = binary.Write(buf, binary.BigEndian, int32(0))
		return
	}

	buf.WriteByte(tagCompound)
	_ = binary.Write(buf, binary.BigEndian, int32(len(items)))
	for _, item := range items {
		writeCompoundPayload(buf, item.Fields)
	}
}

func writeNBTString(buf *bytes.Buffer, s string) {
	_ = binary.Write(buf, binary.BigEndian, uint16(len(s)))
	buf.WriteString(s)
}

// Decode parses bytes produced by Encode back into a Component, used by the
// test suite to check Encode/Decode round-trip.
func Decode(data []byte) (Component, error) {
	r := bytes.NewReader(data)
	tagType, err := r.ReadByte()
	if err != nil {
		return Component{}, err
	}
	return readTag(r, tagType)
}

func readTag(r *bytes.Reader, tagType byte) (Component, error) {
	switch tagType {
	case tagString:
		s, err := readNBTString(r)
		return String(s), err
	case tagCompound:
		fields, err := readCompoundPayload(r)
		return Compound(fields...), err
	case tagList:
		items, err := readListPayload(r)
		return List(items...), err
	default:
		return Component{}, ErrInvalidShape
	}
}

func readCompoundPayload(r *bytes.Reader) ([]Field, error) {
	var fields []Field
	for {
		t, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if t == tagEnd {
			return fields, nil
		}
		key, err := readNBTString(r)
		if err != nil {
			return nil, err
		}
		value, err := readNBTString(r)
		if err != nil {
			return nil, err
		}
		fields = append(fields, F(key, value))
	}
}

func readListPayload(r *bytes.Reader) ([]Component, error) {
	elemType, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	var count int32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	if elemType != tagCompound {
		return nil, ErrInvalidShape
	}

	items := make([]Component, 0, count)
	for i := int32(0); i < count; i++ {
		fields, err := readCompoundPayload(r)
		if err != nil {
			return nil, err
		}
		items = append(items, Compound(fields...))
	}
	return items, nil
}

func readNBTString(r *bytes.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := r.Read(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
