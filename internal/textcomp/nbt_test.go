package textcomp_test

import (
	"reflect"
	"testing"

	"mcrelay/internal/textcomp"
)

func TestEncodeDecodeString(t *testing.T) {
	c := textcomp.String("hello")
	data, err := textcomp.Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := textcomp.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(c, got) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
	}
}

func TestEncodeDecodeCompound(t *testing.T) {
	c := textcomp.Compound(textcomp.F("text", "hi"), textcomp.F("color", "#36bf5a"))
	data, err := textcomp.Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := textcomp.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(c, got) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
	}
}

func TestEncodeDecodeListOfCompound(t *testing.T) {
	c := textcomp.List(
		textcomp.Compound(textcomp.F("text", "Token: ")),
		textcomp.Compound(textcomp.F("text", "ABCDEFGHIJ"), textcomp.F("color", "#36bf5a")),
		textcomp.Compound(textcomp.F("text", "\n\nUse this token to finish linking your account."), textcomp.F("color", "#919191")),
	)

	data, err := textcomp.Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := textcomp.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(c, got) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
	}
}

func TestValidateRejectsListOfNonCompound(t *testing.T) {
	c := textcomp.Component{
		Kind:  textcomp.KindList,
		Items: []textcomp.Component{textcomp.String("oops")},
	}

	if err := textcomp.Validate(c); err != textcomp.ErrInvalidShape {
		t.Fatalf("Validate() = %v, want ErrInvalidShape", err)
	}

	if _, err := textcomp.Encode(c); err != textcomp.ErrInvalidShape {
		t.Fatalf("Encode() = %v, want ErrInvalidShape", err)
	}
}

func TestEncodeEmptyList(t *testing.T) {
	c := textcomp.List()
	data, err := textcomp.Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := textcomp.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("Decode empty list = %+v, want no items", got)
	}
}
