package token_test

import (
	"testing"
	"time"

	"mcrelay/internal/mojang"
	"mcrelay/internal/token"

	"github.com/google/uuid"
)

func TestRandomGeneratorShape(t *testing.T) {
	var gen token.RandomGenerator

	seen := make(map[token.Token]bool)
	for i := 0; i < 100; i++ {
		tok, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(tok) != token.Length {
			t.Fatalf("Generate() length = %d, want %d", len(tok), token.Length)
		}
		for _, r := range string(tok) {
			if r < 'A' || r > 'Z' {
				t.Fatalf("Generate() = %q contains non-A-Z rune %q", tok, r)
			}
		}
		seen[tok] = true
	}
	if len(seen) < 90 {
		t.Fatalf("Generate() produced too many collisions across 100 draws: %d unique", len(seen))
	}
}

func TestDisplayPreservesLength(t *testing.T) {
	tok := token.Token("ABCDEFGHIJ")
	display := tok.Display()
	if len([]rune(display)) != len(tok) {
		t.Fatalf("Display() rune count = %d, want %d", len([]rune(display)), len(tok))
	}
	if display == string(tok) {
		t.Fatalf("Display() = %q, want transformed homoglyphs distinct from plain token", display)
	}
}

func TestStoreInsertGetResolvesRepeatedly(t *testing.T) {
	s := token.NewStore(time.Minute)
	defer s.Close()

	profile := mojang.GameProfile{ID: uuid.New(), Name: "Notch"}
	tok := token.Token("ABCDEFGHIJ")
	s.Insert(tok, profile)

	got, ok := s.Get(tok)
	if !ok {
		t.Fatalf("Get() ok = false, want true")
	}
	if got.Name != "Notch" {
		t.Fatalf("Get() profile = %+v, want Name Notch", got)
	}

	// Get is non-destructive: a live token keeps resolving, unlike a
	// redeem-once token.
	if _, ok := s.Get(tok); !ok {
		t.Fatalf("second Get() ok = false, want true (get must not consume the binding)")
	}
}

func TestStoreExpiresEntries(t *testing.T) {
	s := token.NewStore(100 * time.Millisecond)
	defer s.Close()

	tok := token.Token("ABCDEFGHIJ")
	s.Insert(tok, mojang.GameProfile{ID: uuid.New(), Name: "Notch"})

	time.Sleep(300 * time.Millisecond)

	if _, ok := s.Get(tok); ok {
		t.Fatalf("Get() ok = true after TTL elapsed, want false")
	}
}

func TestStoreUnknownTokenMisses(t *testing.T) {
	s := token.NewStore(time.Minute)
	defer s.Close()

	if _, ok := s.Get(token.Token("ZZZZZZZZZZ")); ok {
		t.Fatalf("Get() ok = true for unknown token, want false")
	}
}

func TestStoreCloseIdempotent(t *testing.T) {
	s := token.NewStore(time.Minute)
	s.Close()
	s.Close()
}
