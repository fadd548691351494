package mojang_test

import (
	"crypto/sha1"
	"testing"

	"mcrelay/internal/mojang"
)

// These are the well-known Mojang test vectors for the Notchian digest
// (https://wiki.vg/Protocol_Encryption#Authentication), computed here over
// the username alone rather than the serverId construction so the digest
// logic can be checked independent of ServerHash's hashing.
func TestNotchianDigestVectors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Notch", "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48"},
		{"jeb_", "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1"},
		{"simon", "88e16a1019277b15d58faf0541e11910eb756f6"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			digest := sha1.Sum([]byte(tt.input))
			got := mojang.NotchianDigest(digest)
			if got != tt.want {
				t.Fatalf("NotchianDigest(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
