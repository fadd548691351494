package mkeys_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"mcrelay/internal/mkeys"
)

func TestGenerateAndDecrypt(t *testing.T) {
	kp, err := mkeys.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(kp.EncodedPublicKey()) == 0 {
		t.Fatal("expected non-empty encoded public key")
	}

	secret := []byte("0123456789abcdef")
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, kp.Public, secret)
	if err != nil {
		t.Fatalf("EncryptPKCS1v15: %v", err)
	}

	got, err := kp.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("got %q, want %q", got, secret)
	}
}
