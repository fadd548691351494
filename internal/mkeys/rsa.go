// Package mkeys generates the RSA keypair a relay process uses for its
// entire lifetime and caches its SubjectPublicKeyInfo DER encoding, the form
// the encryption-request packet and the Mojang server-hash both need.
package mkeys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
)

// rsaBits matches spec.md §4.4 — Minecraft's login encryption has always
// used a 1024-bit RSA key, regardless of what the server's real TLS
// certificate (if any) would use elsewhere.
const rsaBits = 1024

// KeyPair bundles a process-lifetime RSA keypair with its cached
// SubjectPublicKeyInfo DER encoding.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey

	encodedPublic []byte
}

// Generate creates a fresh RSA-1024 keypair and pre-computes its SPKI
// encoding.
func Generate() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return nil, fmt.Errorf("mkeys: generate rsa key: %w", err)
	}

	kp := &KeyPair{Private: priv, Public: &priv.PublicKey}

	encoded, err := x509.MarshalPKIXPublicKey(kp.Public)
	if err != nil {
		return nil, fmt.Errorf("mkeys: marshal subject public key info: %w", err)
	}
	kp.encodedPublic = encoded

	return kp, nil
}

// EncodedPublicKey returns the cached SubjectPublicKeyInfo DER encoding sent
// in the EncryptionRequest packet and mixed into the Mojang server hash.
func (kp *KeyPair) EncodedPublicKey() []byte {
	return kp.encodedPublic
}

// Decrypt unwraps an RSA/PKCS1v15-encrypted value (the shared secret or the
// verify token) using the private key.
func (kp *KeyPair) Decrypt(ciphertext []byte) ([]byte, error) {
	plain, err := rsa.DecryptPKCS1v15(rand.Reader, kp.Private, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("mkeys: rsa decrypt: %w", err)
	}
	return plain, nil
}
