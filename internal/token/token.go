// Package token mints, displays, and stores the short-lived opaque tokens
// handed to a client in its disconnect message once authentication succeeds.
package token

import (
	"crypto/rand"
	"fmt"
)

// Token is a short, uppercase A-Z identifier minted for one authenticated
// connection. A third-party app can look it up repeatedly until it expires;
// lookup never consumes it.
type Token string

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Length is the number of characters in a minted token.
const Length = 10

// Generator mints fresh tokens. ServerConfig accepts an alternate
// implementation so callers can plug in their own token shape.
type Generator interface {
	Generate() (Token, error)
}

// RandomGenerator mints tokens by rejection-sampling uniform bytes from
// crypto/rand into the A-Z alphabet, avoiding the modulo bias a plain
// byte%26 would introduce.
type RandomGenerator struct{}

func (RandomGenerator) Generate() (Token, error) {
	out := make([]byte, Length)
	buf := make([]byte, 1)

	const maxMultiple = 256 - (256 % len(alphabet))

	for i := range out {
		for {
			if _, err := rand.Read(buf); err != nil {
				return "", fmt.Errorf("token: reading random byte: %w", err)
			}
			if int(buf[0]) >= maxMultiple {
				continue
			}
			out[i] = alphabet[int(buf[0])%len(alphabet)]
			break
		}
	}

	return Token(out), nil
}
