package relay

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"mcrelay/internal/mcipher"
	"mcrelay/internal/mkeys"
	"mcrelay/internal/mojang"
	"mcrelay/internal/protocol"
	"mcrelay/internal/wire"
)

const serverID = "mc_headless_auth"

// verifyTokenLength matches the reference implementation's own choice: any
// length works since the client only ever has to echo it back, but 64
// random bytes makes a brute-force guess pointless.
const verifyTokenLength = 64

// authResult carries everything the login flow produces once encryption
// and session verification both succeed.
type authResult struct {
	Enc     *mcipher.Stream
	Dec     *mcipher.Stream
	Profile mojang.GameProfile
}

// authenticate drives the encryption-request/response exchange, decrypts
// the shared secret, verifies the client against Mojang's session server,
// and returns the cipher pair the rest of the connection switches to.
func authenticate(
	ctx context.Context,
	w io.Writer,
	r wire.ByteReader,
	keys *mkeys.KeyPair,
	verifier mojang.SessionVerifier,
	loginStart LoginStart,
	protocolVersion int32,
	forwardSkinProperties bool,
) (*authResult, error) {
	verifyToken := make([]byte, verifyTokenLength)
	if _, err := rand.Read(verifyToken); err != nil {
		return nil, fmt.Errorf("relay: generating verify token: %w", err)
	}

	encodedPublicKey := keys.EncodedPublicKey()
	shouldAuthenticate := protocolVersion > 766 // V1_20_5

	payload := encryptionRequestPayload(serverID, encodedPublicKey, verifyToken, shouldAuthenticate)
	if err := protocol.Write(w, idEncryptionRequest, payload); err != nil {
		return nil, fmt.Errorf("relay: sending encryption request: %w", err)
	}

	pkt, err := protocol.ReadExpected(r, idEncryptionResponse)
	if err != nil {
		return nil, fmt.Errorf("relay: reading encryption response: %w", err)
	}

	resp, err := readEncryptionResponse(pkt.Data)
	if err != nil {
		return nil, err
	}

	sharedSecret, err := keys.Decrypt(resp.SharedSecret)
	if err != nil {
		return nil, fmt.Errorf("relay: decrypting shared secret: %w", err)
	}
	gotVerifyToken, err := keys.Decrypt(resp.VerifyToken)
	if err != nil {
		return nil, fmt.Errorf("relay: decrypting verify token: %w", err)
	}

	if !bytes.Equal(verifyToken, gotVerifyToken) {
		return nil, &ErrMismatchedVerifyTokens{
			SentSample: lastN(verifyToken, 4),
			GotSample:  lastN(gotVerifyToken, 4),
		}
	}

	serverHash := mojang.ServerHash(sharedSecret, encodedPublicKey)
	profile, err := verifier.Verify(ctx, loginStart.Name, serverHash)
	if err != nil {
		return nil, fmt.Errorf("relay: session verify: %w", err)
	}
	if profile.Name != loginStart.Name {
		return nil, &ErrMismatchedUsernames{LoginStartName: loginStart.Name, ProfileName: profile.Name}
	}

	cipherPair, err := mcipher.NewPair(sharedSecret)
	if err != nil {
		return nil, err
	}

	if err := protocol.WriteEncrypted(w, cipherPair.Enc, idSetCompression, setCompressionPayload(0)); err != nil {
		return nil, fmt.Errorf("relay: sending set compression: %w", err)
	}

	successPayload, err := loginSuccessPayload(*profile, protocolVersion, forwardSkinProperties)
	if err != nil {
		return nil, err
	}
	if err := protocol.WriteCompressedEncrypted(w, cipherPair.Enc, idLoginSuccess, successPayload); err != nil {
		return nil, fmt.Errorf("relay: sending login success: %w", err)
	}

	if _, err := protocol.ReadCompressedEncrypted(r, cipherPair.Dec, idLoginAcknowledged); err != nil {
		return nil, fmt.Errorf("relay: reading login acknowledged: %w", err)
	}

	return &authResult{Enc: cipherPair.Enc, Dec: cipherPair.Dec, Profile: *profile}, nil
}

func lastN(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}
