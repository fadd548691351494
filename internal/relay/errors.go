package relay

import "fmt"

// ErrMismatchedVerifyTokens reports that the client's encryption response
// didn't echo back the verify token the relay sent it. Sample holds only
// the last four bytes of each side, enough to eyeball a real mismatch
// without logging full key material.
type ErrMismatchedVerifyTokens struct {
	SentSample, GotSample []byte
}

func (e *ErrMismatchedVerifyTokens) Error() string {
	return fmt.Sprintf("relay: mismatched verify tokens, sample: %x != %x", e.SentSample, e.GotSample)
}

// ErrMismatchedUsernames reports that the session-verified GameProfile name
// doesn't match what LoginStart claimed.
type ErrMismatchedUsernames struct {
	LoginStartName, ProfileName string
}

func (e *ErrMismatchedUsernames) Error() string {
	return fmt.Sprintf("relay: usernames differed during authentication: %q != %q", e.LoginStartName, e.ProfileName)
}

// ErrUnknownHandshakeIntent reports a handshake whose intent value isn't
// status, login, or transfer.
type ErrUnknownHandshakeIntent struct {
	Intent int32
}

func (e *ErrUnknownHandshakeIntent) Error() string {
	return fmt.Sprintf("relay: unknown handshake intent: %d", e.Intent)
}

// ErrNoUUID reports a LoginStart whose self-asserted UUID the relay needed
// but didn't get.
type ErrNoUUID struct {
	Username string
}

func (e *ErrNoUUID) Error() string {
	return fmt.Sprintf("relay: no uuid from LoginStart(username:%s)", e.Username)
}
