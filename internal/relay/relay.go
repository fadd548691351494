// Package relay implements the Minecraft protocol state machine: handshake
// dispatch, the modern login/authentication sequence, the status-ping
// responder, and the three legacy pre-1.7 ping dialects. It never runs any
// game logic — every successful path ends in a legacy kick reply, a status
// pong, or a Disconnect packet.
package relay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"

	"mcrelay/internal/broadcast"
	"mcrelay/internal/config"
	"mcrelay/internal/mkeys"
	"mcrelay/internal/mojang"
	"mcrelay/internal/protocol"
	"mcrelay/internal/textcomp"
	"mcrelay/internal/token"
)

// MessageGenerator is an alias for the disconnect-message hook ServerConfig
// carries, kept local so callers of this package only ever import relay and
// config, not textcomp directly.
type MessageGenerator = textcomp.MessageGenerator

// ConnDeps is everything one connection's handler needs beyond the raw
// socket: the shared RSA keys (generated once at server start and read-only
// from here on), the event bus, the configured generator hooks, the session
// verifier, and the status/forwarding configuration.
type ConnDeps struct {
	Keys             *mkeys.KeyPair
	Broadcast        *broadcast.Bus
	TokenGenerator   token.Generator
	MessageGenerator MessageGenerator
	Verifier         mojang.SessionVerifier
	Status           config.StatusConfig
	ForwardSkinProps bool
}

// Handle drives one connection end to end: it never returns until the
// protocol dialog is finished (legacy kick sent, or the modern path ran
// through handshake -> status|login -> disconnect), or an error aborts it.
// The caller is responsible for closing conn afterward.
func Handle(ctx context.Context, conn net.Conn, deps ConnDeps) error {
	reader := bufio.NewReader(conn)

	init, err := protocol.ReadInit(reader)
	if err != nil {
		return fmt.Errorf("relay: reading init: %w", err)
	}

	switch init.Kind {
	case protocol.InitLegacy1_6:
		return writeLegacy1_6(conn, deps.Status)
	case protocol.InitLegacy1_4To1_5:
		return writeLegacy1_4To1_5(conn, deps.Status)
	case protocol.InitLegacyBeta:
		return writeLegacyBeta(conn, deps.Status)
	}

	handshake, err := ReadHandshake(init.Packet)
	if err != nil {
		return fmt.Errorf("relay: reading handshake: %w", err)
	}

	switch Intent(handshake.Intent) {
	case IntentStatus:
		return handleStatus(conn, reader, handshake, deps.Status)
	case IntentLogin, IntentTransfer:
		return handleLogin(ctx, conn, reader, handshake, deps)
	default:
		return &ErrUnknownHandshakeIntent{Intent: handshake.Intent}
	}
}

func handleStatus(w io.Writer, r *bufio.Reader, handshake Handshake, status config.StatusConfig) error {
	if _, err := protocol.ReadExpected(r, idStatusRequest); err != nil {
		return fmt.Errorf("relay: reading status request: %w", err)
	}

	statusJSON, err := buildStatusJSON(handshake.ProtocolVersion, status)
	if err != nil {
		return err
	}
	if err := protocol.Write(w, idStatusResponse, statusResponsePayload(statusJSON)); err != nil {
		return fmt.Errorf("relay: sending status response: %w", err)
	}

	pingPkt, err := protocol.ReadExpected(r, idPingRequest)
	if err != nil {
		return fmt.Errorf("relay: reading ping request: %w", err)
	}
	timestamp := readInt64(pingPkt.Data)

	if err := protocol.Write(w, idPongResponse, pongResponsePayload(timestamp)); err != nil {
		return fmt.Errorf("relay: sending pong response: %w", err)
	}

	return nil
}

func handleLogin(ctx context.Context, conn net.Conn, reader *bufio.Reader, handshake Handshake, deps ConnDeps) error {
	pkt, err := protocol.ReadExpected(reader, idLoginStart)
	if err != nil {
		return fmt.Errorf("relay: reading login start: %w", err)
	}
	loginStart, err := ReadLoginStart(pkt)
	if err != nil {
		return err
	}

	result, err := authenticate(ctx, conn, reader, deps.Keys, deps.Verifier, loginStart, handshake.ProtocolVersion, deps.ForwardSkinProps)
	if err != nil {
		return err
	}

	tok, err := deps.TokenGenerator.Generate()
	if err != nil {
		return fmt.Errorf("relay: generating token: %w", err)
	}

	component := deps.MessageGenerator.Message(tok.Display())
	payload, err := disconnectConfigurationPayload(component)
	if err != nil {
		return err
	}
	if err := protocol.WriteCompressedEncrypted(conn, result.Enc, idDisconnectConfiguration, payload); err != nil {
		return fmt.Errorf("relay: sending disconnect: %w", err)
	}

	deps.Broadcast.Publish(broadcast.NewJoinEvent(
		broadcast.Player{UUID: result.Profile.ID, Username: result.Profile.Name},
		string(tok),
	))

	return nil
}

func readInt64(b []byte) int64 {
	var v int64
	for _, by := range b {
		v = v<<8 | int64(by)
	}
	return v
}
