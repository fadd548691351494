// Package supervisor runs the relay's accept loop as a background service:
// it owns the listener, the RSA keypair, the event bus, and the token
// store, and exposes the small façade a host process actually needs —
// Start, Verify, OnJoin, OnError, Shutdown.
package supervisor

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"mcrelay/internal/broadcast"
	"mcrelay/internal/config"
	"mcrelay/internal/mkeys"
	"mcrelay/internal/mojang"
	"mcrelay/internal/relay"
	"mcrelay/internal/token"
)

// shutdownDelay is how long a connection's socket is left open after its
// protocol handler returns successfully, so the client sees a disconnect
// rather than the connection just vanishing mid-read.
const shutdownDelay = 2500 * time.Millisecond

// Server is the running relay: a TCP accept loop handing connections to
// relay.Handle, an event bus fed by every connection, and a token store
// populated automatically from join events. The zero value isn't usable;
// build one with Start.
type Server struct {
	broadcast *broadcast.Bus
	storage   *token.Store

	listener net.Listener

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// Start binds config.Port, generates a fresh RSA keypair, and begins
// accepting connections in the background. Every connection runs relay.Handle
// against verifier; a successful login publishes a join event, which this
// Server's own internal subscriber immediately records into its token store.
func Start(cfg config.ServerConfig, verifier mojang.SessionVerifier) (*Server, error) {
	keys, err := mkeys.Generate()
	if err != nil {
		return nil, fmt.Errorf("supervisor: generating rsa keypair: %w", err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("supervisor: binding port %d: %w", cfg.Port, err)
	}

	s := &Server{
		broadcast: broadcast.New(),
		storage:   token.NewStore(cfg.TokenTTL),
		listener:  listener,
		running:   true,
		done:      make(chan struct{}),
	}

	s.registerStorageSink()

	deps := relay.ConnDeps{
		Keys:             keys,
		Broadcast:        s.broadcast,
		TokenGenerator:   cfg.TokenGenerator,
		MessageGenerator: cfg.MessageGenerator,
		Verifier:         verifier,
		Status:           cfg.Status,
		ForwardSkinProps: cfg.ForwardSkinProperties,
	}

	go s.acceptLoop(deps)

	log.Info().Uint16("port", cfg.Port).Msg("relay listening")

	return s, nil
}

// acceptLoop runs until the listener is closed by Shutdown, handing each
// connection off to its own goroutine and closing done once it returns.
func (s *Server) acceptLoop(deps relay.ConnDeps) {
	defer close(s.done)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		if tcpConn, ok := conn.(*net.TCPConn); ok {
			_ = tcpConn.SetNoDelay(true)
		}

		go s.handleConn(conn, deps)
	}
}

// handleConn drives one connection through relay.Handle, recovers from any
// panic escaping it as a connection error rather than taking the whole
// accept loop down, and after a successful dialog leaves the socket open for
// shutdownDelay so the client actually observes the disconnect instead of a
// dropped connection. A dialog that ends in an error is published as a
// connection error and the socket is closed right away.
func (s *Server) handleConn(conn net.Conn, deps relay.ConnDeps) {
	defer conn.Close()

	defer func() {
		if r := recover(); r != nil {
			s.broadcast.Publish(broadcast.NewConnectionErrorEvent(fmt.Errorf("supervisor: connection panic: %v", r)))
		}
	}()

	if err := relay.Handle(context.Background(), conn, deps); err != nil {
		log.Err(err).Str("remote", conn.RemoteAddr().String()).Msg("connection ended with error")
		s.broadcast.Publish(broadcast.NewConnectionErrorEvent(err))
		return
	}

	time.Sleep(shutdownDelay)
}

// registerStorageSink wires every join event straight into the token store,
// the way Start's Rust counterpart registers its own on_join before
// returning — the store is an implementation detail Verify reads from, not
// something a caller has to populate themselves.
func (s *Server) registerStorageSink() {
	sub := s.broadcast.Subscribe(broadcastSubscriberCapacity)
	go func() {
		for evt := range sub {
			if evt.Kind != broadcast.EventOnJoin {
				continue
			}
			s.storage.Insert(token.Token(evt.Token), mojang.GameProfile{
				ID:   evt.Player.UUID,
				Name: evt.Player.Username,
			})
		}
	}()
}

// broadcastSubscriberCapacity matches the bounded channel depth the
// reference implementation's own event threads subscribe with.
const broadcastSubscriberCapacity = 1024

// Verify resolves tok to the player it authenticated, if the binding still
// exists. It never removes the binding — repeated verification of the same
// token during its TTL keeps succeeding.
func (s *Server) Verify(tok string) (broadcast.Player, bool) {
	profile, ok := s.storage.Get(token.Token(tok))
	if !ok {
		return broadcast.Player{}, false
	}
	return broadcast.Player{UUID: profile.ID, Username: profile.Name}, true
}

// OnJoin runs handler, in its own goroutine, once for every successful
// login for as long as the Server runs. Multiple handlers can be registered;
// each gets its own subscription.
func (s *Server) OnJoin(handler func(player broadcast.Player, tok string)) {
	sub := s.broadcast.Subscribe(broadcastSubscriberCapacity)
	go func() {
		for evt := range sub {
			if evt.Kind == broadcast.EventOnJoin {
				handler(evt.Player, evt.Token)
			}
		}
	}()
}

// OnError runs handler, in its own goroutine, once for every connection that
// ends in an error.
func (s *Server) OnError(handler func(err error)) {
	sub := s.broadcast.Subscribe(broadcastSubscriberCapacity)
	go func() {
		for evt := range sub {
			if evt.Kind == broadcast.EventConnectionError {
				handler(evt.Err)
			}
		}
	}()
}

// Shutdown stops accepting new connections and blocks until the accept loop
// has fully returned. Calling it a second time returns ErrNoServerRunning,
// mirroring the reference implementation's own handle.is_none() check.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNoServerRunning
	}
	s.running = false
	s.mu.Unlock()

	s.broadcast.Publish(broadcast.NewCloseServerEvent())

	err := s.listener.Close()
	<-s.done
	s.storage.Close()

	if err != nil {
		return fmt.Errorf("supervisor: closing listener: %w", err)
	}
	return nil
}
