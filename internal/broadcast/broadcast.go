// Package broadcast fans a single stream of relay events out to any number
// of subscribers without letting a slow or abandoned one backpressure the
// connection workers that publish into it.
package broadcast

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
)

// Player identifies the account a join event authenticated.
type Player struct {
	UUID     uuid.UUID
	Username string
}

// EventKind discriminates the tagged variants an Event can carry.
type EventKind int

const (
	EventOnJoin EventKind = iota
	EventConnectionError
	EventCloseServer
)

// Event is one message on the bus. ID is a random, opaque identifier useful
// for debugging and deduplication, not a sequence number.
type Event struct {
	ID   int64
	Kind EventKind

	Player Player
	Token  string

	Err error
}

// newID draws a random 64-bit event identifier. A fresh id every call is
// all that's needed; collisions are harmless since id is opaque.
func newID() int64 {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	return int64(binary.BigEndian.Uint64(buf[:]))
}

// NewJoinEvent builds the event published once a connection authenticates.
func NewJoinEvent(player Player, token string) *Event {
	return &Event{ID: newID(), Kind: EventOnJoin, Player: player, Token: token}
}

// NewConnectionErrorEvent builds the event published when a connection's
// protocol dialog fails.
func NewConnectionErrorEvent(err error) *Event {
	return &Event{ID: newID(), Kind: EventConnectionError, Err: err}
}

// NewCloseServerEvent builds the sentinel event a supervisor publishes to
// tell its subscribers shutdown has begun.
func NewCloseServerEvent() *Event {
	return &Event{ID: newID(), Kind: EventCloseServer}
}

// Bus is a multi-producer, multi-subscriber broadcast channel. The zero
// value is not usable; construct with New.
type Bus struct {
	mu   sync.Mutex
	subs []chan *Event
}

// New returns an empty Bus ready to accept subscribers and publishes.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a new receiver with the given buffered capacity.
// Unsubscribe by simply letting the channel go unread: Publish prunes any
// subscriber whose queue is full, so an abandoned channel is dropped once its
// buffer has filled up.
func (b *Bus) Subscribe(capacity int) <-chan *Event {
	ch := make(chan *Event, capacity)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, ch)

	return ch
}

// Publish delivers msg to every live subscriber. A subscriber whose buffer
// is currently full is dropped rather than allowed to block the publisher —
// the same one-bad-reader-can't-stall-everyone guarantee the event bus this
// is modeled on provides via a non-blocking bounded send.
func (b *Bus) Publish(evt *Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	live := b.subs[:0]
	for _, ch := range b.subs {
		select {
		case ch <- evt:
			live = append(live, ch)
		default:
			// Queue full: either genuinely slow or abandoned by its reader.
			// Either way, drop it rather than block every future publish.
		}
	}
	b.subs = live
}
