package token

import (
	"sync"
	"time"

	"mcrelay/internal/mojang"
)

// entry pairs a redeemable profile with the instant it was minted.
type entry struct {
	profile   mojang.GameProfile
	createdAt time.Time
}

// Store holds minted token bindings in memory until they expire. It never
// persists across a restart, by design: a token only ever proves that an
// authentication happened during this process's lifetime. Get is
// non-destructive — a token keeps resolving to its player until the
// sweeper retires it, not just on first lookup.
type Store struct {
	mu      sync.Mutex
	entries map[Token]entry
	ttl     time.Duration

	stop   chan struct{}
	closed bool
}

// NewStore starts a Store whose background sweeper wakes every ttl interval
// and evicts any binding older than ttl. Call Close to stop the sweeper.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		entries: make(map[Token]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// Insert records a freshly minted token against the profile that earned it,
// returning the Unix timestamp it was recorded at.
func (s *Store) Insert(tok Token, profile mojang.GameProfile) int64 {
	var createdAt time.Time

	s.withLock(func() {
		createdAt = time.Now()
		s.entries[tok] = entry{profile: profile, createdAt: createdAt}
	})

	return createdAt.Unix()
}

// Get resolves tok to its bound profile, if the binding exists and hasn't
// aged past the store's TTL yet.
func (s *Store) Get(tok Token) (mojang.GameProfile, bool) {
	var (
		profile mojang.GameProfile
		ok      bool
	)

	s.withLock(func() {
		e, found := s.entries[tok]
		if !found || time.Since(e.createdAt) > s.ttl {
			return
		}
		profile, ok = e.profile, true
	})

	return profile, ok
}

// Close stops the background sweeper. Safe to call more than once.
func (s *Store) Close() {
	s.withLock(func() {
		if s.closed {
			return
		}
		s.closed = true
		close(s.stop)
	})
}

func (s *Store) sweepLoop() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) sweep() {
	s.withLock(func() {
		now := time.Now()
		for tok, e := range s.entries {
			if now.Sub(e.createdAt) > s.ttl {
				delete(s.entries, tok)
			}
		}
	})
}

// withLock runs fn holding mu. The deferred recover runs first and absorbs
// any panic from fn, then the deferred unlock always releases mu, the way a
// poisoned Rust Mutex still releases its guard on unwind, so one bad sweep
// iteration can't take the whole store's lock down with it or kill the
// sweeper goroutine — a corrupted entry is recovered from, never a deadlock.
func (s *Store) withLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { _ = recover() }()
	fn()
}
