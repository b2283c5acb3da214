package auth

import (
	"testing"
	"time"

	"github.com/magnate/server/internal/store"
)

func TestHashStableWithinProcess(t *testing.T) {
	h, err := NewHasher()
	if err != nil {
		t.Fatal(err)
	}
	a := h.Hash("hunter2")
	b := h.Hash("hunter2")
	if a != b {
		t.Errorf("same password hashed differently")
	}
	if a == h.Hash("hunter3") {
		t.Errorf("distinct passwords collide")
	}
	if a == ([store.HashLen]byte{}) {
		t.Errorf("hash is all zeros")
	}
}

func TestHasherSaltVaries(t *testing.T) {
	h1, err := NewHasher()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := NewHasher()
	if err != nil {
		t.Fatal(err)
	}
	if h1.Hash("hunter2") == h2.Hash("hunter2") {
		t.Errorf("two hashers derived the same hash; salt not random")
	}
}

func TestSessions(t *testing.T) {
	s := NewSessions(time.Hour)
	user := store.UserID(1)

	token := s.Begin(user)
	if got, ok := s.Lookup(token); !ok || got != user {
		t.Fatalf("Lookup = %v, %v", got, ok)
	}
	if _, ok := s.Lookup("bogus"); ok {
		t.Errorf("unknown token resolved")
	}

	// A second login invalidates the first token.
	token2 := s.Begin(user)
	if _, ok := s.Lookup(token); ok {
		t.Errorf("stale token still valid")
	}
	if got, ok := s.Lookup(token2); !ok || got != user {
		t.Errorf("fresh token broken: %v, %v", got, ok)
	}

	s.End(token2)
	if _, ok := s.Lookup(token2); ok {
		t.Errorf("ended token still valid")
	}
}

func TestSessionExpiry(t *testing.T) {
	s := NewSessions(time.Millisecond)
	token := s.Begin(store.UserID(1))
	time.Sleep(5 * time.Millisecond)
	if _, ok := s.Lookup(token); ok {
		t.Errorf("expired token resolved")
	}
}

func TestSessionNoExpiry(t *testing.T) {
	s := NewSessions(0)
	token := s.Begin(store.UserID(1))
	if _, ok := s.Lookup(token); !ok {
		t.Errorf("zero-ttl session expired")
	}
}
