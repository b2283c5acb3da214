package store

import "sync"

// Interner is an append-only text arena for display names. Keys are small
// integers handed out in insertion order; interned strings are immutable.
// Unlike the rest of the store the interner synchronizes itself: catalog
// views read names under lock combinations that do not exclude a
// concurrent user creation interning a new one.
type Interner struct {
	mu     sync.RWMutex
	text   []byte
	starts []uint32
	length []uint32
}

// NewInterner returns an empty arena.
func NewInterner() *Interner {
	return &Interner{}
}

// Intern appends s to the arena and returns its key.
func (in *Interner) Intern(s string) uint32 {
	in.mu.Lock()
	defer in.mu.Unlock()
	key := uint32(len(in.starts))
	in.starts = append(in.starts, uint32(len(in.text)))
	in.length = append(in.length, uint32(len(s)))
	in.text = append(in.text, s...)
	return key
}

// Lookup returns the string for a key, or "" for an unknown key.
func (in *Interner) Lookup(key uint32) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(key) >= len(in.starts) {
		return ""
	}
	start := in.starts[key]
	return string(in.text[start : start+in.length[key]])
}

// Len returns the number of interned strings.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.starts)
}
