// Package auth hashes passwords and tracks login sessions for the web
// layer. The core engine only ever sees fixed-length hashes; raw
// passwords never cross its boundary.
package auth

import (
	"crypto/rand"
	"fmt"

	"github.com/magnate/server/internal/store"
	"golang.org/x/crypto/argon2"
)

const saltLen = 16

// Argon2i parameters: 2 passes over 64 MiB, single lane.
const (
	argonTime    = 2
	argonMemory  = 64 * 1024
	argonThreads = 1
)

// Hasher derives fixed-length password hashes with a per-process salt.
// All state is in-memory, so hashes only need to be stable within one
// process lifetime.
type Hasher struct {
	salt [saltLen]byte
}

// NewHasher draws a random salt.
func NewHasher() (*Hasher, error) {
	h := &Hasher{}
	if _, err := rand.Read(h.salt[:]); err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	return h, nil
}

// Hash derives the stored hash for a password.
func (h *Hasher) Hash(password string) [store.HashLen]byte {
	var out [store.HashLen]byte
	copy(out[:], argon2.Key([]byte(password), h.salt[:], argonTime, argonMemory, argonThreads, store.HashLen))
	return out
}
