// Package sim implements the concurrent simulation engine: request
// validation and queueing on the handler side, and the periodic tick that
// is the sole mutator of the entity store.
//
// Many request-handling goroutines call the Request* and view methods
// concurrently; exactly one goroutine calls Tick. All shared state lives
// in the Engine's store and is guarded by the lock set in locks.go.
package sim

import (
	"github.com/magnate/server/internal/config"
	"github.com/magnate/server/internal/queue"
	"github.com/magnate/server/internal/store"
	"github.com/magnate/server/internal/uint128"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Engine owns the entity store, the request queues, and the lock set.
// Constructed once at startup and passed explicitly to every entry point;
// there are no package-level statics.
type Engine struct {
	cfg   config.SimConfig
	log   *zap.Logger
	store *store.Store

	locks lockSet

	constructionQ queue.Ring[constructionRequest]
	settingsQ     queue.Ring[settingsRequest]
	transferQ     queue.Ring[transferRequest]

	permitCost     uint128.Uint128
	startingWealth uint128.Uint128
}

// New builds an engine over an empty store. Content bootstrap (via
// internal/content) must complete before the first request or tick.
func New(cfg config.SimConfig, st *store.Store, log *zap.Logger) *Engine {
	return &Engine{
		cfg:            cfg,
		log:            log,
		store:          st,
		permitCost:     uint128.From64(cfg.PermitCost),
		startingWealth: uint128.From64(cfg.StartingWealth),
	}
}

// Store exposes the underlying store for bootstrap and tests. After
// serving starts, all access must go through Engine methods.
func (e *Engine) Store() *store.Store {
	return e.store
}

// CreateOrGetUser returns the existing user when the password hash
// matches, a fresh user (with starting wealth and a personal storage)
// when the name is unseen, and the zero handle on a hash mismatch. It
// never mutates an existing user's stored hash.
func (e *Engine) CreateOrGetUser(name string, hash [store.HashLen]byte) store.UserID {
	name = norm.NFC.String(name)

	e.locks.names.Lock()
	defer e.locks.names.Unlock()

	if id := e.store.UserByName(name); id.Valid() {
		if e.store.UserHash(id) == hash {
			return id
		}
		return 0
	}

	e.locks.storages.Lock()
	e.locks.users.Lock()
	defer e.locks.users.Unlock()
	defer e.locks.storages.Unlock()

	id := e.store.CreateUser(name, hash)
	e.store.UserSetWealth(id, e.startingWealth)
	st := e.store.CreateStorage(id)
	e.store.UserSetStorage(id, st)
	e.log.Info("user created", zap.String("name", name), zap.Int("index", id.Index()))
	return id
}
