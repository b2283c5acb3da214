package sim

import (
	"sync"

	"github.com/magnate/server/internal/store"
	"go.uber.org/zap"
)

// Tick advances the simulation by one step: drain the three request
// queues, run production, advance construction, then resolve standing
// transfers. The order is load-bearing. Production runs before the
// construction step, so a building that finishes construction this tick
// produces no earlier than the next one.
func (e *Engine) Tick() {
	built := e.drainConstruction()
	changed := e.drainSettings()
	transfers := e.drainTransfers()
	e.produce()
	e.advanceConstruction()
	e.resolveTransfers()

	if built+changed+transfers > 0 {
		e.log.Debug("tick drained requests",
			zap.Int("construction", built),
			zap.Int("settings", changed),
			zap.Int("transfer", transfers))
	}
}

// drainConstruction applies one generation of construction requests. A
// request whose user can no longer afford the permit is dropped without
// feedback: the request was accepted, the wealth went elsewhere, nobody
// is told. That is a documented policy decision, not an oversight; see
// DESIGN.md before "fixing" it.
func (e *Engine) drainConstruction() int {
	return e.constructionQ.Drain(func(req constructionRequest) {
		e.locks.buildings.Lock()
		e.locks.storages.Lock()
		e.locks.users.Lock()
		defer e.locks.users.Unlock()
		defer e.locks.storages.Unlock()
		defer e.locks.buildings.Unlock()

		wealth := e.store.UserWealth(req.user)
		if wealth.Cmp(e.permitCost) < 0 {
			e.log.Warn("construction request dropped: insufficient wealth",
				zap.Int("user", req.user.Index()),
				zap.String("building_type", e.store.BuildingTypeName(req.buildingType)))
			return
		}

		building := e.store.CreateBuilding(req.buildingType)
		st := e.store.CreateStorage(req.user)
		e.store.StorageSetAttachedTo(st, building)
		e.store.BuildingSetStorage(building, st)
		e.store.CreateOwnership(building, req.user)
		e.store.UserSetWealth(req.user, wealth.Sub(e.permitCost))
	})
}

// drainSettings applies queued activity changes. Ownership and slot were
// checked at validation time and are stable (ownership rows never move).
func (e *Engine) drainSettings() int {
	return e.settingsQ.Drain(func(req settingsRequest) {
		e.locks.buildings.Lock()
		defer e.locks.buildings.Unlock()
		e.store.BuildingSetActivity(req.building, req.activity)
	})
}

// drainTransfers applies queued standing-order changes: find or create
// the transfer row for the (source, target) pair and overwrite its
// desired volume for the requested commodity.
func (e *Engine) drainTransfers() int {
	return e.transferQ.Drain(func(req transferRequest) {
		e.locks.transfers.Lock()
		defer e.locks.transfers.Unlock()

		t := e.store.TransferByPair(req.source, req.target)
		if !t.Valid() {
			t = e.store.CreateTransfer(req.source, req.target)
		}
		e.store.TransferSetVolume(t, req.commodity, req.volume)
	})
}

// produce runs every constructed building's assigned activity. An
// activity fires only when every input is fully present, and then
// consumes all inputs and emits all outputs in the same step, never a
// partial application.
func (e *Engine) produce() {
	e.locks.buildings.Lock()
	e.locks.storages.Lock()
	defer e.locks.storages.Unlock()
	defer e.locks.buildings.Unlock()

	e.store.EachBuilding(func(b store.BuildingID) {
		if !e.store.BuildingConstructed(b) {
			return
		}
		activity := e.store.BuildingActivity(b)
		if !activity.Valid() {
			return
		}
		st := e.store.BuildingStorage(b)

		ready := true
		for i := 0; i < store.MaxInputs; i++ {
			input, amount := e.store.ActivityInput(activity, i)
			if !input.Valid() {
				break
			}
			if e.store.StorageCurrent(st, input) < amount {
				ready = false
				break
			}
		}
		if !ready {
			return
		}

		for i := 0; i < store.MaxInputs; i++ {
			input, amount := e.store.ActivityInput(activity, i)
			if !input.Valid() {
				break
			}
			e.store.StorageSetCurrent(st, input, e.store.StorageCurrent(st, input)-amount)
		}
		for i := 0; i < store.MaxOutputs; i++ {
			output, amount := e.store.ActivityOutput(activity, i)
			if !output.Valid() {
				break
			}
			e.store.StorageSetCurrent(st, output, e.store.StorageCurrent(st, output)+amount)
		}
	})
}

// advanceConstruction trickles construction commodities into every
// unconstructed building: at most one unit per commodity per tick,
// siphoned from the owner's personal storage. When all requirements are
// met the consumed amounts are zeroed out and the building flips to
// constructed, in the same tick the last unit arrives, and never back.
func (e *Engine) advanceConstruction() {
	e.locks.buildings.Lock()
	e.locks.storages.Lock()
	defer e.locks.storages.Unlock()
	defer e.locks.buildings.Unlock()

	e.store.EachBuilding(func(b store.BuildingID) {
		if e.store.BuildingConstructed(b) {
			return
		}
		owner := e.store.BuildingOwner(b)
		st := e.store.BuildingStorage(b)
		personal := e.store.UserStorage(owner)
		bt := e.store.BuildingType(b)

		for i := 0; i < store.MaxConstruction; i++ {
			input, amount := e.store.BuildingTypeConstruction(bt, i)
			if !input.Valid() {
				break
			}
			have := e.store.StorageCurrent(st, input)
			if have >= amount {
				continue
			}
			supply := e.store.StorageCurrent(personal, input)
			if supply > 0 {
				e.store.StorageSetCurrent(personal, input, supply-1)
				e.store.StorageSetCurrent(st, input, have+1)
			}
		}

		done := true
		for i := 0; i < store.MaxConstruction; i++ {
			input, amount := e.store.BuildingTypeConstruction(bt, i)
			if !input.Valid() {
				break
			}
			if e.store.StorageCurrent(st, input) < amount {
				done = false
				break
			}
		}
		if !done {
			return
		}
		for i := 0; i < store.MaxConstruction; i++ {
			input, _ := e.store.BuildingTypeConstruction(bt, i)
			if !input.Valid() {
				break
			}
			e.store.StorageSetCurrent(st, input, 0)
		}
		e.store.BuildingSetConstructed(b, true)
	})
}

// resolveTransfers walks every standing transfer once per commodity and
// moves the desired volume when the source fully covers it, otherwise
// nothing (an all-or-nothing clamp, never a partial drain). What leaves
// the source exactly equals what enters the target.
//
// The fan-out is per commodity: each task owns that commodity's storage
// and volume columns outright, and no other phase runs concurrently, so
// no two tasks ever write the same cell and no locking is needed inside
// the phase. That disjointness is an invariant, not an optimization:
// keep any new storage mutation out of this window.
func (e *Engine) resolveTransfers() {
	e.locks.storages.Lock()
	e.locks.transfers.Lock()
	defer e.locks.transfers.Unlock()
	defer e.locks.storages.Unlock()

	n := e.store.NumTransfers()
	if n == 0 {
		return
	}

	var wg sync.WaitGroup
	e.store.EachCommodity(func(c store.CommodityID) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			amounts := e.store.StorageColumn(c)
			desired := e.store.TransferColumn(c)
			for i := 0; i < n; i++ {
				t := store.TransferID(i + 1)
				src := e.store.TransferSource(t).Index()
				dst := e.store.TransferTarget(t).Index()
				want := desired[i]
				available := amounts[src]
				var actual int64
				if want < available {
					actual = want
				}
				amounts[src] -= actual
				amounts[dst] += actual
			}
		}()
	})
	wg.Wait()
}
