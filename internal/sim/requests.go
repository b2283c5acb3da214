package sim

import "github.com/magnate/server/internal/store"

// Request records are small and immutable; validation resolves handles
// before enqueue and the tick engine applies them without re-validation
// (beyond the wealth check the construction drain performs at apply time).

type constructionRequest struct {
	user         store.UserID
	buildingType store.BuildingTypeID
}

type settingsRequest struct {
	user     store.UserID
	building store.BuildingID
	activity store.ActivityID
}

type transferRequest struct {
	user      store.UserID
	source    store.StorageID
	target    store.StorageID
	commodity store.CommodityID
	volume    int64
}

// RequestNewBuilding validates and enqueues a construction request.
// False means not accepted (a failed precondition or a full queue); the
// caller retries either way. Acceptance does not guarantee the building:
// the construction drain drops the request silently when the user's
// wealth no longer covers the permit cost (a deliberate policy, see
// DESIGN.md).
func (e *Engine) RequestNewBuilding(user store.UserID, buildingType store.BuildingTypeID) bool {
	e.locks.buildings.Lock()
	defer e.locks.buildings.Unlock()

	if !e.store.ValidBuildingType(buildingType) {
		return false
	}
	if !e.store.ValidUser(user) {
		return false
	}
	if len(e.store.OwnershipsOf(user)) > e.cfg.MaxUserBuildings {
		return false
	}
	if e.store.NumBuildings() > e.cfg.MaxBuildings {
		return false
	}
	return e.constructionQ.Push(constructionRequest{user: user, buildingType: buildingType})
}

// RequestSettingsChange validates and enqueues an activity change for a
// building the user owns. slot indexes the building type's activity list.
func (e *Engine) RequestSettingsChange(user store.UserID, building store.BuildingID, slot int) bool {
	if slot < 0 || slot >= store.MaxActivities {
		return false
	}

	e.locks.buildings.Lock()
	defer e.locks.buildings.Unlock()

	if !e.store.ValidBuilding(building) {
		return false
	}
	if !e.store.ValidUser(user) {
		return false
	}
	if !e.store.OwnershipByPair(building, user).Valid() {
		return false
	}
	activity := e.store.BuildingTypeActivity(e.store.BuildingType(building), slot)
	if !activity.Valid() {
		return false
	}
	return e.settingsQ.Push(settingsRequest{user: user, building: building, activity: activity})
}

// RequestTransfer validates and enqueues a standing-transfer change: set
// the desired per-tick volume of one commodity between two storages the
// user owns. The drain overwrites any previous desired volume for that
// commodity on the (source, target) pair.
func (e *Engine) RequestTransfer(user store.UserID, source, target store.StorageID, commodity store.CommodityID, volume int64) bool {
	if volume < 0 || volume > e.cfg.MaxVolume {
		return false
	}

	e.locks.storages.Lock()
	e.locks.users.Lock()
	e.locks.transfers.Lock()
	defer e.locks.transfers.Unlock()
	defer e.locks.users.Unlock()
	defer e.locks.storages.Unlock()

	if !e.store.ValidStorage(source) || !e.store.ValidStorage(target) {
		return false
	}
	if !e.store.ValidUser(user) {
		return false
	}
	if !e.store.ValidCommodity(commodity) {
		return false
	}
	if e.store.StorageOwner(source) != user || e.store.StorageOwner(target) != user {
		return false
	}
	if e.store.NumTransfers() > e.cfg.MaxTransfers {
		return false
	}
	return e.transferQ.Push(transferRequest{
		user:      user,
		source:    source,
		target:    target,
		commodity: commodity,
		volume:    volume,
	})
}
