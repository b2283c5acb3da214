package sim

import (
	"fmt"

	"github.com/magnate/server/internal/store"
	"github.com/magnate/server/internal/uint128"
)

// Read-only snapshots for the rendering layer. Each accessor copies what
// it needs out of the store under the relevant locks and returns plain
// values; nothing returned aliases live store memory.

type StockpileView struct {
	Commodity store.CommodityID
	Name      string
	Amount    int64
}

type BuildingRef struct {
	ID   store.BuildingID
	Name string
}

type UserView struct {
	ID         store.UserID
	Name       string
	Balance    string
	Stockpiles []StockpileView
	Storage    store.StorageID
	Buildings  []BuildingRef
}

type TransferLine struct {
	Commodity string
	Volume    int64
	Other     string // label of the storage at the far end
}

type ConstructionLine struct {
	Commodity string
	Current   int64
	Required  int64
}

type ActivityOption struct {
	Slot int
	Name string
}

type StorageOption struct {
	ID    store.StorageID
	Label string
}

type CommodityOption struct {
	ID   store.CommodityID
	Name string
}

type BuildingView struct {
	ID           store.BuildingID
	Name         string
	TypeName     string
	ActivityName string // "" when idle
	Constructed  bool
	Storage      store.StorageID
	Stockpiles   []StockpileView
	Incoming     []TransferLine
	Outgoing     []TransferLine
	Construction []ConstructionLine
	Activities   []ActivityOption
	// Form inputs: every storage the owner may wire a transfer to or from.
	OwnerStorages []StorageOption
	Commodities   []CommodityOption
}

type ActivityAmount struct {
	Name   string
	Amount int64
}

type ActivityView struct {
	ID      store.ActivityID
	Name    string
	Inputs  []ActivityAmount
	Outputs []ActivityAmount
}

type BuildingTypeRef struct {
	ID   store.BuildingTypeID
	Name string
}

type BuildingTypeView struct {
	ID           store.BuildingTypeID
	Name         string
	Activities   []ActivityRef
	Construction []ConstructionLine
}

type ActivityRef struct {
	ID   store.ActivityID
	Name string
}

// FormatBalance renders wealth as a fixed-point decimal with ten
// fractional digits, matching the original ledger display.
func FormatBalance(w uint128.Uint128) string {
	s := w.String()
	if len(s) <= 10 {
		for len(s) < 10 {
			s = "0" + s
		}
		return "0." + s
	}
	return s[:len(s)-10] + "." + s[len(s)-10:]
}

// buildingLabel formats a building as type name + row + current activity,
// e.g. "Extractor3(Idle)". Caller holds the buildings lock.
func (e *Engine) buildingLabel(b store.BuildingID) string {
	activity := e.store.BuildingActivity(b)
	suffix := "(Idle)"
	if activity.Valid() {
		suffix = "(" + e.store.ActivityName(activity) + ")"
	}
	return fmt.Sprintf("%s%d%s", e.store.BuildingTypeName(e.store.BuildingType(b)), b.Index(), suffix)
}

// storageLabel names a storage by its attachment. Caller holds the
// buildings and storages locks.
func (e *Engine) storageLabel(st store.StorageID) string {
	if b := e.store.StorageAttachedTo(st); b.Valid() {
		return e.buildingLabel(b)
	}
	return "Personal storage"
}

// UserName returns a user's display name, or "" for an invalid handle.
func (e *Engine) UserName(id store.UserID) string {
	e.locks.names.Lock()
	defer e.locks.names.Unlock()
	return e.store.UserName(id)
}

// User snapshots a user's balance, personal stockpiles, and owned
// buildings. ok is false for an invalid handle.
func (e *Engine) User(id store.UserID) (UserView, bool) {
	e.locks.buildings.Lock()
	e.locks.storages.Lock()
	e.locks.users.Lock()
	defer e.locks.users.Unlock()
	defer e.locks.storages.Unlock()
	defer e.locks.buildings.Unlock()

	if !e.store.ValidUser(id) {
		return UserView{}, false
	}
	v := UserView{
		ID:      id,
		Name:    e.store.UserName(id),
		Balance: FormatBalance(e.store.UserWealth(id)),
		Storage: e.store.UserStorage(id),
	}
	personal := e.store.UserStorage(id)
	e.store.EachCommodity(func(c store.CommodityID) {
		v.Stockpiles = append(v.Stockpiles, StockpileView{
			Commodity: c,
			Name:      e.store.CommodityName(c),
			Amount:    e.store.StorageCurrent(personal, c),
		})
	})
	for _, o := range e.store.OwnershipsOf(id) {
		b := e.store.OwnershipOwned(o)
		v.Buildings = append(v.Buildings, BuildingRef{ID: b, Name: e.buildingLabel(b)})
	}
	return v, true
}

// Building snapshots one building: stockpiles, standing transfers in and
// out (nonzero volumes only), construction progress or activity options,
// and the form inputs the rendering layer needs.
func (e *Engine) Building(id store.BuildingID) (BuildingView, bool) {
	e.locks.buildings.Lock()
	e.locks.storages.Lock()
	e.locks.users.Lock()
	e.locks.transfers.Lock()
	defer e.locks.transfers.Unlock()
	defer e.locks.users.Unlock()
	defer e.locks.storages.Unlock()
	defer e.locks.buildings.Unlock()

	if !e.store.ValidBuilding(id) {
		return BuildingView{}, false
	}

	bt := e.store.BuildingType(id)
	st := e.store.BuildingStorage(id)
	owner := e.store.BuildingOwner(id)
	activity := e.store.BuildingActivity(id)

	v := BuildingView{
		ID:          id,
		Name:        e.buildingLabel(id),
		TypeName:    e.store.BuildingTypeName(bt),
		Constructed: e.store.BuildingConstructed(id),
		Storage:     st,
	}
	if activity.Valid() {
		v.ActivityName = e.store.ActivityName(activity)
	}

	e.store.EachCommodity(func(c store.CommodityID) {
		v.Stockpiles = append(v.Stockpiles, StockpileView{
			Commodity: c,
			Name:      e.store.CommodityName(c),
			Amount:    e.store.StorageCurrent(st, c),
		})
		v.Commodities = append(v.Commodities, CommodityOption{ID: c, Name: e.store.CommodityName(c)})
	})

	for _, t := range e.store.TransfersTo(st) {
		source := e.store.TransferSource(t)
		e.store.EachCommodity(func(c store.CommodityID) {
			vol := e.store.TransferVolume(t, c)
			if vol == 0 {
				return
			}
			v.Incoming = append(v.Incoming, TransferLine{
				Commodity: e.store.CommodityName(c),
				Volume:    vol,
				Other:     e.storageLabel(source),
			})
		})
	}
	for _, t := range e.store.TransfersFrom(st) {
		target := e.store.TransferTarget(t)
		e.store.EachCommodity(func(c store.CommodityID) {
			vol := e.store.TransferVolume(t, c)
			if vol == 0 {
				return
			}
			v.Outgoing = append(v.Outgoing, TransferLine{
				Commodity: e.store.CommodityName(c),
				Volume:    vol,
				Other:     e.storageLabel(target),
			})
		})
	}

	if !v.Constructed {
		for i := 0; i < store.MaxConstruction; i++ {
			input, amount := e.store.BuildingTypeConstruction(bt, i)
			if !input.Valid() {
				break
			}
			v.Construction = append(v.Construction, ConstructionLine{
				Commodity: e.store.CommodityName(input),
				Current:   e.store.StorageCurrent(st, input),
				Required:  amount,
			})
		}
	} else {
		for i := 0; i < store.MaxActivities; i++ {
			a := e.store.BuildingTypeActivity(bt, i)
			if !a.Valid() {
				break
			}
			v.Activities = append(v.Activities, ActivityOption{Slot: i, Name: e.store.ActivityName(a)})
		}
	}

	v.OwnerStorages = append(v.OwnerStorages, StorageOption{
		ID:    e.store.UserStorage(owner),
		Label: "Personal storage",
	})
	for _, o := range e.store.OwnershipsOf(owner) {
		owned := e.store.OwnershipOwned(o)
		v.OwnerStorages = append(v.OwnerStorages, StorageOption{
			ID:    e.store.BuildingStorage(owned),
			Label: e.buildingLabel(owned),
		})
	}
	return v, true
}

// BuildingTypes lists every building type for the catalog page.
func (e *Engine) BuildingTypes() []BuildingTypeRef {
	e.locks.buildings.Lock()
	defer e.locks.buildings.Unlock()

	var refs []BuildingTypeRef
	e.store.EachBuildingType(func(bt store.BuildingTypeID) {
		refs = append(refs, BuildingTypeRef{ID: bt, Name: e.store.BuildingTypeName(bt)})
	})
	return refs
}

// BuildingTypeDetail snapshots one building type's activities and
// construction bill. ok is false for an invalid handle.
func (e *Engine) BuildingTypeDetail(id store.BuildingTypeID) (BuildingTypeView, bool) {
	e.locks.buildings.Lock()
	defer e.locks.buildings.Unlock()

	if !e.store.ValidBuildingType(id) {
		return BuildingTypeView{}, false
	}
	v := BuildingTypeView{ID: id, Name: e.store.BuildingTypeName(id)}
	for i := 0; i < store.MaxActivities; i++ {
		a := e.store.BuildingTypeActivity(id, i)
		if !a.Valid() {
			break
		}
		v.Activities = append(v.Activities, ActivityRef{ID: a, Name: e.store.ActivityName(a)})
	}
	for i := 0; i < store.MaxConstruction; i++ {
		input, amount := e.store.BuildingTypeConstruction(id, i)
		if !input.Valid() {
			break
		}
		v.Construction = append(v.Construction, ConstructionLine{
			Commodity: e.store.CommodityName(input),
			Required:  amount,
		})
	}
	return v, true
}

// Activity snapshots one production recipe. ok is false for an invalid
// handle.
func (e *Engine) Activity(id store.ActivityID) (ActivityView, bool) {
	e.locks.buildings.Lock()
	defer e.locks.buildings.Unlock()

	if !e.store.ValidActivity(id) {
		return ActivityView{}, false
	}
	v := ActivityView{ID: id, Name: e.store.ActivityName(id)}
	for i := 0; i < store.MaxInputs; i++ {
		c, amount := e.store.ActivityInput(id, i)
		if !c.Valid() {
			break
		}
		v.Inputs = append(v.Inputs, ActivityAmount{Name: e.store.CommodityName(c), Amount: amount})
	}
	for i := 0; i < store.MaxOutputs; i++ {
		c, amount := e.store.ActivityOutput(id, i)
		if !c.Valid() {
			break
		}
		v.Outputs = append(v.Outputs, ActivityAmount{Name: e.store.CommodityName(c), Amount: amount})
	}
	return v, true
}
