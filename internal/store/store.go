// Package store implements the columnar entity store of the simulation:
// per-kind struct-of-arrays tables addressed by kind-tagged handles, plus
// secondary indices maintained incrementally on every create. Rows are
// created once and never deleted; only mutable fields change.
//
// The store itself performs no locking; all access is serialized by the
// engine's lock set (see internal/sim). The one exception is the text
// interner, which carries its own lock because interned names are read
// under lock combinations that do not exclude concurrent interning.
package store

import "github.com/magnate/server/internal/uint128"

// Slot limits for recipe and construction arrays.
const (
	MaxInputs       = 8
	MaxOutputs      = 8
	MaxActivities   = 8
	MaxConstruction = 8
)

// HashLen is the fixed length of a stored password hash.
const HashLen = 32

type userTable struct {
	name    []uint32 // interner keys
	pwdHash [][HashLen]byte
	wealth  []uint128.Uint128
	storage []StorageID // personal storage
}

type commodityTable struct {
	name           []uint32
	inverseDensity []uint32 // display only
}

type activityTable struct {
	name         []uint32
	input        [][MaxInputs]CommodityID
	inputAmount  [][MaxInputs]int64
	output       [][MaxOutputs]CommodityID
	outputAmount [][MaxOutputs]int64
}

type buildingTypeTable struct {
	name               []uint32
	activities         [][MaxActivities]ActivityID
	construction       [][MaxConstruction]CommodityID
	constructionAmount [][MaxConstruction]int64
}

type buildingTable struct {
	buildingType []BuildingTypeID
	activity     []ActivityID // zero handle = idle
	storage      []StorageID
	constructed  []bool
}

// storageTable keeps per-commodity amounts column-major: current[c] is one
// slice spanning every storage. Two commodities never share a column, which
// is what makes the transfer-resolution fan-out lock-free.
type storageTable struct {
	owner      []UserID
	attachedTo []BuildingID // zero handle = personal storage
	current    [][]int64    // [commodity][storage]
}

type ownershipTable struct {
	owner []UserID
	owned []BuildingID
}

// transferTable stores desired volumes column-major like storageTable.
type transferTable struct {
	source []StorageID
	target []StorageID
	volume [][]int64 // [commodity][transfer]
}

type ownershipKey struct {
	building BuildingID
	user     UserID
}

type transferKey struct {
	source StorageID
	target StorageID
}

// Store owns every entity table, the text interner, and the relationship
// indices. A single Store is constructed at startup and shared through the
// engine; there are no package-level statics.
type Store struct {
	Text *Interner

	users         userTable
	commodities   commodityTable
	activities    activityTable
	buildingTypes buildingTypeTable
	buildings     buildingTable
	storages      storageTable
	ownerships    ownershipTable
	transfers     transferTable

	nameToUser          map[string]UserID
	ownershipByUser     map[UserID][]OwnershipID
	ownershipByPair     map[ownershipKey]OwnershipID
	ownershipOfBuilding map[BuildingID]OwnershipID
	transferByPair      map[transferKey]TransferID
	transferFrom        map[StorageID][]TransferID
	transferTo          map[StorageID][]TransferID
}

// New returns an empty store.
func New() *Store {
	return &Store{
		Text:                NewInterner(),
		nameToUser:          make(map[string]UserID, 256),
		ownershipByUser:     make(map[UserID][]OwnershipID, 256),
		ownershipByPair:     make(map[ownershipKey]OwnershipID, 256),
		ownershipOfBuilding: make(map[BuildingID]OwnershipID, 256),
		transferByPair:      make(map[transferKey]TransferID, 256),
		transferFrom:        make(map[StorageID][]TransferID, 256),
		transferTo:          make(map[StorageID][]TransferID, 256),
	}
}

// ── Validity ──────────────────────────────────────────────────────

func (s *Store) ValidUser(id UserID) bool {
	return id.Valid() && id.Index() < len(s.users.name)
}

func (s *Store) ValidCommodity(id CommodityID) bool {
	return id.Valid() && id.Index() < len(s.commodities.name)
}

func (s *Store) ValidActivity(id ActivityID) bool {
	return id.Valid() && id.Index() < len(s.activities.name)
}

func (s *Store) ValidBuildingType(id BuildingTypeID) bool {
	return id.Valid() && id.Index() < len(s.buildingTypes.name)
}

func (s *Store) ValidBuilding(id BuildingID) bool {
	return id.Valid() && id.Index() < len(s.buildings.storage)
}

func (s *Store) ValidStorage(id StorageID) bool {
	return id.Valid() && id.Index() < len(s.storages.owner)
}

func (s *Store) ValidTransfer(id TransferID) bool {
	return id.Valid() && id.Index() < len(s.transfers.source)
}

// ── Counts ────────────────────────────────────────────────────────

func (s *Store) NumUsers() int         { return len(s.users.name) }
func (s *Store) NumCommodities() int   { return len(s.commodities.name) }
func (s *Store) NumActivities() int    { return len(s.activities.name) }
func (s *Store) NumBuildingTypes() int { return len(s.buildingTypes.name) }
func (s *Store) NumBuildings() int     { return len(s.buildings.storage) }
func (s *Store) NumStorages() int      { return len(s.storages.owner) }
func (s *Store) NumTransfers() int     { return len(s.transfers.source) }

// ── Users ─────────────────────────────────────────────────────────

// CreateUser adds a user row with zero wealth and no storage yet.
func (s *Store) CreateUser(name string, hash [HashLen]byte) UserID {
	s.users.name = append(s.users.name, s.Text.Intern(name))
	s.users.pwdHash = append(s.users.pwdHash, hash)
	s.users.wealth = append(s.users.wealth, uint128.Uint128{})
	s.users.storage = append(s.users.storage, 0)
	id := UserID(len(s.users.name))
	s.nameToUser[name] = id
	return id
}

// UserByName returns the user bound to a name, or the zero handle.
func (s *Store) UserByName(name string) UserID {
	return s.nameToUser[name]
}

func (s *Store) UserName(id UserID) string {
	if !s.ValidUser(id) {
		return ""
	}
	return s.Text.Lookup(s.users.name[id.Index()])
}

func (s *Store) UserHash(id UserID) [HashLen]byte {
	if !s.ValidUser(id) {
		return [HashLen]byte{}
	}
	return s.users.pwdHash[id.Index()]
}

func (s *Store) UserWealth(id UserID) uint128.Uint128 {
	if !s.ValidUser(id) {
		return uint128.Uint128{}
	}
	return s.users.wealth[id.Index()]
}

func (s *Store) UserSetWealth(id UserID, w uint128.Uint128) {
	if !s.ValidUser(id) {
		return
	}
	s.users.wealth[id.Index()] = w
}

func (s *Store) UserStorage(id UserID) StorageID {
	if !s.ValidUser(id) {
		return 0
	}
	return s.users.storage[id.Index()]
}

func (s *Store) UserSetStorage(id UserID, st StorageID) {
	if !s.ValidUser(id) {
		return
	}
	s.users.storage[id.Index()] = st
}

// ── Commodities ───────────────────────────────────────────────────

// CreateCommodity adds a commodity and opens its column in every
// column-major table. Commodities are immutable after creation.
func (s *Store) CreateCommodity(name string, inverseDensity uint32) CommodityID {
	s.commodities.name = append(s.commodities.name, s.Text.Intern(name))
	s.commodities.inverseDensity = append(s.commodities.inverseDensity, inverseDensity)
	s.storages.current = append(s.storages.current, make([]int64, len(s.storages.owner)))
	s.transfers.volume = append(s.transfers.volume, make([]int64, len(s.transfers.source)))
	return CommodityID(len(s.commodities.name))
}

func (s *Store) CommodityName(id CommodityID) string {
	if !s.ValidCommodity(id) {
		return ""
	}
	return s.Text.Lookup(s.commodities.name[id.Index()])
}

func (s *Store) CommodityInverseDensity(id CommodityID) uint32 {
	if !s.ValidCommodity(id) {
		return 0
	}
	return s.commodities.inverseDensity[id.Index()]
}

// EachCommodity calls fn for every commodity in creation order.
func (s *Store) EachCommodity(fn func(CommodityID)) {
	for i := range s.commodities.name {
		fn(CommodityID(i + 1))
	}
}

// ── Activities ────────────────────────────────────────────────────

func (s *Store) CreateActivity(name string) ActivityID {
	s.activities.name = append(s.activities.name, s.Text.Intern(name))
	s.activities.input = append(s.activities.input, [MaxInputs]CommodityID{})
	s.activities.inputAmount = append(s.activities.inputAmount, [MaxInputs]int64{})
	s.activities.output = append(s.activities.output, [MaxOutputs]CommodityID{})
	s.activities.outputAmount = append(s.activities.outputAmount, [MaxOutputs]int64{})
	return ActivityID(len(s.activities.name))
}

func (s *Store) ActivitySetInput(id ActivityID, slot int, c CommodityID, amount int64) {
	if !s.ValidActivity(id) || slot < 0 || slot >= MaxInputs {
		return
	}
	s.activities.input[id.Index()][slot] = c
	s.activities.inputAmount[id.Index()][slot] = amount
}

func (s *Store) ActivitySetOutput(id ActivityID, slot int, c CommodityID, amount int64) {
	if !s.ValidActivity(id) || slot < 0 || slot >= MaxOutputs {
		return
	}
	s.activities.output[id.Index()][slot] = c
	s.activities.outputAmount[id.Index()][slot] = amount
}

func (s *Store) ActivityName(id ActivityID) string {
	if !s.ValidActivity(id) {
		return ""
	}
	return s.Text.Lookup(s.activities.name[id.Index()])
}

func (s *Store) ActivityInput(id ActivityID, slot int) (CommodityID, int64) {
	if !s.ValidActivity(id) || slot < 0 || slot >= MaxInputs {
		return 0, 0
	}
	return s.activities.input[id.Index()][slot], s.activities.inputAmount[id.Index()][slot]
}

func (s *Store) ActivityOutput(id ActivityID, slot int) (CommodityID, int64) {
	if !s.ValidActivity(id) || slot < 0 || slot >= MaxOutputs {
		return 0, 0
	}
	return s.activities.output[id.Index()][slot], s.activities.outputAmount[id.Index()][slot]
}

// ── Building types ────────────────────────────────────────────────

func (s *Store) CreateBuildingType(name string) BuildingTypeID {
	s.buildingTypes.name = append(s.buildingTypes.name, s.Text.Intern(name))
	s.buildingTypes.activities = append(s.buildingTypes.activities, [MaxActivities]ActivityID{})
	s.buildingTypes.construction = append(s.buildingTypes.construction, [MaxConstruction]CommodityID{})
	s.buildingTypes.constructionAmount = append(s.buildingTypes.constructionAmount, [MaxConstruction]int64{})
	return BuildingTypeID(len(s.buildingTypes.name))
}

func (s *Store) BuildingTypeSetActivity(id BuildingTypeID, slot int, a ActivityID) {
	if !s.ValidBuildingType(id) || slot < 0 || slot >= MaxActivities {
		return
	}
	s.buildingTypes.activities[id.Index()][slot] = a
}

func (s *Store) BuildingTypeSetConstruction(id BuildingTypeID, slot int, c CommodityID, amount int64) {
	if !s.ValidBuildingType(id) || slot < 0 || slot >= MaxConstruction {
		return
	}
	s.buildingTypes.construction[id.Index()][slot] = c
	s.buildingTypes.constructionAmount[id.Index()][slot] = amount
}

func (s *Store) BuildingTypeName(id BuildingTypeID) string {
	if !s.ValidBuildingType(id) {
		return ""
	}
	return s.Text.Lookup(s.buildingTypes.name[id.Index()])
}

func (s *Store) BuildingTypeActivity(id BuildingTypeID, slot int) ActivityID {
	if !s.ValidBuildingType(id) || slot < 0 || slot >= MaxActivities {
		return 0
	}
	return s.buildingTypes.activities[id.Index()][slot]
}

func (s *Store) BuildingTypeConstruction(id BuildingTypeID, slot int) (CommodityID, int64) {
	if !s.ValidBuildingType(id) || slot < 0 || slot >= MaxConstruction {
		return 0, 0
	}
	return s.buildingTypes.construction[id.Index()][slot], s.buildingTypes.constructionAmount[id.Index()][slot]
}

// EachBuildingType calls fn for every building type in creation order.
func (s *Store) EachBuildingType(fn func(BuildingTypeID)) {
	for i := range s.buildingTypes.name {
		fn(BuildingTypeID(i + 1))
	}
}

// ── Buildings ─────────────────────────────────────────────────────

// CreateBuilding adds an unconstructed, idle building of the given type.
func (s *Store) CreateBuilding(bt BuildingTypeID) BuildingID {
	s.buildings.buildingType = append(s.buildings.buildingType, bt)
	s.buildings.activity = append(s.buildings.activity, 0)
	s.buildings.storage = append(s.buildings.storage, 0)
	s.buildings.constructed = append(s.buildings.constructed, false)
	return BuildingID(len(s.buildings.storage))
}

func (s *Store) BuildingType(id BuildingID) BuildingTypeID {
	if !s.ValidBuilding(id) {
		return 0
	}
	return s.buildings.buildingType[id.Index()]
}

func (s *Store) BuildingActivity(id BuildingID) ActivityID {
	if !s.ValidBuilding(id) {
		return 0
	}
	return s.buildings.activity[id.Index()]
}

func (s *Store) BuildingSetActivity(id BuildingID, a ActivityID) {
	if !s.ValidBuilding(id) {
		return
	}
	s.buildings.activity[id.Index()] = a
}

func (s *Store) BuildingStorage(id BuildingID) StorageID {
	if !s.ValidBuilding(id) {
		return 0
	}
	return s.buildings.storage[id.Index()]
}

func (s *Store) BuildingSetStorage(id BuildingID, st StorageID) {
	if !s.ValidBuilding(id) {
		return
	}
	s.buildings.storage[id.Index()] = st
}

func (s *Store) BuildingConstructed(id BuildingID) bool {
	if !s.ValidBuilding(id) {
		return false
	}
	return s.buildings.constructed[id.Index()]
}

func (s *Store) BuildingSetConstructed(id BuildingID, v bool) {
	if !s.ValidBuilding(id) {
		return
	}
	s.buildings.constructed[id.Index()] = v
}

// EachBuilding calls fn for every building in creation order.
func (s *Store) EachBuilding(fn func(BuildingID)) {
	for i := range s.buildings.storage {
		fn(BuildingID(i + 1))
	}
}

// ── Storages ──────────────────────────────────────────────────────

// CreateStorage adds a personal storage for owner and extends every
// commodity column by one zeroed cell.
func (s *Store) CreateStorage(owner UserID) StorageID {
	s.storages.owner = append(s.storages.owner, owner)
	s.storages.attachedTo = append(s.storages.attachedTo, 0)
	for c := range s.storages.current {
		s.storages.current[c] = append(s.storages.current[c], 0)
	}
	return StorageID(len(s.storages.owner))
}

func (s *Store) StorageOwner(id StorageID) UserID {
	if !s.ValidStorage(id) {
		return 0
	}
	return s.storages.owner[id.Index()]
}

func (s *Store) StorageAttachedTo(id StorageID) BuildingID {
	if !s.ValidStorage(id) {
		return 0
	}
	return s.storages.attachedTo[id.Index()]
}

func (s *Store) StorageSetAttachedTo(id StorageID, b BuildingID) {
	if !s.ValidStorage(id) {
		return
	}
	s.storages.attachedTo[id.Index()] = b
}

func (s *Store) StorageCurrent(id StorageID, c CommodityID) int64 {
	if !s.ValidStorage(id) || !s.ValidCommodity(c) {
		return 0
	}
	return s.storages.current[c.Index()][id.Index()]
}

func (s *Store) StorageSetCurrent(id StorageID, c CommodityID, v int64) {
	if !s.ValidStorage(id) || !s.ValidCommodity(c) {
		return
	}
	s.storages.current[c.Index()][id.Index()] = v
}

// StorageColumn returns the amount column for one commodity, spanning all
// storages by row. The transfer-resolution step owns one column per task.
func (s *Store) StorageColumn(c CommodityID) []int64 {
	if !s.ValidCommodity(c) {
		return nil
	}
	return s.storages.current[c.Index()]
}

// ── Ownerships ────────────────────────────────────────────────────

// CreateOwnership records that user owns building and updates both
// ownership indices. A building is owned at most once for its lifetime.
func (s *Store) CreateOwnership(building BuildingID, user UserID) OwnershipID {
	s.ownerships.owner = append(s.ownerships.owner, user)
	s.ownerships.owned = append(s.ownerships.owned, building)
	id := OwnershipID(len(s.ownerships.owner))
	s.ownershipByUser[user] = append(s.ownershipByUser[user], id)
	s.ownershipByPair[ownershipKey{building, user}] = id
	s.ownershipOfBuilding[building] = id
	return id
}

func (s *Store) OwnershipOwner(id OwnershipID) UserID {
	if !id.Valid() || id.Index() >= len(s.ownerships.owner) {
		return 0
	}
	return s.ownerships.owner[id.Index()]
}

func (s *Store) OwnershipOwned(id OwnershipID) BuildingID {
	if !id.Valid() || id.Index() >= len(s.ownerships.owned) {
		return 0
	}
	return s.ownerships.owned[id.Index()]
}

// OwnershipsOf returns the ownership rows of a user. The returned slice is
// the index itself; callers must not mutate it.
func (s *Store) OwnershipsOf(user UserID) []OwnershipID {
	return s.ownershipByUser[user]
}

// OwnershipByPair returns the ownership row for (building, user), or the
// zero handle when the user does not own the building.
func (s *Store) OwnershipByPair(building BuildingID, user UserID) OwnershipID {
	return s.ownershipByPair[ownershipKey{building, user}]
}

// BuildingOwner resolves a building's owner through its ownership row.
// A building has exactly one ownership row, created with it.
func (s *Store) BuildingOwner(building BuildingID) UserID {
	return s.OwnershipOwner(s.ownershipOfBuilding[building])
}

// ── Transfers ─────────────────────────────────────────────────────

// CreateTransfer adds a standing transfer row between two storages with
// all desired volumes zero, and updates the pair/source/target indices.
func (s *Store) CreateTransfer(source, target StorageID) TransferID {
	s.transfers.source = append(s.transfers.source, source)
	s.transfers.target = append(s.transfers.target, target)
	for c := range s.transfers.volume {
		s.transfers.volume[c] = append(s.transfers.volume[c], 0)
	}
	id := TransferID(len(s.transfers.source))
	s.transferByPair[transferKey{source, target}] = id
	s.transferFrom[source] = append(s.transferFrom[source], id)
	s.transferTo[target] = append(s.transferTo[target], id)
	return id
}

func (s *Store) TransferSource(id TransferID) StorageID {
	if !s.ValidTransfer(id) {
		return 0
	}
	return s.transfers.source[id.Index()]
}

func (s *Store) TransferTarget(id TransferID) StorageID {
	if !s.ValidTransfer(id) {
		return 0
	}
	return s.transfers.target[id.Index()]
}

func (s *Store) TransferVolume(id TransferID, c CommodityID) int64 {
	if !s.ValidTransfer(id) || !s.ValidCommodity(c) {
		return 0
	}
	return s.transfers.volume[c.Index()][id.Index()]
}

func (s *Store) TransferSetVolume(id TransferID, c CommodityID, v int64) {
	if !s.ValidTransfer(id) || !s.ValidCommodity(c) {
		return
	}
	s.transfers.volume[c.Index()][id.Index()] = v
}

// TransferByPair returns the standing transfer for (source, target), or
// the zero handle.
func (s *Store) TransferByPair(source, target StorageID) TransferID {
	return s.transferByPair[transferKey{source, target}]
}

// TransfersFrom returns transfers whose source is the given storage.
// Callers must not mutate the returned slice.
func (s *Store) TransfersFrom(source StorageID) []TransferID {
	return s.transferFrom[source]
}

// TransfersTo returns transfers whose target is the given storage.
// Callers must not mutate the returned slice.
func (s *Store) TransfersTo(target StorageID) []TransferID {
	return s.transferTo[target]
}

// TransferColumn returns the desired-volume column for one commodity.
func (s *Store) TransferColumn(c CommodityID) []int64 {
	if !s.ValidCommodity(c) {
		return nil
	}
	return s.transfers.volume[c.Index()]
}
