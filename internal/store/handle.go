package store

import "math"

// Entity handles are kind-tagged integers so a BuildingID can never be
// passed where a StorageID is expected. The stored value is index+1; the
// zero value of every handle type is invalid. Indices are monotonically
// assigned and never reused.

type UserID int32
type CommodityID int32
type ActivityID int32
type BuildingTypeID int32
type BuildingID int32
type StorageID int32
type OwnershipID int32
type TransferID int32

func (id UserID) Valid() bool         { return id > 0 }
func (id CommodityID) Valid() bool    { return id > 0 }
func (id ActivityID) Valid() bool     { return id > 0 }
func (id BuildingTypeID) Valid() bool { return id > 0 }
func (id BuildingID) Valid() bool     { return id > 0 }
func (id StorageID) Valid() bool      { return id > 0 }
func (id OwnershipID) Valid() bool    { return id > 0 }
func (id TransferID) Valid() bool     { return id > 0 }

// Index returns the table row for a handle. Only meaningful when Valid.
func (id UserID) Index() int         { return int(id) - 1 }
func (id CommodityID) Index() int    { return int(id) - 1 }
func (id ActivityID) Index() int     { return int(id) - 1 }
func (id BuildingTypeID) Index() int { return int(id) - 1 }
func (id BuildingID) Index() int     { return int(id) - 1 }
func (id StorageID) Index() int      { return int(id) - 1 }
func (id OwnershipID) Index() int    { return int(id) - 1 }
func (id TransferID) Index() int     { return int(id) - 1 }

// fromIndex maps a raw table row, as parsed from an external identifier,
// to the stored handle value. Rows that do not fit the int32 handle
// yield 0 (invalid); without the bound a large external id would wrap
// onto a real row. Validity against the table is checked by the store.
func fromIndex(i int) int32 {
	if i < 0 || i >= math.MaxInt32 {
		return 0
	}
	return int32(i + 1)
}

func UserFromIndex(i int) UserID                 { return UserID(fromIndex(i)) }
func CommodityFromIndex(i int) CommodityID       { return CommodityID(fromIndex(i)) }
func ActivityFromIndex(i int) ActivityID         { return ActivityID(fromIndex(i)) }
func BuildingTypeFromIndex(i int) BuildingTypeID { return BuildingTypeID(fromIndex(i)) }
func BuildingFromIndex(i int) BuildingID         { return BuildingID(fromIndex(i)) }
func StorageFromIndex(i int) StorageID           { return StorageID(fromIndex(i)) }
