package store

import (
	"fmt"
	"math"
	"sync"
	"testing"
)

func TestHandleValidity(t *testing.T) {
	var zero BuildingID
	if zero.Valid() {
		t.Errorf("zero handle reported valid")
	}
	if !BuildingFromIndex(0).Valid() {
		t.Errorf("first handle reported invalid")
	}
	if got := BuildingFromIndex(7).Index(); got != 7 {
		t.Errorf("index roundtrip = %d, want 7", got)
	}
}

// External indices that do not fit the handle type must come back
// invalid, not wrap onto a real row.
func TestFromIndexBounds(t *testing.T) {
	if BuildingFromIndex(-1).Valid() {
		t.Errorf("negative index produced a valid handle")
	}
	if BuildingFromIndex(math.MaxInt32).Valid() {
		t.Errorf("index at int32 limit produced a valid handle")
	}
	if got := BuildingFromIndex(math.MaxInt32 - 1); !got.Valid() || got.Index() != math.MaxInt32-1 {
		t.Errorf("largest representable index broken: %v", got)
	}
	if UserFromIndex(math.MaxInt32).Valid() ||
		CommodityFromIndex(math.MaxInt32).Valid() ||
		ActivityFromIndex(math.MaxInt32).Valid() ||
		BuildingTypeFromIndex(math.MaxInt32).Valid() ||
		StorageFromIndex(math.MaxInt32).Valid() {
		t.Errorf("an out-of-range index produced a valid handle")
	}

	s := New()
	s.CreateUser("ada", [HashLen]byte{})
	s.CreateBuildingType("mine")
	b := s.CreateBuilding(BuildingTypeID(1))
	if b.Index() != 0 {
		t.Fatalf("first building at row %d", b.Index())
	}
	// An external id of 2^32 would truncate to handle 1, aliasing
	// row 0; it must not resolve to the real building there.
	if huge := int64(1) << 32; int64(int(huge)) == huge {
		if s.ValidBuilding(BuildingFromIndex(int(huge))) {
			t.Errorf("index 2^32 resolved to a real building")
		}
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("alpha")
	b := in.Intern("beta")
	if a == b {
		t.Fatalf("distinct strings share key %d", a)
	}
	if got := in.Lookup(a); got != "alpha" {
		t.Errorf("Lookup(a) = %q", got)
	}
	if got := in.Lookup(b); got != "beta" {
		t.Errorf("Lookup(b) = %q", got)
	}
	if got := in.Lookup(999); got != "" {
		t.Errorf("Lookup(unknown) = %q, want empty", got)
	}
	if in.Len() != 2 {
		t.Errorf("Len = %d, want 2", in.Len())
	}
}

// The interner accepts concurrent Intern and Lookup calls; name reads
// happen under lock combinations that do not exclude interning.
func TestInternerConcurrent(t *testing.T) {
	in := NewInterner()
	seed := in.Intern("seed")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			in.Intern(fmt.Sprintf("name%d", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if got := in.Lookup(seed); got != "seed" {
				t.Errorf("Lookup(seed) = %q mid-intern", got)
				return
			}
		}
	}()
	wg.Wait()

	if in.Len() != 1001 {
		t.Errorf("Len = %d, want 1001", in.Len())
	}
}

func TestCreateUser(t *testing.T) {
	s := New()
	hash := [HashLen]byte{1, 2, 3}
	id := s.CreateUser("ada", hash)
	if !s.ValidUser(id) {
		t.Fatalf("created user invalid")
	}
	if got := s.UserByName("ada"); got != id {
		t.Errorf("UserByName = %v, want %v", got, id)
	}
	if got := s.UserName(id); got != "ada" {
		t.Errorf("UserName = %q", got)
	}
	if got := s.UserHash(id); got != hash {
		t.Errorf("UserHash mismatch")
	}
	if s.UserByName("nobody").Valid() {
		t.Errorf("unknown name resolved")
	}

	second := s.CreateUser("bob", hash)
	if second.Index() != id.Index()+1 {
		t.Errorf("indices not monotonic: %d then %d", id.Index(), second.Index())
	}
}

func TestInvalidHandleNoops(t *testing.T) {
	s := New()
	var u UserID
	if got := s.UserName(u); got != "" {
		t.Errorf("UserName(0) = %q", got)
	}
	s.UserSetWealth(u, s.UserWealth(u)) // must not panic
	if s.UserStorage(UserID(99)).Valid() {
		t.Errorf("out-of-range user has a storage")
	}
	if got := s.StorageCurrent(StorageID(5), CommodityID(5)); got != 0 {
		t.Errorf("StorageCurrent on empty store = %d", got)
	}
}

// Commodity columns must span every storage regardless of whether the
// storage or the commodity was created first.
func TestColumnGrowth(t *testing.T) {
	s := New()
	u := s.CreateUser("ada", [HashLen]byte{})
	early := s.CreateStorage(u)
	ore := s.CreateCommodity("ore", 100)
	late := s.CreateStorage(u)
	fuel := s.CreateCommodity("fuel", 100)

	for _, st := range []StorageID{early, late} {
		for _, c := range []CommodityID{ore, fuel} {
			s.StorageSetCurrent(st, c, int64(st)*10+int64(c))
		}
	}
	for _, st := range []StorageID{early, late} {
		for _, c := range []CommodityID{ore, fuel} {
			want := int64(st)*10 + int64(c)
			if got := s.StorageCurrent(st, c); got != want {
				t.Errorf("storage %d commodity %d = %d, want %d", st, c, got, want)
			}
		}
	}

	col := s.StorageColumn(ore)
	if len(col) != 2 {
		t.Fatalf("ore column spans %d storages, want 2", len(col))
	}
	if col[early.Index()] != s.StorageCurrent(early, ore) {
		t.Errorf("column and accessor disagree")
	}
}

func TestOwnershipIndices(t *testing.T) {
	s := New()
	u := s.CreateUser("ada", [HashLen]byte{})
	other := s.CreateUser("bob", [HashLen]byte{})
	bt := s.CreateBuildingType("mine")
	b1 := s.CreateBuilding(bt)
	b2 := s.CreateBuilding(bt)

	o1 := s.CreateOwnership(b1, u)
	s.CreateOwnership(b2, u)

	if got := len(s.OwnershipsOf(u)); got != 2 {
		t.Fatalf("OwnershipsOf = %d rows, want 2", got)
	}
	if got := len(s.OwnershipsOf(other)); got != 0 {
		t.Errorf("other user owns %d rows", got)
	}
	if got := s.OwnershipByPair(b1, u); got != o1 {
		t.Errorf("OwnershipByPair = %v, want %v", got, o1)
	}
	if s.OwnershipByPair(b1, other).Valid() {
		t.Errorf("non-owner pair resolved")
	}
	if got := s.BuildingOwner(b1); got != u {
		t.Errorf("BuildingOwner = %v, want %v", got, u)
	}
	if got := s.BuildingOwner(b2); got != u {
		t.Errorf("BuildingOwner(b2) = %v, want %v", got, u)
	}
}

func TestTransferIndices(t *testing.T) {
	s := New()
	u := s.CreateUser("ada", [HashLen]byte{})
	ore := s.CreateCommodity("ore", 100)
	a := s.CreateStorage(u)
	b := s.CreateStorage(u)
	c := s.CreateStorage(u)

	ab := s.CreateTransfer(a, b)
	ac := s.CreateTransfer(a, c)

	if got := s.TransferByPair(a, b); got != ab {
		t.Errorf("TransferByPair(a,b) = %v, want %v", got, ab)
	}
	if s.TransferByPair(b, a).Valid() {
		t.Errorf("reverse pair resolved")
	}
	if got := len(s.TransfersFrom(a)); got != 2 {
		t.Errorf("TransfersFrom(a) = %d, want 2", got)
	}
	if got := len(s.TransfersTo(b)); got != 1 {
		t.Errorf("TransfersTo(b) = %d, want 1", got)
	}

	s.TransferSetVolume(ab, ore, 3)
	if got := s.TransferVolume(ab, ore); got != 3 {
		t.Errorf("TransferVolume = %d, want 3", got)
	}
	if got := s.TransferVolume(ac, ore); got != 0 {
		t.Errorf("untouched transfer volume = %d", got)
	}
	col := s.TransferColumn(ore)
	if len(col) != 2 || col[ab.Index()] != 3 {
		t.Errorf("transfer column = %v", col)
	}
}

func TestActivitySlots(t *testing.T) {
	s := New()
	ore := s.CreateCommodity("ore", 100)
	metal := s.CreateCommodity("metal", 100)
	a := s.CreateActivity("smelt")
	s.ActivitySetInput(a, 0, ore, 2)
	s.ActivitySetOutput(a, 0, metal, 1)

	if c, amt := s.ActivityInput(a, 0); c != ore || amt != 2 {
		t.Errorf("input slot 0 = %v x%d", c, amt)
	}
	if c, _ := s.ActivityInput(a, 1); c.Valid() {
		t.Errorf("unset input slot valid")
	}
	// Out-of-range slots are ignored.
	s.ActivitySetInput(a, MaxInputs, ore, 1)
	if c, _ := s.ActivityInput(a, MaxInputs); c.Valid() {
		t.Errorf("out-of-range slot stored")
	}
}
